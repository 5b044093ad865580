package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Kind identifica el tipo de registro validado por la capa de esquema
type Kind string

const (
	KindCustomer          Kind = "customer"
	KindReceivingAccount  Kind = "receiving_account"
	KindAccountReceivable Kind = "account_receivable"
	KindVehicle           Kind = "vehicle"
	KindFuelEntry         Kind = "fuel_entry"
)

// Kinds lista todos los tipos de registro conocidos
var Kinds = []Kind{KindCustomer, KindReceivingAccount, KindAccountReceivable, KindVehicle, KindFuelEntry}

// ParseKind interpreta el nombre externo de un tipo de registro
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Record es implementado por todos los registros validados
type Record interface {
	Kind() Kind
}

// literalTable mapea valores internos a sus literales externos
type literalTable[E comparable] []struct {
	value   E
	literal string
}

func (t literalTable[E]) literal(v E) string {
	for _, e := range t {
		if e.value == v {
			return e.literal
		}
	}
	return ""
}

func (t literalTable[E]) parse(s string) (E, bool) {
	for _, e := range t {
		if e.literal == s {
			return e.value, true
		}
	}
	var zero E
	return zero, false
}

func (t literalTable[E]) literals() []string {
	out := make([]string, 0, len(t))
	for _, e := range t {
		out = append(out, e.literal)
	}
	return out
}

func marshalLiteral(lit string, name string) ([]byte, error) {
	if lit == "" {
		return nil, fmt.Errorf("invalid %s value", name)
	}
	return json.Marshal(lit)
}

func unmarshalLiteral(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return s, nil
}

func scanLiteral(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into enum", src)
	}
}

// CustomerType representa el tipo de cliente (persona física o jurídica)
type CustomerType int

const (
	CustomerTypeIndividual CustomerType = iota + 1
	CustomerTypeCorporate
)

var customerTypes = literalTable[CustomerType]{
	{CustomerTypeIndividual, "fisica"},
	{CustomerTypeCorporate, "juridica"},
}

// ParseCustomerType interpreta el literal externo
func ParseCustomerType(s string) (CustomerType, bool) { return customerTypes.parse(s) }

// CustomerTypeLiterals retorna los literales aceptados
func CustomerTypeLiterals() []string { return customerTypes.literals() }

func (t CustomerType) String() string { return customerTypes.literal(t) }

func (t CustomerType) MarshalJSON() ([]byte, error) {
	return marshalLiteral(t.String(), "customer type")
}

func (t *CustomerType) UnmarshalJSON(data []byte) error {
	s, err := unmarshalLiteral(data)
	if err != nil {
		return err
	}
	v, ok := ParseCustomerType(s)
	if !ok {
		return fmt.Errorf("unknown customer type %q", s)
	}
	*t = v
	return nil
}

func (t CustomerType) Value() (driver.Value, error) { return t.String(), nil }

func (t *CustomerType) Scan(src any) error {
	s, err := scanLiteral(src)
	if err != nil {
		return err
	}
	v, ok := ParseCustomerType(s)
	if !ok {
		return fmt.Errorf("unknown customer type %q", s)
	}
	*t = v
	return nil
}

// ReceivableStatus representa el estado de una cuenta por cobrar
type ReceivableStatus int

const (
	ReceivableStatusPending ReceivableStatus = iota + 1
	ReceivableStatusReceived
)

var receivableStatuses = literalTable[ReceivableStatus]{
	{ReceivableStatusPending, "pendente"},
	{ReceivableStatusReceived, "recebido"},
}

// ParseReceivableStatus interpreta el literal externo
func ParseReceivableStatus(s string) (ReceivableStatus, bool) { return receivableStatuses.parse(s) }

// ReceivableStatusLiterals retorna los literales aceptados
func ReceivableStatusLiterals() []string { return receivableStatuses.literals() }

func (s ReceivableStatus) String() string { return receivableStatuses.literal(s) }

func (s ReceivableStatus) MarshalJSON() ([]byte, error) {
	return marshalLiteral(s.String(), "receivable status")
}

func (s *ReceivableStatus) UnmarshalJSON(data []byte) error {
	lit, err := unmarshalLiteral(data)
	if err != nil {
		return err
	}
	v, ok := ParseReceivableStatus(lit)
	if !ok {
		return fmt.Errorf("unknown receivable status %q", lit)
	}
	*s = v
	return nil
}

func (s ReceivableStatus) Value() (driver.Value, error) { return s.String(), nil }

func (s *ReceivableStatus) Scan(src any) error {
	lit, err := scanLiteral(src)
	if err != nil {
		return err
	}
	v, ok := ParseReceivableStatus(lit)
	if !ok {
		return fmt.Errorf("unknown receivable status %q", lit)
	}
	*s = v
	return nil
}

// VehicleType representa el tipo de vehículo de la flota
type VehicleType int

const (
	VehicleTypeTruck VehicleType = iota + 1
	VehicleTypeCar
	VehicleTypeMachinery
)

var vehicleTypes = literalTable[VehicleType]{
	{VehicleTypeTruck, "caminhao"},
	{VehicleTypeCar, "carro"},
	{VehicleTypeMachinery, "maquinario"},
}

// ParseVehicleType interpreta el literal externo
func ParseVehicleType(s string) (VehicleType, bool) { return vehicleTypes.parse(s) }

// VehicleTypeLiterals retorna los literales aceptados
func VehicleTypeLiterals() []string { return vehicleTypes.literals() }

func (t VehicleType) String() string { return vehicleTypes.literal(t) }

func (t VehicleType) MarshalJSON() ([]byte, error) { return marshalLiteral(t.String(), "vehicle type") }

func (t *VehicleType) UnmarshalJSON(data []byte) error {
	s, err := unmarshalLiteral(data)
	if err != nil {
		return err
	}
	v, ok := ParseVehicleType(s)
	if !ok {
		return fmt.Errorf("unknown vehicle type %q", s)
	}
	*t = v
	return nil
}

func (t VehicleType) Value() (driver.Value, error) { return t.String(), nil }

func (t *VehicleType) Scan(src any) error {
	s, err := scanLiteral(src)
	if err != nil {
		return err
	}
	v, ok := ParseVehicleType(s)
	if !ok {
		return fmt.Errorf("unknown vehicle type %q", s)
	}
	*t = v
	return nil
}

// FuelType representa el combustible de un vehículo o abastecimiento
type FuelType int

const (
	FuelTypeGasoline FuelType = iota + 1
	FuelTypeDiesel
)

var fuelTypes = literalTable[FuelType]{
	{FuelTypeGasoline, "gasolina"},
	{FuelTypeDiesel, "diesel"},
}

// ParseFuelType interpreta el literal externo
func ParseFuelType(s string) (FuelType, bool) { return fuelTypes.parse(s) }

// FuelTypeLiterals retorna los literales aceptados
func FuelTypeLiterals() []string { return fuelTypes.literals() }

func (t FuelType) String() string { return fuelTypes.literal(t) }

func (t FuelType) MarshalJSON() ([]byte, error) { return marshalLiteral(t.String(), "fuel type") }

func (t *FuelType) UnmarshalJSON(data []byte) error {
	s, err := unmarshalLiteral(data)
	if err != nil {
		return err
	}
	v, ok := ParseFuelType(s)
	if !ok {
		return fmt.Errorf("unknown fuel type %q", s)
	}
	*t = v
	return nil
}

func (t FuelType) Value() (driver.Value, error) { return t.String(), nil }

func (t *FuelType) Scan(src any) error {
	s, err := scanLiteral(src)
	if err != nil {
		return err
	}
	v, ok := ParseFuelType(s)
	if !ok {
		return fmt.Errorf("unknown fuel type %q", s)
	}
	*t = v
	return nil
}
