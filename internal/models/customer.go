package models

import (
	"time"
)

// Address representa la dirección de un cliente; todos los campos son opcionales
// e independientes entre sí
type Address struct {
	Zip          Optional[string] `json:"zip"`
	Street       Optional[string] `json:"street"`
	Number       Optional[string] `json:"number"`
	Complement   Optional[string] `json:"complement"`
	Neighborhood Optional[string] `json:"neighborhood"`
	City         Optional[string] `json:"city"`
	State        Optional[string] `json:"state"`
}

// Customer representa un cliente que puede ser facturado
type Customer struct {
	ID        string           `json:"id" db:"id"`
	Code      string           `json:"code" db:"code"`
	Name      string           `json:"name" db:"name"`
	Type      CustomerType     `json:"type" db:"type"`
	CPFCNPJ   string           `json:"cpfCnpj" db:"cpf_cnpj"`
	RGIE      Optional[string] `json:"rgIe" db:"rg_ie"`
	Phone     string           `json:"phone" db:"phone"`
	Email     Optional[string] `json:"email" db:"email"`
	Cellphone Optional[string] `json:"cellphone" db:"cellphone"`
	Address
	BirthDate Optional[time.Time] `json:"birthDate" db:"birth_date"`
	Notes     Optional[string]    `json:"notes" db:"notes"`
	Active    bool                `json:"active" db:"active"`
	CreatedAt time.Time           `json:"createdAt" db:"created_at"`
}

// Kind implementa Record
func (Customer) Kind() Kind { return KindCustomer }

// IsCorporate retorna true si el cliente es persona jurídica (CNPJ + inscripción estatal)
func (c *Customer) IsCorporate() bool {
	return c.Type == CustomerTypeCorporate
}
