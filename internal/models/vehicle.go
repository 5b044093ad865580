package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle representa un activo de la flota
type Vehicle struct {
	ID           string                    `json:"id" db:"id"`
	Name         Optional[string]          `json:"name" db:"name"`
	Type         VehicleType               `json:"type" db:"type"`
	FuelType     FuelType                  `json:"fuel_type" db:"fuel_type"`
	Plate        Optional[string]          `json:"plate" db:"plate"`
	TankCapacity Optional[decimal.Decimal] `json:"tank_capacity" db:"tank_capacity"`
	UsesOdometer bool                      `json:"uses_odometer" db:"uses_odometer"`
	Active       bool                      `json:"active" db:"active"`
	CreatedAt    time.Time                 `json:"created_at" db:"created_at"`
}

// Kind implementa Record
func (Vehicle) Kind() Kind { return KindVehicle }

// FuelEntry representa un abastecimiento de un vehículo
type FuelEntry struct {
	ID            string                    `json:"id" db:"id"`
	VehicleID     string                    `json:"vehicle_id" db:"vehicle_id"`
	OdometerValue decimal.Decimal           `json:"odometer_value" db:"odometer_value"`
	Liters        decimal.Decimal           `json:"liters" db:"liters"`
	FuelType      FuelType                  `json:"fuel_type" db:"fuel_type"`
	PricePerLiter Optional[decimal.Decimal] `json:"price_per_liter" db:"price_per_liter"`
	TotalCost     Optional[decimal.Decimal] `json:"total_cost" db:"total_cost"`
	OperatorName  Optional[string]          `json:"operator_name" db:"operator_name"`
	Notes         Optional[string]          `json:"notes" db:"notes"`
	CreatedAt     time.Time                 `json:"created_at" db:"created_at"`

	// Vehicle es una copia del vehículo poblada solo en lecturas con join.
	// Nunca es autoritativa ni se persiste.
	Vehicle *Vehicle `json:"vehicle,omitempty" db:"-"`
}

// Kind implementa Record
func (FuelEntry) Kind() Kind { return KindFuelEntry }

// WithoutAnnotation retorna una copia sin el vehículo desnormalizado, lista para escribir
func (f FuelEntry) WithoutAnnotation() FuelEntry {
	f.Vehicle = nil
	return f
}
