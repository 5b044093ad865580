package validation

import (
	"fmt"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// Vehicle valida un payload de vehículo. Campos requeridos: type, fuel_type, uses_odometer.
func (v *Validator) Vehicle(p Payload) (*models.Vehicle, Warnings, error) {
	c := newChecker(p, v.strict)

	vehicle := models.Vehicle{
		ID:   c.optionalString("id").OrElse(""),
		Name: c.optionalString("name"),
	}
	vehicle.Type, _ = requiredEnum(c, "type", models.ParseVehicleType, models.VehicleTypeLiterals())
	vehicle.FuelType, _ = requiredEnum(c, "fuel_type", models.ParseFuelType, models.FuelTypeLiterals())
	vehicle.Plate = c.optionalString("plate")
	vehicle.TankCapacity = c.optionalDecimal("tank_capacity", true)
	vehicle.UsesOdometer = c.requiredBool("uses_odometer")
	vehicle.Active = c.boolOrDefault("active", true)
	vehicle.CreatedAt = c.timeOrNow("created_at", v.now)

	if err := c.err(); err != nil {
		return nil, c.warnings, err
	}
	return &vehicle, c.warnings, nil
}

// FuelEntry valida un payload de abastecimiento sin vehículo resuelto;
// el chequeo de combustible contra el vehículo se omite.
func (v *Validator) FuelEntry(p Payload) (*models.FuelEntry, Warnings, error) {
	return v.FuelEntryFor(nil, p)
}

// FuelEntryFor valida un payload de abastecimiento contra el vehículo referenciado.
// La clave "vehicle" del payload se ignora: la anotación nunca proviene de la entrada.
func (v *Validator) FuelEntryFor(vehicle *models.Vehicle, p Payload) (*models.FuelEntry, Warnings, error) {
	c := newChecker(p, v.strict)

	entry := models.FuelEntry{
		ID:        c.optionalString("id").OrElse(""),
		VehicleID: c.requiredString("vehicle_id"),
	}
	odometer, _ := c.requiredDecimal("odometer_value", false)
	liters, litersOK := c.requiredDecimal("liters", true)
	entry.OdometerValue, entry.Liters = odometer, liters

	fuel, fuelOK := requiredEnum(c, "fuel_type", models.ParseFuelType, models.FuelTypeLiterals())
	entry.FuelType = fuel
	entry.PricePerLiter = c.optionalDecimal("price_per_liter", true)
	entry.TotalCost = c.optionalDecimal("total_cost", true)
	entry.OperatorName = c.optionalString("operator_name")
	entry.Notes = c.optionalString("notes")
	entry.CreatedAt = c.timeOrNow("created_at", v.now)

	if vehicle != nil && entry.VehicleID != "" && vehicle.ID != "" && vehicle.ID != entry.VehicleID {
		c.inconsistent("vehicle_id", fmt.Sprintf("does not match vehicle %s", vehicle.ID))
	}
	if vehicle != nil && fuelOK && vehicle.FuelType != fuel {
		c.inconsistent("fuel_type", fmt.Sprintf("vehicle uses %s, got %s", vehicle.FuelType, fuel))
	}
	price, priceOK := entry.PricePerLiter.Get()
	total, totalOK := entry.TotalCost.Get()
	if litersOK && priceOK && totalOK {
		expected := liters.Mul(price)
		if !withinTolerance(total, expected, v.tolerance) {
			c.inconsistent("total_cost", fmt.Sprintf("expected %s (liters * price_per_liter), got %s", expected, total))
		}
	}
	if vehicle != nil && !vehicle.Active {
		c.warn("vehicle_id", "vehicle is inactive")
	}

	if err := c.err(); err != nil {
		return nil, c.warnings, err
	}
	return &entry, c.warnings, nil
}
