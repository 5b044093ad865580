package validation

import (
	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// Customer valida un payload de cliente. Campos requeridos: code, name, type, cpfCnpj, phone.
func (v *Validator) Customer(p Payload) (*models.Customer, Warnings, error) {
	c := newChecker(p, v.strict)

	customer := models.Customer{
		ID:   c.optionalString("id").OrElse(""),
		Code: c.requiredString("code"),
		Name: c.requiredString("name"),
	}
	customer.Type, _ = requiredEnum(c, "type", models.ParseCustomerType, models.CustomerTypeLiterals())
	customer.CPFCNPJ = c.requiredString("cpfCnpj")
	customer.RGIE = c.optionalString("rgIe")
	customer.Phone = c.requiredString("phone")
	customer.Email = c.optionalString("email")
	customer.Cellphone = c.optionalString("cellphone")
	customer.Address = models.Address{
		Zip:          c.optionalString("zip"),
		Street:       c.optionalString("street"),
		Number:       c.optionalString("number"),
		Complement:   c.optionalString("complement"),
		Neighborhood: c.optionalString("neighborhood"),
		City:         c.optionalString("city"),
		State:        c.optionalString("state"),
	}
	customer.BirthDate = c.optionalTime("birthDate")
	customer.Notes = c.optionalString("notes")
	customer.Active = c.boolOrDefault("active", true)
	customer.CreatedAt = c.timeOrNow("createdAt", v.now)

	if err := c.err(); err != nil {
		return nil, c.warnings, err
	}
	return &customer, c.warnings, nil
}
