package validation

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// PayloadOf codifica un registro como payload con los nombres y literales externos.
// Validar el resultado produce un registro igual. La anotación FuelEntry.Vehicle no se incluye.
func PayloadOf(r models.Record) Payload {
	switch rec := r.(type) {
	case models.Customer:
		return customerPayload(&rec)
	case *models.Customer:
		return customerPayload(rec)
	case models.ReceivingAccount:
		return accountPayload(&rec)
	case *models.ReceivingAccount:
		return accountPayload(rec)
	case models.AccountReceivable:
		return receivablePayload(&rec)
	case *models.AccountReceivable:
		return receivablePayload(rec)
	case models.Vehicle:
		return vehiclePayload(&rec)
	case *models.Vehicle:
		return vehiclePayload(rec)
	case models.FuelEntry:
		return fuelEntryPayload(&rec)
	case *models.FuelEntry:
		return fuelEntryPayload(rec)
	}
	return nil
}

func customerPayload(c *models.Customer) Payload {
	p := Payload{
		"code":         c.Code,
		"name":         c.Name,
		"type":         c.Type.String(),
		"cpfCnpj":      c.CPFCNPJ,
		"rgIe":         optString(c.RGIE),
		"phone":        c.Phone,
		"email":        optString(c.Email),
		"cellphone":    optString(c.Cellphone),
		"zip":          optString(c.Zip),
		"street":       optString(c.Street),
		"number":       optString(c.Number),
		"complement":   optString(c.Complement),
		"neighborhood": optString(c.Neighborhood),
		"city":         optString(c.City),
		"state":        optString(c.State),
		"birthDate":    optTime(c.BirthDate),
		"notes":        optString(c.Notes),
		"active":       c.Active,
		"createdAt":    timestamp(c.CreatedAt),
	}
	setID(p, c.ID)
	return p
}

func accountPayload(a *models.ReceivingAccount) Payload {
	p := Payload{
		"name":      a.Name,
		"active":    a.Active,
		"createdAt": timestamp(a.CreatedAt),
	}
	setID(p, a.ID)
	return p
}

func receivablePayload(r *models.AccountReceivable) Payload {
	p := Payload{
		"saleId":               r.SaleID,
		"saleNumber":           r.SaleNumber,
		"customerName":         r.CustomerName,
		"paymentMethodName":    r.PaymentMethodName,
		"receivingAccountId":   optString(r.ReceivingAccountID),
		"receivingAccountName": optString(r.ReceivingAccountName),
		"originalAmount":       number(r.OriginalAmount),
		"interestPenalty":      number(r.InterestPenalty),
		"finalAmount":          number(r.FinalAmount),
		"status":               r.Status.String(),
		"receiptDate":          optTime(r.ReceiptDate),
		"receiptUrl":           optString(r.ReceiptURL),
		"createdAt":            timestamp(r.CreatedAt),
		"updatedAt":            timestamp(r.UpdatedAt),
	}
	setID(p, r.ID)
	return p
}

func vehiclePayload(v *models.Vehicle) Payload {
	p := Payload{
		"name":          optString(v.Name),
		"type":          v.Type.String(),
		"fuel_type":     v.FuelType.String(),
		"plate":         optString(v.Plate),
		"tank_capacity": optNumber(v.TankCapacity),
		"uses_odometer": v.UsesOdometer,
		"active":        v.Active,
		"created_at":    timestamp(v.CreatedAt),
	}
	setID(p, v.ID)
	return p
}

func fuelEntryPayload(f *models.FuelEntry) Payload {
	p := Payload{
		"vehicle_id":      f.VehicleID,
		"odometer_value":  number(f.OdometerValue),
		"liters":          number(f.Liters),
		"fuel_type":       f.FuelType.String(),
		"price_per_liter": optNumber(f.PricePerLiter),
		"total_cost":      optNumber(f.TotalCost),
		"operator_name":   optString(f.OperatorName),
		"notes":           optString(f.Notes),
		"created_at":      timestamp(f.CreatedAt),
	}
	setID(p, f.ID)
	return p
}

func setID(p Payload, id string) {
	if id != "" {
		p["id"] = id
	}
}

func optString(o models.Optional[string]) any {
	if s, ok := o.Get(); ok {
		return s
	}
	return nil
}

func optTime(o models.Optional[time.Time]) any {
	if t, ok := o.Get(); ok {
		return timestamp(t)
	}
	return nil
}

func optNumber(o models.Optional[decimal.Decimal]) any {
	if d, ok := o.Get(); ok {
		return number(d)
	}
	return nil
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
