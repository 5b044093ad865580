package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

var recordOpts = cmp.Options{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) }),
}

func newTestValidator(opts ...Option) *Validator {
	return New(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func validCustomerPayload() Payload {
	return Payload{
		"code":    "C001",
		"name":    "Acme",
		"type":    "juridica",
		"cpfCnpj": "12.345.678/0001-90",
		"phone":   "+55 11 0000",
	}
}

func validReceivablePayload() Payload {
	return Payload{
		"saleId":            "sale-1",
		"saleNumber":        "000123",
		"customerName":      "Acme",
		"paymentMethodName": "boleto",
		"originalAmount":    100,
		"interestPenalty":   10,
		"finalAmount":       110,
		"status":            "pendente",
	}
}

func validVehiclePayload() Payload {
	return Payload{
		"name":          "Scania R450",
		"type":          "caminhao",
		"fuel_type":     "diesel",
		"plate":         "ABC1D23",
		"tank_capacity": json.Number("600"),
		"uses_odometer": true,
	}
}

func validFuelEntryPayload() Payload {
	return Payload{
		"vehicle_id":      "veh-1",
		"odometer_value":  json.Number("120345.5"),
		"liters":          json.Number("50"),
		"fuel_type":       "diesel",
		"price_per_liter": json.Number("5.99"),
		"total_cost":      json.Number("299.50"),
	}
}

func TestCustomer_ScenarioAppliesDefaults(t *testing.T) {
	c, warnings, err := newTestValidator().Customer(validCustomerPayload())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "C001", c.Code)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, models.CustomerTypeCorporate, c.Type)
	assert.True(t, c.IsCorporate())
	assert.True(t, c.Active)
	assert.Equal(t, fixedNow, c.CreatedAt)
	assert.False(t, c.Email.IsPresent())
	assert.False(t, c.Zip.IsPresent())
}

func TestCustomer_OptionalFields(t *testing.T) {
	p := validCustomerPayload()
	p["type"] = "fisica"
	p["email"] = "ana@example.com"
	p["city"] = "Campinas"
	p["complement"] = "   "
	p["birthDate"] = "1990-05-20"
	p["active"] = false
	p["createdAt"] = "2025-01-02T03:04:05-03:00"

	c, _, err := newTestValidator().Customer(p)
	require.NoError(t, err)

	assert.Equal(t, models.CustomerTypeIndividual, c.Type)
	assert.Equal(t, "ana@example.com", c.Email.OrElse(""))
	assert.Equal(t, "Campinas", c.City.OrElse(""))
	assert.False(t, c.Complement.IsPresent(), "blank optional text is absent")
	birth, ok := c.BirthDate.Get()
	require.True(t, ok)
	assert.Equal(t, time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC), birth)
	assert.False(t, c.Active)
	assert.Equal(t, time.Date(2025, 1, 2, 6, 4, 5, 0, time.UTC), c.CreatedAt)
}

func TestCustomer_MissingRequiredFields(t *testing.T) {
	for _, field := range []string{"code", "name", "type", "cpfCnpj", "phone"} {
		t.Run(field, func(t *testing.T) {
			p := validCustomerPayload()
			delete(p, field)

			c, _, err := newTestValidator().Customer(p)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.Contains(t, Fields(err), field)
		})
	}
}

func TestCustomer_NullAndBlankCountAsMissing(t *testing.T) {
	p := validCustomerPayload()
	p["phone"] = nil
	p["cpfCnpj"] = "  "

	_, _, err := newTestValidator().Customer(p)
	require.Error(t, err)
	assert.Equal(t, []string{"cpfCnpj", "phone"}, Fields(err))
}

func TestCustomer_UnknownType(t *testing.T) {
	p := validCustomerPayload()
	p["type"] = "empresa"

	_, _, err := newTestValidator().Customer(p)
	require.Error(t, err)
	errs := Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "type", errs[0].Field)
	assert.Equal(t, `"empresa" is not one of fisica, juridica`, errs[0].Reason)
}

func TestCustomer_WrongShapes(t *testing.T) {
	p := validCustomerPayload()
	p["email"] = 42
	p["active"] = "yes"
	p["birthDate"] = "20/05/1990"

	_, _, err := newTestValidator().Customer(p)
	require.Error(t, err)
	assert.Equal(t, []string{"email", "birthDate", "active"}, Fields(err))
}

func TestReceivingAccount(t *testing.T) {
	a, _, err := newTestValidator().ReceivingAccount(Payload{"name": "Caixa"})
	require.NoError(t, err)
	assert.Equal(t, "Caixa", a.Name)
	assert.True(t, a.Active)
	assert.Equal(t, fixedNow, a.CreatedAt)

	_, _, err = newTestValidator().ReceivingAccount(Payload{})
	require.Error(t, err)
	assert.Equal(t, []string{"name"}, Fields(err))
}

func TestReceivable_Valid(t *testing.T) {
	r, warnings, err := newTestValidator().Receivable(validReceivablePayload())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, models.ReceivableStatusPending, r.Status)
	assert.True(t, r.FinalAmount.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, fixedNow, r.CreatedAt)
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
}

func TestReceivable_ReceivedWithoutReceiptDate(t *testing.T) {
	p := validReceivablePayload()
	p["status"] = "recebido"

	r, _, err := newTestValidator().Receivable(p)
	require.Error(t, err)
	assert.Nil(t, r)
	assert.Equal(t, []string{"receiptDate"}, Fields(err))
}

func TestReceivable_ReceivedWithBlankReceiptDate(t *testing.T) {
	for _, blank := range []string{"", "   "} {
		t.Run(fmt.Sprintf("%q", blank), func(t *testing.T) {
			p := validReceivablePayload()
			p["status"] = "recebido"
			p["receiptDate"] = blank

			r, _, err := newTestValidator().Receivable(p)
			require.Error(t, err)
			assert.Nil(t, r)
			errs := Errors(err)
			require.Len(t, errs, 1)
			assert.Equal(t, "receiptDate", errs[0].Field)
			assert.Equal(t, "is required when status is recebido", errs[0].Reason)
		})
	}
}

func TestReceivable_ReceivedWithMalformedReceiptDate(t *testing.T) {
	p := validReceivablePayload()
	p["status"] = "recebido"
	p["receiptDate"] = "10/03/2026"

	_, _, err := newTestValidator().Receivable(p)
	require.Error(t, err)
	errs := Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "must be an RFC 3339 timestamp", errs[0].Reason)
}

func TestReceivable_ReceivedWithReceiptDate(t *testing.T) {
	p := validReceivablePayload()
	p["status"] = "recebido"
	p["receiptDate"] = "2026-03-10T15:00:00Z"
	p["receiptUrl"] = "https://files.example.com/r.pdf"

	r, warnings, err := newTestValidator().Receivable(p)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.True(t, r.IsReceived())
	assert.Equal(t, "https://files.example.com/r.pdf", r.ReceiptURL.OrElse(""))
}

func TestReceivable_FinalAmountMismatch(t *testing.T) {
	p := validReceivablePayload()
	p["finalAmount"] = 100

	t.Run("strict", func(t *testing.T) {
		_, _, err := newTestValidator().Receivable(p)
		require.Error(t, err)
		errs := Errors(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "finalAmount", errs[0].Field)
		assert.Contains(t, errs[0].Reason, "expected 110")
	})

	t.Run("lenient", func(t *testing.T) {
		r, warnings, err := newTestValidator(WithStrictConsistency(false)).Receivable(p)
		require.NoError(t, err)
		require.NotNil(t, r)
		assert.Equal(t, []string{"finalAmount"}, warnings.Fields())
		assert.Contains(t, warnings[0].Reason, "expected 110")
	})
}

func TestReceivable_RoundingTolerance(t *testing.T) {
	p := validReceivablePayload()
	p["originalAmount"] = json.Number("33.333")
	p["interestPenalty"] = json.Number("0")
	p["finalAmount"] = json.Number("33.33")

	_, _, err := newTestValidator().Receivable(p)
	require.NoError(t, err)

	_, _, err = newTestValidator(WithTolerance(decimal.Zero)).Receivable(p)
	require.Error(t, err)
	assert.Equal(t, []string{"finalAmount"}, Fields(err))
}

func TestReceivable_NegativeAmounts(t *testing.T) {
	p := validReceivablePayload()
	p["originalAmount"] = -100
	p["interestPenalty"] = -10
	p["finalAmount"] = -110

	_, _, err := newTestValidator().Receivable(p)
	require.Error(t, err)
	assert.Equal(t, []string{"originalAmount", "finalAmount"}, Fields(err), "interestPenalty may be negative")
}

func TestReceivable_PendingWithReceiptWarns(t *testing.T) {
	p := validReceivablePayload()
	p["receiptDate"] = "2026-03-10"

	r, warnings, err := newTestValidator().Receivable(p)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, []string{"receiptDate"}, warnings.Fields())
}

func TestReceivable_ErrorOrderFollowsPhases(t *testing.T) {
	p := Payload{
		"saleId":            "sale-1",
		"customerName":      "Acme",
		"paymentMethodName": "pix",
		"originalAmount":    "abc",
		"interestPenalty":   true,
		"finalAmount":       json.Number("-1"),
		"status":            "pago",
	}

	_, _, err := newTestValidator().Receivable(p)
	require.Error(t, err)

	want := []*models.ValidationError{
		{Field: "saleNumber", Reason: "is required"},
		{Field: "status", Reason: `"pago" is not one of pendente, recebido`},
		{Field: "originalAmount", Reason: "must be a finite number"},
		{Field: "interestPenalty", Reason: "must be a number"},
		{Field: "finalAmount", Reason: "must not be negative"},
	}
	if diff := cmp.Diff(want, Errors(err)); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestVehicle_Valid(t *testing.T) {
	v, _, err := newTestValidator().Vehicle(validVehiclePayload())
	require.NoError(t, err)
	assert.Equal(t, models.VehicleTypeTruck, v.Type)
	assert.Equal(t, models.FuelTypeDiesel, v.FuelType)
	assert.True(t, v.Active)
	capacity, ok := v.TankCapacity.Get()
	require.True(t, ok)
	assert.True(t, capacity.Equal(decimal.NewFromInt(600)))
}

func TestVehicle_MachineryWithoutPlate(t *testing.T) {
	p := validVehiclePayload()
	p["type"] = "maquinario"
	p["plate"] = nil
	delete(p, "tank_capacity")

	v, _, err := newTestValidator().Vehicle(p)
	require.NoError(t, err)
	assert.False(t, v.Plate.IsPresent())
	assert.False(t, v.TankCapacity.IsPresent())
}

func TestVehicle_UnknownType(t *testing.T) {
	p := validVehiclePayload()
	p["type"] = "onibus"

	v, _, err := newTestValidator().Vehicle(p)
	require.Error(t, err)
	assert.Nil(t, v)
	assert.Equal(t, []string{"type"}, Fields(err))
}

func TestVehicle_Invalid(t *testing.T) {
	p := validVehiclePayload()
	p["fuel_type"] = "etanol"
	p["tank_capacity"] = -1
	delete(p, "uses_odometer")

	_, _, err := newTestValidator().Vehicle(p)
	require.Error(t, err)
	assert.Equal(t, []string{"uses_odometer", "fuel_type", "tank_capacity"}, Fields(err))
}

func TestFuelEntry_Valid(t *testing.T) {
	f, warnings, err := newTestValidator().FuelEntry(validFuelEntryPayload())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "veh-1", f.VehicleID)
	assert.True(t, f.Liters.Equal(decimal.NewFromInt(50)))
	assert.Nil(t, f.Vehicle)
}

func TestFuelEntry_NegativeLiters(t *testing.T) {
	p := validFuelEntryPayload()
	p["liters"] = -5
	delete(p, "total_cost")

	f, _, err := newTestValidator().FuelEntry(p)
	require.Error(t, err)
	assert.Nil(t, f)
	assert.Equal(t, []string{"liters"}, Fields(err))
}

func TestFuelEntry_NonFiniteNumbers(t *testing.T) {
	p := validFuelEntryPayload()
	p["odometer_value"] = math.Inf(1)
	p["price_per_liter"] = math.NaN()

	_, _, err := newTestValidator().FuelEntry(p)
	require.Error(t, err)
	assert.Equal(t, []string{"odometer_value", "price_per_liter"}, Fields(err))
}

func TestFuelEntry_TotalCostMismatch(t *testing.T) {
	p := validFuelEntryPayload()
	p["total_cost"] = json.Number("250")

	_, _, err := newTestValidator().FuelEntry(p)
	require.Error(t, err)
	errs := Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "total_cost", errs[0].Field)
	assert.Contains(t, errs[0].Reason, "expected 299.5")
}

func TestFuelEntry_IgnoresVehicleAnnotationInPayload(t *testing.T) {
	p := validFuelEntryPayload()
	p["vehicle"] = map[string]any{"id": "veh-1", "fuel_type": "gasolina"}

	f, _, err := newTestValidator().FuelEntry(p)
	require.NoError(t, err)
	assert.Nil(t, f.Vehicle)
}

func TestFuelEntryFor_VehicleConsistency(t *testing.T) {
	vehicle := &models.Vehicle{ID: "veh-1", FuelType: models.FuelTypeGasoline, Active: true}

	_, _, err := newTestValidator().FuelEntryFor(vehicle, validFuelEntryPayload())
	require.Error(t, err)
	errs := Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "fuel_type", errs[0].Field)
	assert.Equal(t, "vehicle uses gasolina, got diesel", errs[0].Reason)

	f, warnings, err := newTestValidator(WithStrictConsistency(false)).FuelEntryFor(vehicle, validFuelEntryPayload())
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, []string{"fuel_type"}, warnings.Fields())
}

func TestFuelEntryFor_MismatchedVehicleID(t *testing.T) {
	vehicle := &models.Vehicle{ID: "veh-2", FuelType: models.FuelTypeDiesel, Active: true}

	_, _, err := newTestValidator().FuelEntryFor(vehicle, validFuelEntryPayload())
	require.Error(t, err)
	assert.Equal(t, []string{"vehicle_id"}, Fields(err))
}

func TestFuelEntryFor_InactiveVehicleWarns(t *testing.T) {
	vehicle := &models.Vehicle{ID: "veh-1", FuelType: models.FuelTypeDiesel, Active: false}

	f, warnings, err := newTestValidator().FuelEntryFor(vehicle, validFuelEntryPayload())
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, []string{"vehicle_id"}, warnings.Fields())
}

func TestValidate_Dispatch(t *testing.T) {
	v := newTestValidator()
	cases := map[models.Kind]Payload{
		models.KindCustomer:          validCustomerPayload(),
		models.KindReceivingAccount:  {"name": "Banco"},
		models.KindAccountReceivable: validReceivablePayload(),
		models.KindVehicle:           validVehiclePayload(),
		models.KindFuelEntry:         validFuelEntryPayload(),
	}
	for kind, p := range cases {
		t.Run(string(kind), func(t *testing.T) {
			rec, _, err := v.Validate(kind, p)
			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.Equal(t, kind, rec.Kind())
		})
	}
}

func TestValidate_FailureReturnsNilRecord(t *testing.T) {
	rec, _, err := newTestValidator().Validate(models.KindCustomer, Payload{})
	require.Error(t, err)
	assert.Nil(t, rec)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 5)
}

func TestValidate_UnknownKind(t *testing.T) {
	rec, _, err := newTestValidator().Validate(models.Kind("invoice"), Payload{})
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, []string{"kind"}, Fields(err))
}

func TestDetails(t *testing.T) {
	p := validCustomerPayload()
	delete(p, "phone")

	_, _, err := newTestValidator().Customer(p)
	assert.Equal(t, []models.ErrorDetail{{Field: "phone", Issue: "is required"}}, Details(err))
	assert.Contains(t, err.Error(), "phone: is required")
	assert.Nil(t, Details(nil))
}

func TestRoundTrip(t *testing.T) {
	v := newTestValidator()

	customer := validCustomerPayload()
	customer["email"] = "contato@acme.com"
	customer["birthDate"] = "1990-05-20"
	customer["zip"] = "01310-100"

	received := validReceivablePayload()
	received["status"] = "recebido"
	received["receiptDate"] = "2026-03-10T15:00:00.5Z"
	received["receivingAccountId"] = "acc-1"
	received["receivingAccountName"] = "Banco do Brasil"

	fuel := validFuelEntryPayload()
	fuel["operator_name"] = "João"

	cases := map[models.Kind]Payload{
		models.KindCustomer:          customer,
		models.KindReceivingAccount:  {"id": "acc-1", "name": "Banco", "active": false},
		models.KindAccountReceivable: received,
		models.KindVehicle:           validVehiclePayload(),
		models.KindFuelEntry:         fuel,
	}
	for kind, p := range cases {
		t.Run(string(kind), func(t *testing.T) {
			first, _, err := v.Validate(kind, p)
			require.NoError(t, err)

			second, _, err := v.Validate(kind, PayloadOf(first))
			require.NoError(t, err)

			if diff := cmp.Diff(first, second, recordOpts); diff != "" {
				t.Errorf("round trip mismatch (-first +second):\n%s", diff)
			}
		})
	}
}

func TestValidator_ConcurrentUse(t *testing.T) {
	v := newTestValidator()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := validReceivablePayload()
			if i%2 == 0 {
				p["status"] = "recebido"
				_, _, err := v.Receivable(p)
				assert.Equal(t, []string{"receiptDate"}, Fields(err))
				return
			}
			_, _, err := v.Receivable(p)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}

func TestReject(t *testing.T) {
	err := Reject(nil, "vehicle_id", "vehicle not found")
	assert.Equal(t, []string{"vehicle_id"}, Fields(err))

	_, _, verr := newTestValidator().FuelEntry(Payload{"vehicle_id": "veh-1"})
	err = Reject(verr, "vehicle_id", "vehicle not found")
	fields := Fields(err)
	assert.Equal(t, "vehicle_id", fields[len(fields)-1])
	assert.Greater(t, len(fields), 1)
}
