// Package validation convierte payloads no confiables en registros tipados,
// reportando todas las fallas de una vez. No realiza I/O ni guarda estado mutable,
// por lo que un Validator puede usarse concurrentemente.
package validation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// DefaultTolerance es la diferencia aceptada como redondeo en los chequeos aritméticos
var DefaultTolerance = decimal.NewFromFloat(0.01)

// Validator valida payloads de los cinco tipos de registro
type Validator struct {
	strict    bool
	tolerance decimal.Decimal
	now       func() time.Time
}

// Option configura un Validator
type Option func(*Validator)

// WithStrictConsistency define si las inconsistencias entre campos son errores (true) o avisos (false)
func WithStrictConsistency(strict bool) Option {
	return func(v *Validator) {
		v.strict = strict
	}
}

// WithTolerance define la tolerancia de redondeo de los chequeos aritméticos
func WithTolerance(tolerance decimal.Decimal) Option {
	return func(v *Validator) {
		v.tolerance = tolerance.Abs()
	}
}

// WithClock define el reloj usado para los timestamps por defecto
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// New crea un Validator; por defecto es estricto con tolerancia 0.01
func New(opts ...Option) *Validator {
	v := &Validator{
		strict:    true,
		tolerance: DefaultTolerance,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Strict retorna si las inconsistencias entre campos son errores
func (v *Validator) Strict() bool {
	return v.strict
}

// Validate valida un payload del tipo indicado
func (v *Validator) Validate(kind models.Kind, p Payload) (models.Record, Warnings, error) {
	switch kind {
	case models.KindCustomer:
		return record(v.Customer(p))
	case models.KindReceivingAccount:
		return record(v.ReceivingAccount(p))
	case models.KindAccountReceivable:
		return record(v.Receivable(p))
	case models.KindVehicle:
		return record(v.Vehicle(p))
	case models.KindFuelEntry:
		return record(v.FuelEntry(p))
	}
	c := newChecker(p, v.strict)
	c.fail(phaseRequired, "kind", "unknown record kind")
	return nil, nil, c.err()
}

// record evita retornar un puntero nil envuelto en una interfaz no nil
func record[R models.Record](r *R, w Warnings, err error) (models.Record, Warnings, error) {
	if err != nil {
		return nil, w, err
	}
	return *r, w, nil
}
