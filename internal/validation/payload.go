package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// Payload es el mapa crudo nombre de campo → valor recibido de un formulario o API.
// Valores aceptados: string, float64, json.Number, enteros, bool, nil, time.Time, decimal.Decimal.
type Payload map[string]any

type phase int

const (
	phaseRequired phase = iota
	phaseEnum
	phaseNumeric
	phaseConsistency
	phaseCount
)

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02"}

// checker recolecta las fallas de un payload agrupadas por fase.
// Dentro de cada fase el orden es el de las llamadas, que siguen el orden de declaración de campos.
type checker struct {
	payload  Payload
	strict   bool
	failures [phaseCount][]*models.ValidationError
	warnings Warnings
}

func newChecker(p Payload, strict bool) *checker {
	return &checker{payload: p, strict: strict}
}

func (c *checker) fail(ph phase, field, reason string) {
	c.failures[ph] = append(c.failures[ph], &models.ValidationError{Field: field, Reason: reason})
}

// failed indica si el campo ya tiene una falla registrada en alguna fase
func (c *checker) failed(field string) bool {
	for _, bucket := range c.failures {
		for _, f := range bucket {
			if f.Field == field {
				return true
			}
		}
	}
	return false
}

func (c *checker) warn(field, reason string) {
	c.warnings = append(c.warnings, Warning{Field: field, Reason: reason})
}

// inconsistent registra una violación de consistencia entre campos: error en modo estricto, aviso si no
func (c *checker) inconsistent(field, reason string) {
	if c.strict {
		c.fail(phaseConsistency, field, reason)
		return
	}
	c.warn(field, reason)
}

func (c *checker) err() error {
	var result *multierror.Error
	for _, bucket := range c.failures {
		for _, f := range bucket {
			result = multierror.Append(result, f)
		}
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = formatErrors
	return result
}

func (c *checker) lookup(field string) (any, bool) {
	v, ok := c.payload[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (c *checker) requiredString(field string) string {
	v, ok := c.lookup(field)
	if !ok {
		c.fail(phaseRequired, field, "is required")
		return ""
	}
	s, ok := v.(string)
	if !ok {
		c.fail(phaseRequired, field, "must be a string")
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		c.fail(phaseRequired, field, "is required")
	}
	return s
}

// optionalString trata el texto vacío como ausente
func (c *checker) optionalString(field string) models.Optional[string] {
	v, ok := c.lookup(field)
	if !ok {
		return models.None[string]()
	}
	s, ok := v.(string)
	if !ok {
		c.fail(phaseRequired, field, "must be a string")
		return models.None[string]()
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return models.None[string]()
	}
	return models.Some(s)
}

func (c *checker) requiredBool(field string) bool {
	v, ok := c.lookup(field)
	if !ok {
		c.fail(phaseRequired, field, "is required")
		return false
	}
	b, ok := v.(bool)
	if !ok {
		c.fail(phaseRequired, field, "must be a boolean")
	}
	return b
}

func (c *checker) boolOrDefault(field string, def bool) bool {
	v, ok := c.lookup(field)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		c.fail(phaseRequired, field, "must be a boolean")
		return def
	}
	return b
}

func (c *checker) optionalTime(field string) models.Optional[time.Time] {
	v, ok := c.lookup(field)
	if !ok {
		return models.None[time.Time]()
	}
	switch t := v.(type) {
	case time.Time:
		return models.Some(t.UTC())
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return models.None[time.Time]()
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return models.Some(parsed.UTC())
			}
		}
	}
	c.fail(phaseRequired, field, "must be an RFC 3339 timestamp")
	return models.None[time.Time]()
}

func (c *checker) timeOrNow(field string, now func() time.Time) time.Time {
	if t, ok := c.optionalTime(field).Get(); ok {
		return t
	}
	return now().UTC()
}

// requiredDecimal verifica presencia (fase 1) y luego formato y signo (fase 3)
func (c *checker) requiredDecimal(field string, nonNegative bool) (decimal.Decimal, bool) {
	v, ok := c.lookup(field)
	if !ok {
		c.fail(phaseRequired, field, "is required")
		return decimal.Zero, false
	}
	return c.number(field, v, nonNegative)
}

func (c *checker) optionalDecimal(field string, nonNegative bool) models.Optional[decimal.Decimal] {
	v, ok := c.lookup(field)
	if !ok {
		return models.None[decimal.Decimal]()
	}
	d, ok := c.number(field, v, nonNegative)
	if !ok {
		return models.None[decimal.Decimal]()
	}
	return models.Some(d)
}

func (c *checker) number(field string, v any, nonNegative bool) (decimal.Decimal, bool) {
	d, err := toDecimal(v)
	if err != nil {
		c.fail(phaseNumeric, field, err.Error())
		return decimal.Zero, false
	}
	if nonNegative && d.IsNegative() {
		c.fail(phaseNumeric, field, "must not be negative")
		return decimal.Zero, false
	}
	return d, true
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, fmt.Errorf("must be a finite number")
		}
		return decimal.NewFromFloat(n), nil
	case float32:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, fmt.Errorf("must be a finite number")
		}
		return decimal.NewFromFloat32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case json.Number:
		return parseDecimal(string(n))
	case string:
		return parseDecimal(n)
	default:
		return decimal.Zero, fmt.Errorf("must be a number")
	}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("must be a finite number")
	}
	return d, nil
}

// requiredEnum verifica presencia (fase 1) y pertenencia al conjunto cerrado (fase 2)
func requiredEnum[E any](c *checker, field string, parse func(string) (E, bool), literals []string) (E, bool) {
	var zero E
	v, ok := c.lookup(field)
	if !ok {
		c.fail(phaseRequired, field, "is required")
		return zero, false
	}
	s, isString := v.(string)
	if !isString {
		c.fail(phaseEnum, field, fmt.Sprintf("must be one of %s", strings.Join(literals, ", ")))
		return zero, false
	}
	e, ok := parse(s)
	if !ok {
		c.fail(phaseEnum, field, fmt.Sprintf("%q is not one of %s", s, strings.Join(literals, ", ")))
		return zero, false
	}
	return e, true
}

func withinTolerance(got, want, tolerance decimal.Decimal) bool {
	return got.Sub(want).Abs().LessThanOrEqual(tolerance)
}
