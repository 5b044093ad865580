package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// Warning es una inconsistencia tolerada; no impide construir el registro
type Warning struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Reason)
}

// Warnings es la lista ordenada de avisos de una validación
type Warnings []Warning

// Fields retorna los nombres de campo citados, en orden
func (ws Warnings) Fields() []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Field)
	}
	return out
}

// Errors aplana el error de validación en la lista ordenada de ValidationError.
// Retorna nil si err no proviene de esta capa.
func Errors(err error) []*models.ValidationError {
	if err == nil {
		return nil
	}
	var list []error
	var merr *multierror.Error
	if errors.As(err, &merr) {
		list = merr.WrappedErrors()
	} else {
		list = []error{err}
	}

	var out []*models.ValidationError
	for _, e := range list {
		var ve *models.ValidationError
		if errors.As(e, &ve) {
			out = append(out, ve)
		}
	}
	return out
}

// Details convierte el error de validación en los detalles de la respuesta de la API
func Details(err error) []models.ErrorDetail {
	errs := Errors(err)
	if len(errs) == 0 {
		return nil
	}
	details := make([]models.ErrorDetail, 0, len(errs))
	for _, e := range errs {
		details = append(details, e.Detail())
	}
	return details
}

// Fields retorna los nombres de campo citados por el error, en orden
func Fields(err error) []string {
	errs := Errors(err)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

// IsValidationError retorna true si err contiene al menos un ValidationError
func IsValidationError(err error) bool {
	return len(Errors(err)) > 0
}

func formatErrors(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// Reject agrega una falla de campo al error de validación dado, o crea uno nuevo.
// Lo usan los servicios para fallas que dependen de otros registros (p.ej. vehículo inexistente).
func Reject(err error, field, reason string) error {
	var merr *multierror.Error
	if err != nil && !errors.As(err, &merr) {
		return err
	}
	merr = multierror.Append(merr, &models.ValidationError{Field: field, Reason: reason})
	merr.ErrorFormat = formatErrors
	return merr
}
