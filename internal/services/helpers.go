package services

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/models"
	"github.com/hypernova-labs/backoffice-service/internal/validation"
)

func logWarnings(logger *logrus.Logger, kind models.Kind, warnings validation.Warnings) {
	for _, w := range warnings {
		logger.WithFields(logrus.Fields{
			"kind":   kind,
			"field":  w.Field,
			"reason": w.Reason,
		}).Warn("Record accepted with inconsistency")
	}
}

// hasValue indica si el payload trae un valor no nulo para field
func hasValue(p validation.Payload, field string) bool {
	v, ok := p[field]
	return ok && v != nil
}

// stringValue retorna el texto no vacío de field, si existe
func stringValue(p validation.Payload, field string) (string, bool) {
	s, ok := p[field].(string)
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}

// withValue copia el payload y fija field
func withValue(p validation.Payload, field string, value any) validation.Payload {
	out := make(validation.Payload, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[field] = value
	return out
}
