package services

import (
	"context"

	"github.com/hypernova-labs/backoffice-service/internal/models"
	"github.com/hypernova-labs/backoffice-service/internal/validation"
)

// ValidationService valida payloads sin persistir nada
type ValidationService struct {
	validator *validation.Validator
	vehicles  VehicleResolver
}

// NewValidationService crea el servicio; vehicles permite validar abastecimientos contra su vehículo
func NewValidationService(validator *validation.Validator, vehicles VehicleResolver) *ValidationService {
	return &ValidationService{validator: validator, vehicles: vehicles}
}

// Validate valida un payload del tipo indicado por su nombre externo
func (s *ValidationService) Validate(ctx context.Context, kind string, p validation.Payload) (models.Record, validation.Warnings, error) {
	k, ok := models.ParseKind(kind)
	if ok && k == models.KindFuelEntry && s.vehicles != nil {
		entry, warnings, err := validateFuelEntry(ctx, s.vehicles, s.validator, p)
		if err != nil {
			return nil, warnings, err
		}
		return *entry, warnings, nil
	}
	return s.validator.Validate(k, p)
}
