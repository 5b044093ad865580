package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/database"
	"github.com/hypernova-labs/backoffice-service/internal/models"
	"github.com/hypernova-labs/backoffice-service/internal/validation"
)

// FuelEntryService registra abastecimientos validándolos contra su vehículo
type FuelEntryService struct {
	entryRepo FuelEntryStore
	vehicles  VehicleResolver
	events    EventPublisher
	validator *validation.Validator
	logger    *logrus.Logger
}

// NewFuelEntryService crea una nueva instancia del servicio. events puede ser nil.
func NewFuelEntryService(repo FuelEntryStore, vehicles VehicleResolver, events EventPublisher, validator *validation.Validator, logger *logrus.Logger) *FuelEntryService {
	return &FuelEntryService{
		entryRepo: repo,
		vehicles:  vehicles,
		events:    events,
		validator: validator,
		logger:    logger,
	}
}

// Create resuelve el vehículo, valida el abastecimiento contra él y lo registra
func (s *FuelEntryService) Create(ctx context.Context, p validation.Payload) (*models.FuelEntry, validation.Warnings, error) {
	entry, warnings, err := validateFuelEntry(ctx, s.vehicles, s.validator, p)
	if err != nil {
		return nil, warnings, err
	}
	logWarnings(s.logger, models.KindFuelEntry, warnings)

	created, err := s.entryRepo.Create(ctx, entry)
	if err != nil {
		return nil, warnings, fmt.Errorf("error creating fuel entry: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"fuel_entry_id": created.ID,
		"vehicle_id":    created.VehicleID,
		"liters":        created.Liters.String(),
	}).Info("Fuel entry recorded successfully")

	if s.events != nil {
		if err := s.events.PublishFuelEntryRecorded(ctx, created); err != nil {
			s.logger.WithError(err).WithField("fuel_entry_id", created.ID).Warn("Failed to publish fuel entry event")
		}
	}
	return created, warnings, nil
}

// Get obtiene un abastecimiento con su vehículo anotado
func (s *FuelEntryService) Get(ctx context.Context, id string) (*models.FuelEntry, error) {
	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting fuel entry: %w", err)
	}
	return entry, nil
}

// ListByVehicle lista los abastecimientos de un vehículo existente
func (s *FuelEntryService) ListByVehicle(ctx context.Context, vehicleID string) ([]models.FuelEntry, error) {
	if _, err := s.vehicles.Get(ctx, vehicleID); err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("error listing fuel entries: %w", err)
	}
	return entries, nil
}

// validateFuelEntry valida con el vehículo referenciado cuando existe.
// Un vehicle_id desconocido se suma a las demás fallas del payload.
func validateFuelEntry(ctx context.Context, vehicles VehicleResolver, validator *validation.Validator, p validation.Payload) (*models.FuelEntry, validation.Warnings, error) {
	var vehicle *models.Vehicle
	missing := false

	if vehicleID, ok := stringValue(p, "vehicle_id"); ok && vehicles != nil {
		v, err := vehicles.Get(ctx, vehicleID)
		switch {
		case err == nil:
			vehicle = v
		case errors.Is(err, database.ErrNotFound):
			missing = true
		default:
			return nil, nil, err
		}
	}

	entry, warnings, err := validator.FuelEntryFor(vehicle, p)
	if missing {
		return nil, warnings, validation.Reject(err, "vehicle_id", "vehicle not found")
	}
	return entry, warnings, err
}
