package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/models"
	"github.com/hypernova-labs/backoffice-service/internal/validation"
)

// VehicleService maneja la flota; las lecturas por ID pasan por el cache si existe
type VehicleService struct {
	vehicleRepo VehicleStore
	cache       VehicleCache
	validator   *validation.Validator
	logger      *logrus.Logger
}

// NewVehicleService crea una nueva instancia del servicio. cache puede ser nil.
func NewVehicleService(repo VehicleStore, cache VehicleCache, validator *validation.Validator, logger *logrus.Logger) *VehicleService {
	return &VehicleService{
		vehicleRepo: repo,
		cache:       cache,
		validator:   validator,
		logger:      logger,
	}
}

// Create valida y crea un vehículo
func (s *VehicleService) Create(ctx context.Context, p validation.Payload) (*models.Vehicle, validation.Warnings, error) {
	vehicle, warnings, err := s.validator.Vehicle(p)
	if err != nil {
		return nil, warnings, err
	}

	created, err := s.vehicleRepo.Create(ctx, vehicle)
	if err != nil {
		return nil, warnings, fmt.Errorf("error creating vehicle: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"vehicle_id": created.ID,
		"type":       created.Type,
		"plate":      created.Plate.OrElse(""),
	}).Info("Vehicle created successfully")

	return created, warnings, nil
}

// Get obtiene un vehículo, primero del cache y luego de la base de datos
func (s *VehicleService) Get(ctx context.Context, id string) (*models.Vehicle, error) {
	if s.cache != nil {
		vehicle, found, err := s.cache.GetVehicle(ctx, id)
		if err != nil {
			s.logger.WithError(err).WithField("vehicle_id", id).Warn("Vehicle cache read failed")
		} else if found {
			return vehicle, nil
		}
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting vehicle: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetVehicle(ctx, vehicle); err != nil {
			s.logger.WithError(err).WithField("vehicle_id", id).Warn("Vehicle cache write failed")
		}
	}
	return vehicle, nil
}

// List lista vehículos, opcionalmente sólo los activos
func (s *VehicleService) List(ctx context.Context, activeOnly bool) ([]models.Vehicle, error) {
	vehicles, err := s.vehicleRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	return vehicles, nil
}

// Update reemplaza los datos de un vehículo conservando id y created_at
func (s *VehicleService) Update(ctx context.Context, id string, p validation.Payload) (*models.Vehicle, validation.Warnings, error) {
	existing, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting vehicle: %w", err)
	}

	vehicle, warnings, err := s.validator.Vehicle(p)
	if err != nil {
		return nil, warnings, err
	}
	vehicle.ID = existing.ID
	vehicle.CreatedAt = existing.CreatedAt
	if !hasValue(p, "active") {
		vehicle.Active = existing.Active
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, warnings, fmt.Errorf("error updating vehicle: %w", err)
	}
	s.invalidate(ctx, id)

	s.logger.WithField("vehicle_id", id).Info("Vehicle updated successfully")
	return vehicle, warnings, nil
}

// Deactivate desactiva un vehículo; sus abastecimientos se conservan
func (s *VehicleService) Deactivate(ctx context.Context, id string) error {
	if err := s.vehicleRepo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("error deactivating vehicle: %w", err)
	}
	s.invalidate(ctx, id)

	s.logger.WithField("vehicle_id", id).Info("Vehicle deactivated")
	return nil
}

func (s *VehicleService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateVehicle(ctx, id); err != nil {
		s.logger.WithError(err).WithField("vehicle_id", id).Warn("Vehicle cache invalidation failed")
	}
}
