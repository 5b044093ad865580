package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/models"
	"github.com/hypernova-labs/backoffice-service/internal/validation"
)

// CustomerService maneja la lógica de negocio para Customer
type CustomerService struct {
	customerRepo CustomerStore
	validator    *validation.Validator
	logger       *logrus.Logger
}

// NewCustomerService crea una nueva instancia del servicio
func NewCustomerService(repo CustomerStore, validator *validation.Validator, logger *logrus.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: repo,
		validator:    validator,
		logger:       logger,
	}
}

// Create valida el payload y crea un nuevo cliente
func (s *CustomerService) Create(ctx context.Context, p validation.Payload) (*models.Customer, validation.Warnings, error) {
	customer, warnings, err := s.validator.Customer(p)
	if err != nil {
		return nil, warnings, err
	}
	logWarnings(s.logger, models.KindCustomer, warnings)

	created, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		return nil, warnings, fmt.Errorf("error creating customer: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"customer_id": created.ID,
		"code":        created.Code,
		"name":        created.Name,
	}).Info("Customer created successfully")

	return created, warnings, nil
}

// Get obtiene un cliente por ID
func (s *CustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting customer: %w", err)
	}

	return customer, nil
}

// List lista clientes, opcionalmente sólo los activos
func (s *CustomerService) List(ctx context.Context, activeOnly bool) ([]models.Customer, error) {
	customers, err := s.customerRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("error listing customers: %w", err)
	}

	return customers, nil
}

// Update reemplaza los datos de un cliente; id y createdAt se conservan.
// Si el payload no trae active se mantiene el valor actual.
func (s *CustomerService) Update(ctx context.Context, id string, p validation.Payload) (*models.Customer, validation.Warnings, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	customer, warnings, err := s.validator.Customer(p)
	if err != nil {
		return nil, warnings, err
	}
	logWarnings(s.logger, models.KindCustomer, warnings)

	customer.ID = existing.ID
	customer.CreatedAt = existing.CreatedAt
	if !hasValue(p, "active") {
		customer.Active = existing.Active
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, warnings, fmt.Errorf("error updating customer: %w", err)
	}

	s.logger.WithField("customer_id", customer.ID).Info("Customer updated successfully")
	return customer, warnings, nil
}

// Deactivate desactiva un cliente (no se borra)
func (s *CustomerService) Deactivate(ctx context.Context, id string) error {
	if err := s.customerRepo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("error deactivating customer: %w", err)
	}

	s.logger.WithField("customer_id", id).Info("Customer deactivated")
	return nil
}
