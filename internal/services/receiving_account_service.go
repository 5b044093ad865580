package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/models"
	"github.com/hypernova-labs/backoffice-service/internal/validation"
)

// ReceivingAccountService maneja las cuentas donde se acreditan los cobros
type ReceivingAccountService struct {
	accountRepo ReceivingAccountStore
	validator   *validation.Validator
	logger      *logrus.Logger
}

// NewReceivingAccountService crea una nueva instancia del servicio
func NewReceivingAccountService(repo ReceivingAccountStore, validator *validation.Validator, logger *logrus.Logger) *ReceivingAccountService {
	return &ReceivingAccountService{
		accountRepo: repo,
		validator:   validator,
		logger:      logger,
	}
}

// Create valida el payload y crea una cuenta de cobro
func (s *ReceivingAccountService) Create(ctx context.Context, p validation.Payload) (*models.ReceivingAccount, validation.Warnings, error) {
	account, warnings, err := s.validator.ReceivingAccount(p)
	if err != nil {
		return nil, warnings, err
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		return nil, warnings, fmt.Errorf("error creating receiving account: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"account_id": created.ID,
		"name":       created.Name,
	}).Info("Receiving account created successfully")

	return created, warnings, nil
}

// Get obtiene una cuenta por ID
func (s *ReceivingAccountService) Get(ctx context.Context, id string) (*models.ReceivingAccount, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting receiving account: %w", err)
	}
	return account, nil
}

// List lista las cuentas, opcionalmente sólo las activas
func (s *ReceivingAccountService) List(ctx context.Context, activeOnly bool) ([]models.ReceivingAccount, error) {
	accounts, err := s.accountRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("error listing receiving accounts: %w", err)
	}
	return accounts, nil
}

// Deactivate desactiva una cuenta; las cuentas por cobrar existentes no cambian
func (s *ReceivingAccountService) Deactivate(ctx context.Context, id string) error {
	if err := s.accountRepo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("error deactivating receiving account: %w", err)
	}

	s.logger.WithField("account_id", id).Info("Receiving account deactivated")
	return nil
}
