package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/database"
	"github.com/hypernova-labs/backoffice-service/internal/models"
	"github.com/hypernova-labs/backoffice-service/internal/validation"
)

// ErrReceiptStorageDisabled se retorna al subir un comprobante sin almacenamiento configurado
var ErrReceiptStorageDisabled = errors.New("receipt storage is not configured")

// ReceivableService maneja las cuentas por cobrar y su cobro
type ReceivableService struct {
	receivableRepo ReceivableStore
	accountRepo    ReceivingAccountStore
	receipts       ReceiptStorage
	notifier       ReceivedNotifier
	events         EventPublisher
	documents      *DocumentGenerator
	validator      *validation.Validator
	logger         *logrus.Logger
	now            func() time.Time
}

// NewReceivableService crea una nueva instancia del servicio.
// receipts, notifier y events son opcionales (nil si no están configurados).
func NewReceivableService(
	repo ReceivableStore,
	accounts ReceivingAccountStore,
	receipts ReceiptStorage,
	notifier ReceivedNotifier,
	events EventPublisher,
	validator *validation.Validator,
	logger *logrus.Logger,
) *ReceivableService {
	return &ReceivableService{
		receivableRepo: repo,
		accountRepo:    accounts,
		receipts:       receipts,
		notifier:       notifier,
		events:         events,
		documents:      NewDocumentGenerator(logger),
		validator:      validator,
		logger:         logger,
		now:            time.Now,
	}
}

// Create valida y crea una cuenta por cobrar.
// Si trae receivingAccountId la cuenta debe existir y estar activa; su nombre completa receivingAccountName.
func (s *ReceivableService) Create(ctx context.Context, p validation.Payload) (*models.AccountReceivable, validation.Warnings, error) {
	receivable, warnings, err := s.validator.Receivable(p)
	if err != nil {
		return nil, warnings, err
	}
	logWarnings(s.logger, models.KindAccountReceivable, warnings)

	if accountID, ok := receivable.ReceivingAccountID.Get(); ok {
		account, err := s.resolveAccount(ctx, accountID)
		if err != nil {
			return nil, warnings, err
		}
		if !receivable.ReceivingAccountName.IsPresent() {
			receivable.ReceivingAccountName = models.Some(account.Name)
		}
	}

	created, err := s.receivableRepo.Create(ctx, receivable)
	if err != nil {
		return nil, warnings, fmt.Errorf("error creating account receivable: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"receivable_id": created.ID,
		"sale_number":   created.SaleNumber,
		"status":        created.Status,
		"final_amount":  created.FinalAmount.String(),
	}).Info("Account receivable created successfully")

	if created.IsReceived() {
		s.afterReceived(ctx, created)
	}
	return created, warnings, nil
}

// Get obtiene una cuenta por cobrar por ID
func (s *ReceivableService) Get(ctx context.Context, id string) (*models.AccountReceivable, error) {
	receivable, err := s.receivableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting account receivable: %w", err)
	}
	return receivable, nil
}

// List lista cuentas por cobrar; status vacío no filtra
func (s *ReceivableService) List(ctx context.Context, status string) ([]models.AccountReceivable, error) {
	filter := models.None[models.ReceivableStatus]()
	if status = strings.TrimSpace(status); status != "" {
		parsed, ok := models.ParseReceivableStatus(status)
		if !ok {
			reason := fmt.Sprintf("%q is not one of %s", status, strings.Join(models.ReceivableStatusLiterals(), ", "))
			return nil, validation.Reject(nil, "status", reason)
		}
		filter = models.Some(parsed)
	}

	receivables, err := s.receivableRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts receivable: %w", err)
	}
	return receivables, nil
}

// Receive marca la cuenta como cobrada dentro de una transacción.
// Tras confirmar notifica por email y publica el evento; esas fallas sólo se registran.
func (s *ReceivableService) Receive(ctx context.Context, id string, p validation.Payload) (*models.AccountReceivable, validation.Warnings, error) {
	var warnings validation.Warnings

	updated, err := s.receivableRepo.Transition(ctx, id, func(current *models.AccountReceivable) (*models.AccountReceivable, error) {
		payload := p
		if accountID, ok := stringValue(p, "receivingAccountId"); ok {
			account, err := s.resolveAccount(ctx, accountID)
			if err != nil {
				return nil, err
			}
			if _, named := stringValue(p, "receivingAccountName"); !named {
				payload = withValue(p, "receivingAccountName", account.Name)
			}
		}

		next, w, err := s.validator.Receive(current, payload)
		warnings = w
		return next, err
	})
	if err != nil {
		if validation.IsValidationError(err) {
			return nil, warnings, err
		}
		return nil, warnings, fmt.Errorf("error receiving account receivable: %w", err)
	}
	logWarnings(s.logger, models.KindAccountReceivable, warnings)

	s.logger.WithFields(logrus.Fields{
		"receivable_id": updated.ID,
		"sale_number":   updated.SaleNumber,
		"account":       updated.ReceivingAccountName.OrElse(""),
	}).Info("Account receivable received")

	s.afterReceived(ctx, updated)
	return updated, warnings, nil
}

// UploadReceipt guarda el comprobante y retorna su URL.
// Si la cuenta ya está cobrada la URL queda registrada; si no, se envía luego en Receive.
func (s *ReceivableService) UploadReceipt(ctx context.Context, id, filename string, data []byte) (*models.ReceiptUploadResponse, error) {
	if s.receipts == nil {
		return nil, ErrReceiptStorageDisabled
	}

	receivable, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.receipts.Upload(ctx, receivable.ID, filename, data)
	if err != nil {
		return nil, fmt.Errorf("error uploading receipt: %w", err)
	}

	if receivable.IsReceived() {
		updatedAt := s.now().UTC()
		if updatedAt.Before(receivable.CreatedAt) {
			updatedAt = receivable.CreatedAt
		}
		if err := s.receivableRepo.SetReceiptURL(ctx, receivable.ID, url, updatedAt); err != nil {
			if delErr := s.receipts.Delete(ctx, url); delErr != nil {
				s.logger.WithError(delErr).WithField("receipt_url", url).Warn("Failed to remove orphaned receipt")
			}
			return nil, fmt.Errorf("error saving receipt url: %w", err)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"receivable_id": receivable.ID,
		"receipt_url":   url,
		"size":          len(data),
	}).Info("Receipt uploaded successfully")

	return &models.ReceiptUploadResponse{ReceiptURL: url}, nil
}

// ReceiptDocument genera el comprobante en PDF de una cuenta cobrada
func (s *ReceivableService) ReceiptDocument(ctx context.Context, id string) ([]byte, error) {
	receivable, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !receivable.IsReceived() {
		return nil, validation.Reject(nil, "status", fmt.Sprintf("receipt document requires status %s", models.ReceivableStatusReceived))
	}

	data, err := s.documents.GenerateReceiptPDF(receivable)
	if err != nil {
		return nil, fmt.Errorf("error generating receipt document: %w", err)
	}
	return data, nil
}

// resolveAccount exige que la cuenta de cobro exista y esté activa
func (s *ReceivableService) resolveAccount(ctx context.Context, id string) (*models.ReceivingAccount, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, validation.Reject(nil, "receivingAccountId", "receiving account not found")
		}
		return nil, fmt.Errorf("error getting receiving account: %w", err)
	}
	if !account.Active {
		return nil, validation.Reject(nil, "receivingAccountId", "receiving account is inactive")
	}
	return account, nil
}

func (s *ReceivableService) afterReceived(ctx context.Context, r *models.AccountReceivable) {
	if s.notifier != nil {
		if err := s.notifier.SendReceivableReceived(ctx, r); err != nil {
			s.logger.WithError(err).WithField("receivable_id", r.ID).Warn("Failed to send receipt notification")
		}
	}
	if s.events != nil {
		if err := s.events.PublishReceivableReceived(ctx, r); err != nil {
			s.logger.WithError(err).WithField("receivable_id", r.ID).Warn("Failed to publish receivable event")
		}
	}
}
