package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

const receivableColumns = `id, sale_id, sale_number, customer_name, payment_method_name,
	receiving_account_id, receiving_account_name, original_amount, interest_penalty, final_amount,
	status, receipt_date, receipt_url, created_at, updated_at`

// ReceivableRepository maneja las operaciones de base de datos para AccountReceivable
type ReceivableRepository struct {
	db     *DB
	logger *logrus.Logger
}

// NewReceivableRepository crea una nueva instancia del repositorio
func NewReceivableRepository(db *DB, logger *logrus.Logger) *ReceivableRepository {
	return &ReceivableRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserta una cuenta por cobrar validada
func (r *ReceivableRepository) Create(ctx context.Context, receivable *models.AccountReceivable) (*models.AccountReceivable, error) {
	created := *receivable
	created.ID = newID()

	query := `
		INSERT INTO accounts_receivable (` + receivableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecWithTimeout(ctx, query,
		created.ID, created.SaleID, created.SaleNumber, created.CustomerName, created.PaymentMethodName,
		created.ReceivingAccountID, created.ReceivingAccountName,
		created.OriginalAmount, created.InterestPenalty, created.FinalAmount,
		created.Status, created.ReceiptDate, created.ReceiptURL, created.CreatedAt, created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error creating account receivable: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"receivable_id": created.ID,
		"sale_id":       created.SaleID,
		"status":        created.Status.String(),
	}).Debug("Account receivable inserted")

	return &created, nil
}

// GetByID obtiene una cuenta por cobrar por ID
func (r *ReceivableRepository) GetByID(ctx context.Context, id string) (*models.AccountReceivable, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	query := `SELECT ` + receivableColumns + ` FROM accounts_receivable WHERE id = $1`
	receivable, err := scanReceivable(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying account receivable: %w", err)
	}

	return receivable, nil
}

// List obtiene las cuentas por cobrar, opcionalmente filtradas por estado
func (r *ReceivableRepository) List(ctx context.Context, status models.Optional[models.ReceivableStatus]) ([]models.AccountReceivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM accounts_receivable
		WHERE ($1::text IS NULL OR status = $1) ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("error querying accounts receivable: %w", err)
	}
	defer rows.Close()

	receivables := []models.AccountReceivable{}
	for rows.Next() {
		receivable, err := scanReceivable(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning account receivable: %w", err)
		}
		receivables = append(receivables, *receivable)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts receivable: %w", err)
	}

	return receivables, nil
}

// Transition bloquea la fila, aplica fn sobre el estado actual y persiste el resultado
// en la misma transacción. Los errores de fn se retornan sin envolver.
func (r *ReceivableRepository) Transition(ctx context.Context, id string, fn func(current *models.AccountReceivable) (*models.AccountReceivable, error)) (*models.AccountReceivable, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	var updated *models.AccountReceivable
	err := r.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		query := `SELECT ` + receivableColumns + ` FROM accounts_receivable WHERE id = $1 FOR UPDATE`
		current, err := scanReceivable(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("error locking account receivable: %w", err)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE accounts_receivable
			SET status = $1, receipt_date = $2, receipt_url = $3,
				receiving_account_id = $4, receiving_account_name = $5, updated_at = $6
			WHERE id = $7
		`,
			next.Status, next.ReceiptDate, next.ReceiptURL,
			next.ReceivingAccountID, next.ReceivingAccountName, next.UpdatedAt, id,
		)
		if err != nil {
			return fmt.Errorf("error updating account receivable: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// SetReceiptURL registra la URL del comprobante subido
func (r *ReceivableRepository) SetReceiptURL(ctx context.Context, id, url string, updatedAt time.Time) error {
	if !validID(id) {
		return ErrNotFound
	}

	result, err := r.db.ExecWithTimeout(ctx,
		`UPDATE accounts_receivable SET receipt_url = $1, updated_at = $2 WHERE id = $3`,
		url, updatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("error updating receipt url: %w", err)
	}

	return requireAffected(result)
}

func scanReceivable(row rowScanner) (*models.AccountReceivable, error) {
	var a models.AccountReceivable
	err := row.Scan(
		&a.ID, &a.SaleID, &a.SaleNumber, &a.CustomerName, &a.PaymentMethodName,
		&a.ReceivingAccountID, &a.ReceivingAccountName,
		&a.OriginalAmount, &a.InterestPenalty, &a.FinalAmount,
		&a.Status, &a.ReceiptDate, &a.ReceiptURL, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return &a, nil
}
