package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// ReceivingAccountRepository maneja las operaciones de base de datos para ReceivingAccount
type ReceivingAccountRepository struct {
	db     *DB
	logger *logrus.Logger
}

// NewReceivingAccountRepository crea una nueva instancia del repositorio
func NewReceivingAccountRepository(db *DB, logger *logrus.Logger) *ReceivingAccountRepository {
	return &ReceivingAccountRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserta una cuenta de cobro
func (r *ReceivingAccountRepository) Create(ctx context.Context, account *models.ReceivingAccount) (*models.ReceivingAccount, error) {
	created := *account
	created.ID = newID()

	_, err := r.db.ExecWithTimeout(ctx,
		`INSERT INTO receiving_accounts (id, name, active, created_at) VALUES ($1, $2, $3, $4)`,
		created.ID, created.Name, created.Active, created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error creating receiving account: %w", err)
	}

	return &created, nil
}

// GetByID obtiene una cuenta por ID
func (r *ReceivingAccountRepository) GetByID(ctx context.Context, id string) (*models.ReceivingAccount, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	var a models.ReceivingAccount
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, active, created_at FROM receiving_accounts WHERE id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.Active, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying receiving account: %w", err)
	}
	a.CreatedAt = a.CreatedAt.UTC()

	return &a, nil
}

// List obtiene las cuentas ordenadas por nombre
func (r *ReceivingAccountRepository) List(ctx context.Context, activeOnly bool) ([]models.ReceivingAccount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, active, created_at FROM receiving_accounts WHERE ($1 = false OR active = true) ORDER BY name`,
		activeOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying receiving accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.ReceivingAccount{}
	for rows.Next() {
		var a models.ReceivingAccount
		if err := rows.Scan(&a.ID, &a.Name, &a.Active, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning receiving account: %w", err)
		}
		a.CreatedAt = a.CreatedAt.UTC()
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating receiving accounts: %w", err)
	}

	return accounts, nil
}

// Deactivate marca una cuenta como inactiva
func (r *ReceivingAccountRepository) Deactivate(ctx context.Context, id string) error {
	return deactivate(ctx, r.db, "receiving_accounts", id)
}
