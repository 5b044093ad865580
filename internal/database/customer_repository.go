package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

const customerColumns = `id, code, name, type, cpf_cnpj, rg_ie, phone, email, cellphone,
	zip, street, number, complement, neighborhood, city, state,
	birth_date, notes, active, created_at`

// CustomerRepository maneja las operaciones de base de datos para Customer
type CustomerRepository struct {
	db     *DB
	logger *logrus.Logger
}

// NewCustomerRepository crea una nueva instancia del repositorio
func NewCustomerRepository(db *DB, logger *logrus.Logger) *CustomerRepository {
	return &CustomerRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserta un cliente validado y le asigna el ID
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	created := *customer
	created.ID = newID()

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	_, err := r.db.ExecWithTimeout(ctx, query,
		created.ID, created.Code, created.Name, created.Type, created.CPFCNPJ, created.RGIE,
		created.Phone, created.Email, created.Cellphone,
		created.Zip, created.Street, created.Number, created.Complement,
		created.Neighborhood, created.City, created.State,
		created.BirthDate, created.Notes, created.Active, created.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("customer code %s: %w", created.Code, ErrDuplicateCode)
		}
		return nil, fmt.Errorf("error creating customer: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"customer_id": created.ID,
		"code":        created.Code,
	}).Debug("Customer inserted")

	return &created, nil
}

// GetByID obtiene un cliente por ID, activo o no
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying customer: %w", err)
	}

	return customer, nil
}

// List obtiene los clientes ordenados por código
func (r *CustomerRepository) List(ctx context.Context, activeOnly bool) ([]models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE ($1 = false OR active = true) ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("error querying customers: %w", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning customer: %w", err)
		}
		customers = append(customers, *customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// Update reemplaza los campos de un cliente; id y created_at no cambian
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	if !validID(customer.ID) {
		return ErrNotFound
	}

	query := `
		UPDATE customers
		SET code = $1, name = $2, type = $3, cpf_cnpj = $4, rg_ie = $5, phone = $6,
			email = $7, cellphone = $8, zip = $9, street = $10, number = $11,
			complement = $12, neighborhood = $13, city = $14, state = $15,
			birth_date = $16, notes = $17, active = $18
		WHERE id = $19
	`
	result, err := r.db.ExecWithTimeout(ctx, query,
		customer.Code, customer.Name, customer.Type, customer.CPFCNPJ, customer.RGIE, customer.Phone,
		customer.Email, customer.Cellphone, customer.Zip, customer.Street, customer.Number,
		customer.Complement, customer.Neighborhood, customer.City, customer.State,
		customer.BirthDate, customer.Notes, customer.Active, customer.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("customer code %s: %w", customer.Code, ErrDuplicateCode)
		}
		return fmt.Errorf("error updating customer: %w", err)
	}

	return requireAffected(result)
}

// Deactivate marca un cliente como inactivo
func (r *CustomerRepository) Deactivate(ctx context.Context, id string) error {
	return deactivate(ctx, r.db, "customers", id)
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(
		&c.ID, &c.Code, &c.Name, &c.Type, &c.CPFCNPJ, &c.RGIE, &c.Phone, &c.Email, &c.Cellphone,
		&c.Zip, &c.Street, &c.Number, &c.Complement, &c.Neighborhood, &c.City, &c.State,
		&c.BirthDate, &c.Notes, &c.Active, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

// deactivate aplica el soft delete sobre una tabla con columna active
func deactivate(ctx context.Context, db *DB, table, id string) error {
	if !validID(id) {
		return ErrNotFound
	}

	result, err := db.ExecWithTimeout(ctx, `UPDATE `+table+` SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating %s: %w", table, err)
	}

	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
