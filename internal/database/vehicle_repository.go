package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

const vehicleColumns = `id, name, type, fuel_type, plate, tank_capacity, uses_odometer, active, created_at`

// VehicleRepository maneja las operaciones de base de datos para Vehicle
type VehicleRepository struct {
	db     *DB
	logger *logrus.Logger
}

// NewVehicleRepository crea una nueva instancia del repositorio
func NewVehicleRepository(db *DB, logger *logrus.Logger) *VehicleRepository {
	return &VehicleRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserta un vehículo validado
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	created := *vehicle
	created.ID = newID()

	_, err := r.db.ExecWithTimeout(ctx,
		`INSERT INTO vehicles (`+vehicleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		created.ID, created.Name, created.Type, created.FuelType, created.Plate,
		created.TankCapacity, created.UsesOdometer, created.Active, created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error creating vehicle: %w", err)
	}

	return &created, nil
}

// GetByID obtiene un vehículo por ID
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	vehicle, err := scanVehicle(r.db.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying vehicle: %w", err)
	}

	return vehicle, nil
}

// List obtiene los vehículos ordenados por fecha de creación
func (r *VehicleRepository) List(ctx context.Context, activeOnly bool) ([]models.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE ($1 = false OR active = true) ORDER BY created_at`,
		activeOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []models.Vehicle{}
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, *vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicles: %w", err)
	}

	return vehicles, nil
}

// Update reemplaza los campos de un vehículo; id y created_at no cambian
func (r *VehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	if !validID(vehicle.ID) {
		return ErrNotFound
	}

	result, err := r.db.ExecWithTimeout(ctx, `
		UPDATE vehicles
		SET name = $1, type = $2, fuel_type = $3, plate = $4, tank_capacity = $5,
			uses_odometer = $6, active = $7
		WHERE id = $8
	`,
		vehicle.Name, vehicle.Type, vehicle.FuelType, vehicle.Plate, vehicle.TankCapacity,
		vehicle.UsesOdometer, vehicle.Active, vehicle.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating vehicle: %w", err)
	}

	return requireAffected(result)
}

// Deactivate marca un vehículo como inactivo
func (r *VehicleRepository) Deactivate(ctx context.Context, id string) error {
	return deactivate(ctx, r.db, "vehicles", id)
}

func scanVehicle(row rowScanner) (*models.Vehicle, error) {
	var v models.Vehicle
	err := row.Scan(
		&v.ID, &v.Name, &v.Type, &v.FuelType, &v.Plate,
		&v.TankCapacity, &v.UsesOdometer, &v.Active, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.CreatedAt = v.CreatedAt.UTC()
	return &v, nil
}
