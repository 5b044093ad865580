package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// Las lecturas traen el vehículo por join; se usa solo como anotación.
const fuelEntryJoinQuery = `
	SELECT f.id, f.vehicle_id, f.odometer_value, f.liters, f.fuel_type, f.price_per_liter,
		f.total_cost, f.operator_name, f.notes, f.created_at,
		v.id, v.name, v.type, v.fuel_type, v.plate, v.tank_capacity, v.uses_odometer, v.active, v.created_at
	FROM fuel_entries f
	JOIN vehicles v ON v.id = f.vehicle_id
`

// FuelEntryRepository maneja las operaciones de base de datos para FuelEntry
type FuelEntryRepository struct {
	db     *DB
	logger *logrus.Logger
}

// NewFuelEntryRepository crea una nueva instancia del repositorio
func NewFuelEntryRepository(db *DB, logger *logrus.Logger) *FuelEntryRepository {
	return &FuelEntryRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserta un abastecimiento; la anotación de vehículo nunca se escribe
func (r *FuelEntryRepository) Create(ctx context.Context, entry *models.FuelEntry) (*models.FuelEntry, error) {
	created := entry.WithoutAnnotation()
	created.ID = newID()

	_, err := r.db.ExecWithTimeout(ctx, `
		INSERT INTO fuel_entries (
			id, vehicle_id, odometer_value, liters, fuel_type, price_per_liter,
			total_cost, operator_name, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		created.ID, created.VehicleID, created.OdometerValue, created.Liters, created.FuelType,
		created.PricePerLiter, created.TotalCost, created.OperatorName, created.Notes, created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error creating fuel entry: %w", err)
	}

	return &created, nil
}

// GetByID obtiene un abastecimiento con su vehículo
func (r *FuelEntryRepository) GetByID(ctx context.Context, id string) (*models.FuelEntry, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	entry, err := scanFuelEntry(r.db.QueryRowContext(ctx, fuelEntryJoinQuery+` WHERE f.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying fuel entry: %w", err)
	}

	return entry, nil
}

// ListByVehicle obtiene los abastecimientos de un vehículo, más recientes primero
func (r *FuelEntryRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]models.FuelEntry, error) {
	if !validID(vehicleID) {
		return []models.FuelEntry{}, nil
	}

	rows, err := r.db.QueryContext(ctx, fuelEntryJoinQuery+` WHERE f.vehicle_id = $1 ORDER BY f.created_at DESC`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("error querying fuel entries: %w", err)
	}
	defer rows.Close()

	entries := []models.FuelEntry{}
	for rows.Next() {
		entry, err := scanFuelEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning fuel entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fuel entries: %w", err)
	}

	return entries, nil
}

func scanFuelEntry(row rowScanner) (*models.FuelEntry, error) {
	var f models.FuelEntry
	var v models.Vehicle
	err := row.Scan(
		&f.ID, &f.VehicleID, &f.OdometerValue, &f.Liters, &f.FuelType, &f.PricePerLiter,
		&f.TotalCost, &f.OperatorName, &f.Notes, &f.CreatedAt,
		&v.ID, &v.Name, &v.Type, &v.FuelType, &v.Plate, &v.TankCapacity, &v.UsesOdometer, &v.Active, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.CreatedAt = f.CreatedAt.UTC()
	v.CreatedAt = v.CreatedAt.UTC()
	f.Vehicle = &v
	return &f, nil
}
