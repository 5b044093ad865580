package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypernova-labs/backoffice-service/internal/database"
	"github.com/hypernova-labs/backoffice-service/internal/models"
	"github.com/hypernova-labs/backoffice-service/internal/validation"
)

func dieselTruck() *models.Vehicle {
	return &models.Vehicle{
		ID:           "veh-1",
		Name:         models.Some("Scania R450"),
		Type:         models.VehicleTypeTruck,
		FuelType:     models.FuelTypeDiesel,
		Plate:        models.Some("ABC1D23"),
		UsesOdometer: true,
		Active:       true,
		CreatedAt:    time.Date(2025, 11, 2, 8, 0, 0, 0, time.UTC),
	}
}

func vehicleRepoWith(v *models.Vehicle, reads *int) *vehicleStoreMock {
	return &vehicleStoreMock{
		GetByIDFunc: func(_ context.Context, id string) (*models.Vehicle, error) {
			if reads != nil {
				*reads++
			}
			if v == nil || id != v.ID {
				return nil, database.ErrNotFound
			}
			copied := *v
			return &copied, nil
		},
	}
}

func TestVehicleService_GetIsCacheAside(t *testing.T) {
	reads := 0
	cache := newMemoryCache()
	svc := NewVehicleService(vehicleRepoWith(dieselTruck(), &reads), cache, testValidator(), testLogger())
	ctx := context.Background()

	first, err := svc.Get(ctx, "veh-1")
	require.NoError(t, err)
	second, err := svc.Get(ctx, "veh-1")
	require.NoError(t, err)

	assert.Equal(t, 1, reads)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first.Plate, second.Plate)
}

func TestVehicleService_GetWithoutCache(t *testing.T) {
	reads := 0
	svc := NewVehicleService(vehicleRepoWith(dieselTruck(), &reads), nil, testValidator(), testLogger())

	_, err := svc.Get(context.Background(), "veh-1")
	require.NoError(t, err)
	_, err = svc.Get(context.Background(), "veh-404")
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.Equal(t, 2, reads)
}

func TestVehicleService_UpdateInvalidatesCache(t *testing.T) {
	repo := vehicleRepoWith(dieselTruck(), nil)
	repo.UpdateFunc = func(context.Context, *models.Vehicle) error { return nil }
	cache := newMemoryCache()
	require.NoError(t, cache.SetVehicle(context.Background(), dieselTruck()))
	svc := NewVehicleService(repo, cache, testValidator(), testLogger())

	got, _, err := svc.Update(context.Background(), "veh-1", validation.Payload{
		"type":          "caminhao",
		"fuel_type":     "gasolina",
		"uses_odometer": true,
		"tank_capacity": "450",
	})
	require.NoError(t, err)
	assert.Equal(t, models.FuelTypeGasoline, got.FuelType)
	assert.Equal(t, dieselTruck().CreatedAt, got.CreatedAt)
	capacity, _ := got.TankCapacity.Get()
	assert.True(t, capacity.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, []string{"veh-1"}, cache.invalidated)
}

func TestVehicleService_DeactivateInvalidatesCache(t *testing.T) {
	repo := &vehicleStoreMock{DeactivateFunc: func(context.Context, string) error { return nil }}
	cache := newMemoryCache()
	svc := NewVehicleService(repo, cache, testValidator(), testLogger())

	require.NoError(t, svc.Deactivate(context.Background(), "veh-1"))
	assert.Equal(t, []string{"veh-1"}, cache.invalidated)
}
