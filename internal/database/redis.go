package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/config"
	"github.com/hypernova-labs/backoffice-service/internal/models"
)

const (
	redisCallTimeout = 5 * time.Second
	vehicleKeyPrefix = "vehicle:"
)

// Redis representa la conexión a Redis, usada como cache de vehículos
type Redis struct {
	*redis.Client
	vehicleTTL time.Duration
}

// ConnectRedis establece la conexión a Redis
func ConnectRedis(ctx context.Context, cfg *config.Config) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisCallTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error pinging Redis: %w", err)
	}

	return NewRedis(client, cfg.Redis.VehicleTTL), nil
}

// NewRedis envuelve un cliente existente
func NewRedis(client *redis.Client, vehicleTTL time.Duration) *Redis {
	return &Redis{Client: client, vehicleTTL: vehicleTTL}
}

// Close cierra la conexión a Redis
func (r *Redis) Close() error {
	return r.Client.Close()
}

// HealthCheck verifica la salud de Redis
func (r *Redis) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, redisCallTimeout)
	defer cancel()

	return r.Ping(ctx).Err()
}

// GetVehicle obtiene un vehículo del cache; found es false si no está
func (r *Redis) GetVehicle(ctx context.Context, id string) (vehicle *models.Vehicle, found bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, redisCallTimeout)
	defer cancel()

	data, err := r.Client.Get(ctx, vehicleKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error reading cached vehicle: %w", err)
	}

	var v models.Vehicle
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false, fmt.Errorf("error decoding cached vehicle: %w", err)
	}
	return &v, true, nil
}

// SetVehicle guarda un vehículo en el cache con el TTL configurado
func (r *Redis) SetVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	data, err := json.Marshal(vehicle)
	if err != nil {
		return fmt.Errorf("error encoding vehicle: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, redisCallTimeout)
	defer cancel()

	return r.Client.Set(ctx, vehicleKeyPrefix+vehicle.ID, data, r.vehicleTTL).Err()
}

// InvalidateVehicle elimina un vehículo del cache
func (r *Redis) InvalidateVehicle(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, redisCallTimeout)
	defer cancel()

	return r.Client.Del(ctx, vehicleKeyPrefix+id).Err()
}

// LogStats registra las estadísticas del pool de Redis
func (r *Redis) LogStats(logger *logrus.Logger) {
	s := r.PoolStats()
	logger.WithFields(logrus.Fields{
		"hits":        s.Hits,
		"misses":      s.Misses,
		"timeouts":    s.Timeouts,
		"total_conns": s.TotalConns,
		"idle_conns":  s.IdleConns,
	}).Info("Redis pool statistics")
}
