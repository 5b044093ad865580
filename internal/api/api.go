package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/config"
	"github.com/hypernova-labs/backoffice-service/internal/database"
	"github.com/hypernova-labs/backoffice-service/internal/models"
	"github.com/hypernova-labs/backoffice-service/internal/services"
	"github.com/hypernova-labs/backoffice-service/internal/validation"
)

const healthTimeout = 3 * time.Second

// HealthChecker es una dependencia que reporta su salud en /health
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services agrupa los servicios que expone la API
type Services struct {
	Customers         *services.CustomerService
	ReceivingAccounts *services.ReceivingAccountService
	Receivables       *services.ReceivableService
	Vehicles          *services.VehicleService
	FuelEntries       *services.FuelEntryService
	Validation        *services.ValidationService
}

// API maneja todos los endpoints de la API
type API struct {
	services       Services
	apiKey         string
	maxUploadBytes int64
	version        string
	checks         map[string]HealthChecker
	logger         *logrus.Logger
}

// NewAPI crea una nueva instancia de la API.
// checks lista las dependencias de /health; "database" es obligatoria para responder 200.
func NewAPI(svcs Services, cfg *config.Config, checks map[string]HealthChecker, logger *logrus.Logger) *API {
	return &API{
		services:       svcs,
		apiKey:         cfg.Auth.APIKey,
		maxUploadBytes: cfg.Storage.MaxUploadBytes,
		version:        "1.0.0",
		checks:         checks,
		logger:         logger,
	}
}

// recordResponse es la respuesta de escritura: el registro y los avisos de validación
type recordResponse struct {
	Data     any                 `json:"data"`
	Warnings validation.Warnings `json:"warnings,omitempty"`
}

// listResponse es la respuesta de los listados
type listResponse struct {
	Data  any `json:"data"`
	Count int `json:"count"`
}

// RegisterRoutes registra /health y el grupo /v1 en el router
func (api *API) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", api.Health)

	v1 := router.Group("/v1")
	v1.Use(api.AuthMiddleware())
	{
		v1.POST("/validate/:kind", api.ValidatePayload)

		v1.POST("/customers", api.CreateCustomer)
		v1.GET("/customers", api.ListCustomers)
		v1.GET("/customers/:id", api.GetCustomer)
		v1.PUT("/customers/:id", api.UpdateCustomer)
		v1.DELETE("/customers/:id", api.DeactivateCustomer)

		v1.POST("/receiving-accounts", api.CreateReceivingAccount)
		v1.GET("/receiving-accounts", api.ListReceivingAccounts)
		v1.DELETE("/receiving-accounts/:id", api.DeactivateReceivingAccount)

		v1.POST("/receivables", api.CreateReceivable)
		v1.GET("/receivables", api.ListReceivables)
		v1.GET("/receivables/:id", api.GetReceivable)
		v1.POST("/receivables/:id/receive", api.ReceiveReceivable)
		v1.POST("/receivables/:id/receipt", api.UploadReceipt)
		v1.GET("/receivables/:id/receipt.pdf", api.GetReceiptDocument)

		v1.POST("/vehicles", api.CreateVehicle)
		v1.GET("/vehicles", api.ListVehicles)
		v1.GET("/vehicles/:id", api.GetVehicle)
		v1.PUT("/vehicles/:id", api.UpdateVehicle)
		v1.DELETE("/vehicles/:id", api.DeactivateVehicle)
		v1.GET("/vehicles/:id/fuel-entries", api.ListFuelEntries)

		v1.POST("/fuel-entries", api.CreateFuelEntry)
		v1.GET("/fuel-entries/:id", api.GetFuelEntry)
	}
}

// AuthMiddleware exige X-API-Key cuando hay una API key configurada
func (api *API) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if api.apiKey == "" {
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(api.apiKey)) != 1 {
			api.logger.WithFields(logrus.Fields{
				"path":   c.FullPath(),
				"client": c.ClientIP(),
			}).Warn("Rejected request with invalid API key")
			c.JSON(http.StatusUnauthorized, models.NewUnauthorizedError("Invalid API key"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Health reporta el estado del servicio y sus dependencias
func (api *API) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	components := make(map[string]string, len(api.checks))
	for name, check := range api.checks {
		if err := check.HealthCheck(ctx); err != nil {
			api.logger.WithError(err).WithField("component", name).Warn("Health check failed")
			components[name] = "unhealthy"
			if name == "database" {
				status = http.StatusServiceUnavailable
			}
			continue
		}
		components[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{
		"status":     overall,
		"timestamp":  time.Now().UTC(),
		"service":    "backoffice-service",
		"version":    api.version,
		"components": components,
	})
}

// decodePayload lee el cuerpo JSON conservando los números sin redondear
func (api *API) decodePayload(c *gin.Context) (validation.Payload, bool) {
	var p validation.Payload
	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&p); err != nil {
		api.logger.WithError(err).Debug("Error decoding request body")
		c.JSON(http.StatusBadRequest, models.NewValidationError("Invalid request format", []models.ErrorDetail{
			{Field: "body", Issue: "must be a JSON object"},
		}))
		return nil, false
	}
	if p == nil {
		p = validation.Payload{}
	}
	return p, true
}

// activeOnly interpreta el parámetro ?active=
func (api *API) activeOnly(c *gin.Context) (bool, bool) {
	raw := c.Query("active")
	if raw == "" {
		return false, true
	}
	active, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationError("Invalid query parameter", []models.ErrorDetail{
			{Field: "active", Issue: "must be a boolean"},
		}))
		return false, false
	}
	return active, true
}

// respondError traduce errores de servicio a la respuesta estandarizada
func (api *API) respondError(c *gin.Context, err error, resource, action string) {
	switch {
	case validation.IsValidationError(err):
		c.JSON(http.StatusBadRequest, models.NewValidationError("Validation failed", validation.Details(err)))
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, models.NewNotFoundError(resource+" not found"))
	case errors.Is(err, database.ErrDuplicateCode):
		c.JSON(http.StatusConflict, models.NewConflictError(resource+" with this code already exists"))
	case errors.Is(err, services.ErrReceiptStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, models.NewErrorResponse(models.ErrorCodeInternal, "Receipt storage is not available"))
	default:
		api.logger.WithError(err).WithField("path", c.FullPath()).Errorf("Error %s", action)
		c.JSON(http.StatusInternalServerError, models.NewInternalError("Error "+action))
	}
}
