package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// CreateVehicle crea un vehículo
func (api *API) CreateVehicle(c *gin.Context) {
	p, ok := api.decodePayload(c)
	if !ok {
		return
	}

	vehicle, warnings, err := api.services.Vehicles.Create(c.Request.Context(), p)
	if err != nil {
		api.respondError(c, err, "Vehicle", "creating vehicle")
		return
	}

	c.JSON(http.StatusCreated, recordResponse{Data: vehicle, Warnings: warnings})
}

// ListVehicles lista vehículos; ?active=true filtra los activos
func (api *API) ListVehicles(c *gin.Context) {
	activeOnly, ok := api.activeOnly(c)
	if !ok {
		return
	}

	vehicles, err := api.services.Vehicles.List(c.Request.Context(), activeOnly)
	if err != nil {
		api.respondError(c, err, "Vehicle", "listing vehicles")
		return
	}

	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	c.JSON(http.StatusOK, listResponse{Data: vehicles, Count: len(vehicles)})
}

// GetVehicle obtiene un vehículo por ID
func (api *API) GetVehicle(c *gin.Context) {
	vehicle, err := api.services.Vehicles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.respondError(c, err, "Vehicle", "retrieving vehicle")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicle reemplaza los datos de un vehículo
func (api *API) UpdateVehicle(c *gin.Context) {
	p, ok := api.decodePayload(c)
	if !ok {
		return
	}

	vehicle, warnings, err := api.services.Vehicles.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		api.respondError(c, err, "Vehicle", "updating vehicle")
		return
	}

	c.JSON(http.StatusOK, recordResponse{Data: vehicle, Warnings: warnings})
}

// DeactivateVehicle desactiva un vehículo
func (api *API) DeactivateVehicle(c *gin.Context) {
	if err := api.services.Vehicles.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		api.respondError(c, err, "Vehicle", "deactivating vehicle")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListFuelEntries lista los abastecimientos de un vehículo
func (api *API) ListFuelEntries(c *gin.Context) {
	entries, err := api.services.FuelEntries.ListByVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.respondError(c, err, "Vehicle", "listing fuel entries")
		return
	}

	if entries == nil {
		entries = []models.FuelEntry{}
	}
	c.JSON(http.StatusOK, listResponse{Data: entries, Count: len(entries)})
}

// CreateFuelEntry registra un abastecimiento
func (api *API) CreateFuelEntry(c *gin.Context) {
	p, ok := api.decodePayload(c)
	if !ok {
		return
	}

	entry, warnings, err := api.services.FuelEntries.Create(c.Request.Context(), p)
	if err != nil {
		api.respondError(c, err, "Fuel entry", "creating fuel entry")
		return
	}

	c.JSON(http.StatusCreated, recordResponse{Data: entry, Warnings: warnings})
}

// GetFuelEntry obtiene un abastecimiento con su vehículo
func (api *API) GetFuelEntry(c *gin.Context) {
	entry, err := api.services.FuelEntries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.respondError(c, err, "Fuel entry", "retrieving fuel entry")
		return
	}

	c.JSON(http.StatusOK, entry)
}
