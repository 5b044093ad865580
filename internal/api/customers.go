package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// CreateCustomer crea un nuevo cliente
func (api *API) CreateCustomer(c *gin.Context) {
	p, ok := api.decodePayload(c)
	if !ok {
		return
	}

	customer, warnings, err := api.services.Customers.Create(c.Request.Context(), p)
	if err != nil {
		api.respondError(c, err, "Customer", "creating customer")
		return
	}

	c.JSON(http.StatusCreated, recordResponse{Data: customer, Warnings: warnings})
}

// ListCustomers lista clientes; ?active=true filtra los activos
func (api *API) ListCustomers(c *gin.Context) {
	activeOnly, ok := api.activeOnly(c)
	if !ok {
		return
	}

	customers, err := api.services.Customers.List(c.Request.Context(), activeOnly)
	if err != nil {
		api.respondError(c, err, "Customer", "listing customers")
		return
	}

	if customers == nil {
		customers = []models.Customer{}
	}
	c.JSON(http.StatusOK, listResponse{Data: customers, Count: len(customers)})
}

// GetCustomer obtiene un cliente por ID
func (api *API) GetCustomer(c *gin.Context) {
	customer, err := api.services.Customers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.respondError(c, err, "Customer", "retrieving customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer reemplaza los datos de un cliente
func (api *API) UpdateCustomer(c *gin.Context) {
	p, ok := api.decodePayload(c)
	if !ok {
		return
	}

	customer, warnings, err := api.services.Customers.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		api.respondError(c, err, "Customer", "updating customer")
		return
	}

	c.JSON(http.StatusOK, recordResponse{Data: customer, Warnings: warnings})
}

// DeactivateCustomer desactiva un cliente
func (api *API) DeactivateCustomer(c *gin.Context) {
	if err := api.services.Customers.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		api.respondError(c, err, "Customer", "deactivating customer")
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateReceivingAccount crea una cuenta de cobro
func (api *API) CreateReceivingAccount(c *gin.Context) {
	p, ok := api.decodePayload(c)
	if !ok {
		return
	}

	account, warnings, err := api.services.ReceivingAccounts.Create(c.Request.Context(), p)
	if err != nil {
		api.respondError(c, err, "Receiving account", "creating receiving account")
		return
	}

	c.JSON(http.StatusCreated, recordResponse{Data: account, Warnings: warnings})
}

// ListReceivingAccounts lista cuentas de cobro
func (api *API) ListReceivingAccounts(c *gin.Context) {
	activeOnly, ok := api.activeOnly(c)
	if !ok {
		return
	}

	accounts, err := api.services.ReceivingAccounts.List(c.Request.Context(), activeOnly)
	if err != nil {
		api.respondError(c, err, "Receiving account", "listing receiving accounts")
		return
	}

	if accounts == nil {
		accounts = []models.ReceivingAccount{}
	}
	c.JSON(http.StatusOK, listResponse{Data: accounts, Count: len(accounts)})
}

// DeactivateReceivingAccount desactiva una cuenta de cobro
func (api *API) DeactivateReceivingAccount(c *gin.Context) {
	if err := api.services.ReceivingAccounts.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		api.respondError(c, err, "Receiving account", "deactivating receiving account")
		return
	}

	c.Status(http.StatusNoContent)
}
