package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// CreateReceivable crea una cuenta por cobrar
func (api *API) CreateReceivable(c *gin.Context) {
	p, ok := api.decodePayload(c)
	if !ok {
		return
	}

	receivable, warnings, err := api.services.Receivables.Create(c.Request.Context(), p)
	if err != nil {
		api.respondError(c, err, "Account receivable", "creating account receivable")
		return
	}

	c.JSON(http.StatusCreated, recordResponse{Data: receivable, Warnings: warnings})
}

// ListReceivables lista cuentas por cobrar; ?status=pendente|recebido filtra
func (api *API) ListReceivables(c *gin.Context) {
	receivables, err := api.services.Receivables.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		api.respondError(c, err, "Account receivable", "listing accounts receivable")
		return
	}

	if receivables == nil {
		receivables = []models.AccountReceivable{}
	}
	c.JSON(http.StatusOK, listResponse{Data: receivables, Count: len(receivables)})
}

// GetReceivable obtiene una cuenta por cobrar por ID
func (api *API) GetReceivable(c *gin.Context) {
	receivable, err := api.services.Receivables.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.respondError(c, err, "Account receivable", "retrieving account receivable")
		return
	}

	c.JSON(http.StatusOK, receivable)
}

// ReceiveReceivable marca una cuenta por cobrar como cobrada
func (api *API) ReceiveReceivable(c *gin.Context) {
	p, ok := api.decodePayload(c)
	if !ok {
		return
	}

	receivable, warnings, err := api.services.Receivables.Receive(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		api.respondError(c, err, "Account receivable", "receiving account receivable")
		return
	}

	c.JSON(http.StatusOK, recordResponse{Data: receivable, Warnings: warnings})
}

// UploadReceipt sube el comprobante (campo multipart "file") y retorna su URL
func (api *API) UploadReceipt(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationError("Invalid request format", []models.ErrorDetail{
			{Field: "file", Issue: "is required"},
		}))
		return
	}
	if api.maxUploadBytes > 0 && header.Size > api.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, models.NewValidationError("File too large", []models.ErrorDetail{
			{Field: "file", Issue: fmt.Sprintf("must not exceed %d bytes", api.maxUploadBytes)},
		}))
		return
	}

	file, err := header.Open()
	if err != nil {
		api.respondError(c, err, "Receipt", "reading receipt")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		api.respondError(c, err, "Receipt", "reading receipt")
		return
	}

	response, err := api.services.Receivables.UploadReceipt(c.Request.Context(), c.Param("id"), header.Filename, data)
	if err != nil {
		api.respondError(c, err, "Account receivable", "uploading receipt")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetReceiptDocument descarga el comprobante de cobro en PDF
func (api *API) GetReceiptDocument(c *gin.Context) {
	id := c.Param("id")
	data, err := api.services.Receivables.ReceiptDocument(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err, "Account receivable", "generating receipt document")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"comprovante-%s.pdf\"", id))
	c.Data(http.StatusOK, "application/pdf", data)
}
