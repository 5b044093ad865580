package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hypernova-labs/backoffice-service/internal/models"
	"github.com/hypernova-labs/backoffice-service/internal/validation"
)

// validateResponse es el resultado de una validación sin persistencia
type validateResponse struct {
	Kind     models.Kind          `json:"kind"`
	Valid    bool                 `json:"valid"`
	Record   models.Record        `json:"record,omitempty"`
	Warnings validation.Warnings  `json:"warnings,omitempty"`
	Errors   []models.ErrorDetail `json:"errors,omitempty"`
}

// ValidatePayload valida un payload del tipo :kind sin guardarlo.
// Un payload inválido responde 200 con valid=false y todas las fallas.
func (api *API) ValidatePayload(c *gin.Context) {
	kind, ok := models.ParseKind(c.Param("kind"))
	if !ok {
		literals := make([]string, 0, len(models.Kinds))
		for _, k := range models.Kinds {
			literals = append(literals, string(k))
		}
		c.JSON(http.StatusBadRequest, models.NewValidationError("Unknown record kind", []models.ErrorDetail{
			{Field: "kind", Issue: "must be one of " + strings.Join(literals, ", ")},
		}))
		return
	}

	p, ok := api.decodePayload(c)
	if !ok {
		return
	}

	record, warnings, err := api.services.Validation.Validate(c.Request.Context(), string(kind), p)
	if err != nil && !validation.IsValidationError(err) {
		api.respondError(c, err, "Record", "validating payload")
		return
	}

	c.JSON(http.StatusOK, validateResponse{
		Kind:     kind,
		Valid:    err == nil,
		Record:   record,
		Warnings: warnings,
		Errors:   validation.Details(err),
	})
}
