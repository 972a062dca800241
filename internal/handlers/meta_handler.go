package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
)

// MetaHandler serves the static enumerations the wizard selectors render
type MetaHandler struct{}

// NewMetaHandler creates a new meta handler
func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// States handles GET /api/v1/meta/states
func (h *MetaHandler) States(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"states": models.StateOptions()})
}

// ClaimTypes handles GET /api/v1/meta/:entityType/claim-types
func (h *MetaHandler) ClaimTypes(c *gin.Context) {
	schema, ok := schemaFromPath(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"claimTypes": schema.ClaimTypes,
		"outcomes":   schema.Outcomes,
	})
}
