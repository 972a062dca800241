package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/services"
	apperrors "github.com/ratemyadjusters/ratemyadjusters-api/pkg/errors"
)

// EntityHandler handles entity search and lookup requests
type EntityHandler struct {
	service services.SearchServiceInterface
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(service services.SearchServiceInterface) *EntityHandler {
	return &EntityHandler{service: service}
}

// schemaFromPath resolves the :entityType path segment to a type
// descriptor, or writes a 404
func schemaFromPath(c *gin.Context) (*models.TypeSchema, bool) {
	schema, ok := models.SchemaForPath(c.Param("entityType"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown entity type"})
		return nil, false
	}
	return schema, true
}

// Search handles GET /api/v1/entities/:entityType/search?q=...&seq=...
func (h *EntityHandler) Search(c *gin.Context) {
	schema, ok := schemaFromPath(c)
	if !ok {
		return
	}

	// seq is optional; malformed values degrade to 0 rather than erroring
	// a keystroke
	seq, _ := strconv.ParseInt(c.Query("seq"), 10, 64)

	resp, err := h.service.Search(c.Request.Context(), schema, c.Query("q"), seq)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Search failed", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetByID handles GET /api/v1/entities/:entityType/:id
func (h *EntityHandler) GetByID(c *gin.Context) {
	schema, ok := schemaFromPath(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing entity ID"})
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), schema, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Entity not found", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.JSON(http.StatusOK, entity)
}
