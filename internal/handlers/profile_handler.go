package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/services"
	apperrors "github.com/ratemyadjusters/ratemyadjusters-api/pkg/errors"
)

// ProfileHandler handles public profile pages and cache administration
type ProfileHandler struct {
	service services.ProfileServiceInterface
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetProfile handles GET /api/v1/profiles/:entityType/:slug
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	schema, ok := schemaFromPath(c)
	if !ok {
		return
	}

	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing profile slug"})
		return
	}

	entity, err := h.service.GetProfile(c.Request.Context(), schema, slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Profile not found", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.JSON(http.StatusOK, entity)
}

// invalidateCacheRequest targets either one profile or, when slug is
// empty, the whole cache
type invalidateCacheRequest struct {
	EntityType string `json:"entityType" binding:"required"`
	Slug       string `json:"slug"`
}

// InvalidateCache handles POST /api/internal/cache/invalidate. Used by
// the moderation pipeline after approving reviews.
func (h *ProfileHandler) InvalidateCache(c *gin.Context) {
	var req invalidateCacheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	if req.EntityType == "*" {
		h.service.FlushProfiles()
		c.JSON(http.StatusOK, gin.H{"success": true, "flushed": true})
		return
	}

	schema, ok := models.SchemaForPath(req.EntityType)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown entity type"})
		return
	}

	if req.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing profile slug"})
		return
	}

	h.service.InvalidateProfile(schema, req.Slug)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
