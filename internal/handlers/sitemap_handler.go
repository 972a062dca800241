package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/services"
	apperrors "github.com/ratemyadjusters/ratemyadjusters-api/pkg/errors"
)

// SitemapHandler serves the XML sitemap index and its pages
type SitemapHandler struct {
	service services.SitemapServiceInterface
}

// NewSitemapHandler creates a new sitemap handler
func NewSitemapHandler(service services.SitemapServiceInterface) *SitemapHandler {
	return &SitemapHandler{service: service}
}

// Index handles GET /sitemap.xml
func (h *SitemapHandler) Index(c *gin.Context) {
	index, err := h.service.Index(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.XML(http.StatusOK, index)
}

// Page handles GET /sitemaps/:entityType/:page where :page looks like "3.xml"
func (h *SitemapHandler) Page(c *gin.Context) {
	schema, ok := schemaFromPath(c)
	if !ok {
		return
	}

	pageParam := strings.TrimSuffix(c.Param("page"), ".xml")
	page, err := strconv.Atoi(pageParam)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sitemap not found"})
		return
	}

	urlSet, err := h.service.Page(c.Request.Context(), schema, page)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Sitemap not found", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.XML(http.StatusOK, urlSet)
}
