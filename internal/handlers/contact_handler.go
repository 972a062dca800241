package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/services"
)

// ContactHandler handles contact form submissions
type ContactHandler struct {
	service services.ContactServiceInterface
}

// NewContactHandler creates a new contact handler
func NewContactHandler(service services.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit handles POST /api/v1/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		attachError(c, err)
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
