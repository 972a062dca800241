package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/services"
)

// ReviewHandler handles review submission requests
type ReviewHandler struct {
	service services.ReviewServiceInterface
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service services.ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// Submit handles POST /api/v1/entities/:entityType/reviews
func (h *ReviewHandler) Submit(c *gin.Context) {
	schema, ok := schemaFromPath(c)
	if !ok {
		return
	}

	var req models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), schema, &req)
	if err != nil {
		attachError(c, err)
		if resp != nil && resp.Error != "" {
			switch {
			case errors.Is(err, services.ErrDraftInvalid),
				errors.Is(err, services.ErrCaptchaFailed):
				c.JSON(http.StatusBadRequest, resp)
			default:
				c.JSON(http.StatusInternalServerError, resp)
			}
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
