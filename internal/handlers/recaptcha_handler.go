package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/services"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/recaptcha"
)

// RecaptchaHandler relays token verification for forms that check the
// score before enabling their submit button
type RecaptchaHandler struct {
	verifier services.VerifierInterface
}

// NewRecaptchaHandler creates a new recaptcha handler
func NewRecaptchaHandler(verifier services.VerifierInterface) *RecaptchaHandler {
	return &RecaptchaHandler{verifier: verifier}
}

// Verify handles POST /api/v1/recaptcha/verify
func (h *RecaptchaHandler) Verify(c *gin.Context) {
	var req models.VerifyCaptchaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	score, err := h.verifier.Verify(req.Token, req.Action)
	if err != nil {
		attachError(c, err)
		switch {
		case errors.Is(err, recaptcha.ErrRejected):
			c.JSON(http.StatusOK, models.VerifyCaptchaResponse{Success: false, Score: score})
		case errors.Is(err, recaptcha.ErrUnavailable):
			// Same fail-open policy as submission: an outage must not
			// lock users out of the form
			c.JSON(http.StatusOK, models.VerifyCaptchaResponse{Success: true, Score: score})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, models.VerifyCaptchaResponse{Success: true, Score: score})
}
