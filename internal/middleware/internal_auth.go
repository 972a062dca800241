package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/ratemyadjusters/ratemyadjusters-api/pkg/errors"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/logger"
)

const internalTokenHeader = "X-Internal-Api-Token"

// InternalAuth guards operational endpoints with a shared token. The
// comparison is constant-time.
func InternalAuth(validToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(internalTokenHeader)

		if token == "" || validToken == "" {
			logger.Warn("Missing internal API token",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			_ = c.Error(apperrors.ErrUnauthorized)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authentication token"})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(validToken)) != 1 {
			logger.Warn("Invalid internal API token",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			_ = c.Error(apperrors.ErrUnauthorized)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
