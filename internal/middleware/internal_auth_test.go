package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter(token string) *gin.Engine {
	router := gin.New()
	router.POST("/internal", InternalAuth(token), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestInternalAuth_ValidToken(t *testing.T) {
	router := authRouter("s3cret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/internal", http.NoBody)
	req.Header.Set("X-Internal-Api-Token", "s3cret")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInternalAuth_MissingToken(t *testing.T) {
	router := authRouter("s3cret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/internal", http.NoBody)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInternalAuth_WrongToken(t *testing.T) {
	router := authRouter("s3cret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/internal", http.NoBody)
	req.Header.Set("X-Internal-Api-Token", "wrong")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInternalAuth_EmptyConfiguredTokenRejectsAll(t *testing.T) {
	router := authRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/internal", http.NoBody)
	req.Header.Set("X-Internal-Api-Token", "")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
