package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	apperrors "github.com/ratemyadjusters/ratemyadjusters-api/pkg/errors"
)

// MockSearchService is a mock implementation of SearchServiceInterface
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, schema *models.TypeSchema, query string, seq int64) (*models.SearchResponse, error) {
	args := m.Called(ctx, schema, query, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SearchResponse), args.Error(1)
}

func (m *MockSearchService) GetByID(ctx context.Context, schema *models.TypeSchema, id string) (*models.Entity, error) {
	args := m.Called(ctx, schema, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entity), args.Error(1)
}

func entityRouter(service *MockSearchService) *gin.Engine {
	router := gin.New()
	handler := NewEntityHandler(service)
	router.GET("/api/v1/entities/:entityType/search", handler.Search)
	router.GET("/api/v1/entities/:entityType/:id", handler.GetByID)
	return router
}

func TestEntityHandler_Search(t *testing.T) {
	mockService := new(MockSearchService)
	router := entityRouter(mockService)

	mockService.On("Search", mock.Anything, mock.Anything, "jo sm", int64(5)).
		Return(&models.SearchResponse{
			Query: "jo sm",
			Seq:   5,
			Results: []*models.EntitySummary{
				{ID: "e1", DisplayName: "John Smith", State: "TX"},
			},
		}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/entities/adjusters/search?q=jo+sm&seq=5", http.NoBody)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "John Smith")
	assert.Contains(t, w.Body.String(), `"seq":5`)
	mockService.AssertExpectations(t)
}

func TestEntityHandler_Search_MalformedSeqDegradesToZero(t *testing.T) {
	mockService := new(MockSearchService)
	router := entityRouter(mockService)

	mockService.On("Search", mock.Anything, mock.Anything, "jones", int64(0)).
		Return(&models.SearchResponse{Query: "jones", Results: []*models.EntitySummary{}}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/entities/adjusters/search?q=jones&seq=abc", http.NoBody)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestEntityHandler_Search_UnknownType(t *testing.T) {
	mockService := new(MockSearchService)
	router := entityRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/entities/plumbers/search?q=jo", http.NoBody)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertNotCalled(t, "Search")
}

func TestEntityHandler_GetByID_NotFound(t *testing.T) {
	mockService := new(MockSearchService)
	router := entityRouter(mockService)

	mockService.On("GetByID", mock.Anything, mock.Anything, "e-missing").
		Return(nil, apperrors.NotFoundError("entity")).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/entities/adjusters/e-missing", http.NoBody)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
