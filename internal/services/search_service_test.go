package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/services"
)

func adjusterSchema(t *testing.T) *models.TypeSchema {
	t.Helper()
	schema, ok := models.SchemaFor(models.EntityTypeAdjuster)
	assert.True(t, ok)
	return schema
}

func TestSearchService_ShortQuerySkipsRepository(t *testing.T) {
	mockRepo := new(MockEntityRepository)
	service := services.NewSearchService(mockRepo)
	ctx := context.Background()

	for _, q := range []string{"", "j", " j ", "  "} {
		resp, err := service.Search(ctx, adjusterSchema(t), q, 3)
		assert.NoError(t, err)
		assert.Empty(t, resp.Results)
		assert.Equal(t, int64(3), resp.Seq)
	}

	mockRepo.AssertNotCalled(t, "Search")
}

func TestSearchService_TwoTokenQuerySplitsFirstLast(t *testing.T) {
	mockRepo := new(MockEntityRepository)
	service := services.NewSearchService(mockRepo)
	ctx := context.Background()
	schema := adjusterSchema(t)

	expected := models.NameFilter{FirstPrefix: "jo", LastPrefix: "sm"}
	mockRepo.On("Search", ctx, schema, expected, services.DefaultSearchLimit).
		Return([]*models.EntitySummary{{ID: "e1", DisplayName: "John Smith", State: "TX"}}, nil).Once()

	resp, err := service.Search(ctx, schema, "jo sm", 1)
	assert.NoError(t, err)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, "John Smith", resp.Results[0].DisplayName)

	mockRepo.AssertExpectations(t)
}

func TestSearchService_SingleTokenMatchesEitherName(t *testing.T) {
	mockRepo := new(MockEntityRepository)
	service := services.NewSearchService(mockRepo)
	ctx := context.Background()
	schema := adjusterSchema(t)

	expected := models.NameFilter{AnyPrefix: "smith", IncludeCompany: true}
	mockRepo.On("Search", ctx, schema, expected, services.DefaultSearchLimit).
		Return([]*models.EntitySummary{}, nil).Once()

	resp, err := service.Search(ctx, schema, "  smith  ", 7)
	assert.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, "smith", resp.Query)

	mockRepo.AssertExpectations(t)
}

func TestSearchService_SeqEchoedOnResults(t *testing.T) {
	mockRepo := new(MockEntityRepository)
	service := services.NewSearchService(mockRepo)
	ctx := context.Background()
	schema := adjusterSchema(t)

	mockRepo.On("Search", ctx, schema, mock.Anything, services.DefaultSearchLimit).
		Return([]*models.EntitySummary{}, nil).Once()

	resp, err := service.Search(ctx, schema, "jones", 42)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), resp.Seq)
}

func TestSearchService_RepositoryError(t *testing.T) {
	mockRepo := new(MockEntityRepository)
	service := services.NewSearchService(mockRepo)
	ctx := context.Background()
	schema := adjusterSchema(t)

	mockRepo.On("Search", ctx, schema, mock.Anything, services.DefaultSearchLimit).
		Return(nil, errors.New("connection refused")).Once()

	resp, err := service.Search(ctx, schema, "jones", 1)
	assert.Error(t, err)
	assert.Nil(t, resp)
}
