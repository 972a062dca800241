package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/repository"
)

// MockEntityRepository is a mock implementation of EntityRepositoryInterface
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) Search(ctx context.Context, schema *models.TypeSchema, filter models.NameFilter, limit int) ([]*models.EntitySummary, error) {
	args := m.Called(ctx, schema, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.EntitySummary), args.Error(1)
}

func (m *MockEntityRepository) GetByID(ctx context.Context, schema *models.TypeSchema, id string) (*models.Entity, error) {
	args := m.Called(ctx, schema, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entity), args.Error(1)
}

func (m *MockEntityRepository) GetBySlug(ctx context.Context, schema *models.TypeSchema, slug string) (*models.Entity, error) {
	args := m.Called(ctx, schema, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entity), args.Error(1)
}

func (m *MockEntityRepository) Create(ctx context.Context, schema *models.TypeSchema, rec *models.NewEntity) (*models.Entity, error) {
	args := m.Called(ctx, schema, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entity), args.Error(1)
}

func (m *MockEntityRepository) Count(ctx context.Context, schema *models.TypeSchema) (int, error) {
	args := m.Called(ctx, schema)
	return args.Int(0), args.Error(1)
}

func (m *MockEntityRepository) ListSlugs(ctx context.Context, schema *models.TypeSchema, offset, limit int) ([]repository.SlugEntry, error) {
	args := m.Called(ctx, schema, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SlugEntry), args.Error(1)
}

// MockReviewRepository is a mock implementation of ReviewRepositoryInterface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, schema *models.TypeSchema, review *models.Review) (string, error) {
	args := m.Called(ctx, schema, review)
	return args.String(0), args.Error(1)
}

// MockInquiryRepository is a mock implementation of InquiryRepositoryInterface
type MockInquiryRepository struct {
	mock.Mock
}

func (m *MockInquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) (string, error) {
	args := m.Called(ctx, inquiry)
	return args.String(0), args.Error(1)
}

// MockVerifier is a mock implementation of VerifierInterface
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(token, expectedAction string) (float64, error) {
	args := m.Called(token, expectedAction)
	return args.Get(0).(float64), args.Error(1)
}

// MockProfileService is a mock implementation of ProfileServiceInterface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, schema *models.TypeSchema, slug string) (*models.Entity, error) {
	args := m.Called(ctx, schema, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entity), args.Error(1)
}

func (m *MockProfileService) InvalidateProfile(schema *models.TypeSchema, slug string) {
	m.Called(schema, slug)
}

func (m *MockProfileService) FlushProfiles() {
	m.Called()
}
