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

func TestContactService_Submit(t *testing.T) {
	mockRepo := new(MockInquiryRepository)
	service := services.NewContactService(mockRepo)
	ctx := context.Background()

	req := &models.InquiryRequest{
		InquiryType: "data_correction",
		Name:        "Test User",
		Email:       "test@example.com",
		Message:     "My profile lists the wrong state.",
	}

	mockRepo.On("Create", ctx, mock.MatchedBy(func(inq *models.Inquiry) bool {
		return inq.InquiryType == "data_correction" &&
			inq.Phone == nil && inq.Subject == nil
	})).Return("inq-1", nil).Once()

	resp, err := service.Submit(ctx, req)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "inq-1", resp.ID)

	mockRepo.AssertExpectations(t)
}

func TestContactService_HoneypotSilentSuccess(t *testing.T) {
	mockRepo := new(MockInquiryRepository)
	service := services.NewContactService(mockRepo)

	req := &models.InquiryRequest{
		InquiryType: "general",
		Name:        "Bot",
		Email:       "bot@example.com",
		Message:     "Buy cheap watches",
		Website:     "http://spam.example.com",
	}

	resp, err := service.Submit(context.Background(), req)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.ID)

	mockRepo.AssertNotCalled(t, "Create")
}

func TestContactService_CreateError(t *testing.T) {
	mockRepo := new(MockInquiryRepository)
	service := services.NewContactService(mockRepo)
	ctx := context.Background()

	req := &models.InquiryRequest{
		InquiryType: "general",
		Name:        "Test User",
		Email:       "test@example.com",
		Message:     "Hello there.",
	}

	mockRepo.On("Create", ctx, mock.Anything).
		Return("", errors.New("insert failed")).Once()

	resp, err := service.Submit(ctx, req)
	assert.Error(t, err)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}
