package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/repository"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/logger"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/metrics"
)

// ContactService handles contact form inquiries
type ContactService struct {
	inquiryRepo repository.InquiryRepositoryInterface
}

// NewContactService creates a new contact service
func NewContactService(inquiryRepo repository.InquiryRepositoryInterface) *ContactService {
	return &ContactService{inquiryRepo: inquiryRepo}
}

// Submit persists a contact inquiry. Honeypot trips report success and
// write nothing, matching the review form's behavior.
func (s *ContactService) Submit(ctx context.Context, req *models.InquiryRequest) (*models.InquiryResponse, error) {
	if strings.TrimSpace(req.Website) != "" {
		metrics.HoneypotTrips.WithLabelValues("contact").Inc()
		metrics.InquirySubmissions.WithLabelValues("honeypot").Inc()
		logger.Info("Honeypot tripped on contact form")
		return &models.InquiryResponse{Success: true}, nil
	}

	inquiry := &models.Inquiry{
		InquiryType: strings.TrimSpace(req.InquiryType),
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Phone:       models.OptionalString(req.Phone),
		Subject:     models.OptionalString(req.Subject),
		Message:     strings.TrimSpace(req.Message),
	}

	id, err := s.inquiryRepo.Create(ctx, inquiry)
	if err != nil {
		metrics.InquirySubmissions.WithLabelValues("error").Inc()
		logger.Error("Inquiry insert failed", zap.Error(err))
		return &models.InquiryResponse{
			Error: "We couldn't send your message. Please try again.",
		}, err
	}

	metrics.InquirySubmissions.WithLabelValues("accepted").Inc()
	logger.Info("Inquiry accepted",
		zap.String("inquiry_id", id),
		zap.String("inquiry_type", inquiry.InquiryType))

	return &models.InquiryResponse{Success: true, ID: id}, nil
}
