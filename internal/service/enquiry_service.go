package service

import (
	"context"

	"github.com/brandoverts/brandoverts-api/internal/api/dto"
	"github.com/brandoverts/brandoverts-api/internal/domain"
	"github.com/brandoverts/brandoverts-api/internal/repository"
	apperrors "github.com/brandoverts/brandoverts-api/pkg/util"
)

// EnquiryService stores lead-capture submissions from the public site.
type EnquiryService struct {
	enquiries repository.EnquiryRepository
}

// NewEnquiryService builds the service.
func NewEnquiryService(enquiries repository.EnquiryRepository) *EnquiryService {
	return &EnquiryService{enquiries: enquiries}
}

// Create validates the source page and stores the submission.
func (s *EnquiryService) Create(ctx context.Context, req dto.EnquiryRequest) (*dto.EnquiryResponse, error) {
	source := domain.EnquirySource(req.Source)
	if !domain.ValidEnquirySource(source) {
		return nil, apperrors.NewValidationError("Invalid enquiry source")
	}

	enquiry := &domain.Enquiry{
		Name:    req.Name,
		Email:   req.Email,
		Service: req.Service,
		Message: req.Message,
		Source:  source,
	}
	if err := s.enquiries.Create(ctx, enquiry); err != nil {
		return nil, apperrors.MapError(err)
	}

	resp := dto.NewEnquiryResponse(enquiry)
	return &resp, nil
}
