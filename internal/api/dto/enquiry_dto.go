package dto

import (
	"time"

	"github.com/brandoverts/brandoverts-api/internal/domain"
)

// EnquiryRequest payload from the public lead-capture forms.
type EnquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

// EnquiryResponse echoes the stored submission.
type EnquiryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewEnquiryResponse maps a stored enquiry onto the response shape.
func NewEnquiryResponse(enquiry *domain.Enquiry) EnquiryResponse {
	return EnquiryResponse{
		ID:        enquiry.ID.Hex(),
		Name:      enquiry.Name,
		Email:     enquiry.Email,
		Service:   enquiry.Service,
		Message:   enquiry.Message,
		Source:    string(enquiry.Source),
		CreatedAt: enquiry.CreatedAt,
	}
}
