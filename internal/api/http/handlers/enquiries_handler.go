package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/brandoverts/brandoverts-api/internal/api/dto"
	"github.com/brandoverts/brandoverts-api/internal/service"
	apperrors "github.com/brandoverts/brandoverts-api/pkg/util"
)

// EnquiriesHandler accepts contact-form submissions from the public site.
type EnquiriesHandler struct {
	enquiries *service.EnquiryService
}

// NewEnquiriesHandler constructs handler.
func NewEnquiriesHandler(enquiries *service.EnquiryService) *EnquiriesHandler {
	return &EnquiriesHandler{enquiries: enquiries}
}

// Create handles POST /api/enquiry.
func (h *EnquiriesHandler) Create(c *fiber.Ctx) error {
	var req dto.EnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Service == "" || req.Message == "" || req.Source == "" {
		return apperrors.NewValidationError("All fields are required")
	}

	enquiry, err := h.enquiries.Create(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Enquiry submitted successfully",
		"data":    enquiry,
	})
}
