package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/brandoverts/brandoverts-api/internal/api/dto"
	"github.com/brandoverts/brandoverts-api/internal/service"
	apperrors "github.com/brandoverts/brandoverts-api/pkg/util"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LeadsHandler exposes the CRM lead endpoints. The router mounts every one
// of these behind the session guard.
type LeadsHandler struct {
	leads *service.LeadService
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(leads *service.LeadService) *LeadsHandler {
	return &LeadsHandler{leads: leads}
}

// List handles GET /api/leads.
func (h *LeadsHandler) List(c *fiber.Ctx) error {
	leads, err := h.leads.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": leads})
}

// Create handles POST /api/leads.
func (h *LeadsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}
	if req.ClientName == "" || req.ProjectTitle == "" {
		return apperrors.NewValidationError("Client name and project title are required")
	}

	lead, err := h.leads.Create(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Lead created successfully",
		"data":    lead,
	})
}

// Get handles GET /api/leads/:id.
func (h *LeadsHandler) Get(c *fiber.Ctx) error {
	lead, err := h.leads.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": lead})
}

// Update handles PATCH /api/leads/:id.
func (h *LeadsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	lead, err := h.leads.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Lead updated successfully",
		"data":    lead,
	})
}

// Delete handles DELETE /api/leads/:id.
func (h *LeadsHandler) Delete(c *fiber.Ctx) error {
	if err := h.leads.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Lead deleted successfully",
	})
}

// AddStep handles POST /api/leads/:id/steps.
func (h *LeadsHandler) AddStep(c *fiber.Ctx) error {
	var req dto.CreateStepRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}
	if req.Text == "" {
		return apperrors.NewValidationError("Step text is required")
	}

	step, err := h.leads.AddStep(c.Context(), c.Params("id"), req.Text)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Step added successfully",
		"data":    step,
	})
}

// AddReminder handles POST /api/leads/:id/reminder.
func (h *LeadsHandler) AddReminder(c *fiber.Ctx) error {
	var req dto.CreateReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}
	if req.Message == "" || req.Datetime.IsZero() {
		return apperrors.NewValidationError("Message and datetime are required")
	}

	reminder, err := h.leads.AddReminder(c.Context(), c.Params("id"), req.Message, req.Datetime)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Reminder created successfully",
		"data":    reminder,
	})
}

// ListReminders handles GET /api/reminders.
func (h *LeadsHandler) ListReminders(c *fiber.Ctx) error {
	reminders, err := h.leads.ListReminders(c.Context(), c.Query("date"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": reminders})
}

// ExportExcel handles GET /api/leads/export/excel. The workbook is built in
// memory and streamed as an attachment.
func (h *LeadsHandler) ExportExcel(c *fiber.Ctx) error {
	content, err := h.leads.ExportExcel(c.Context())
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+service.ExportFilename+`"`)
	return c.Send(content)
}
