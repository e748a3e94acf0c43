package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brandoverts/brandoverts-api/internal/api/dto"
	"github.com/brandoverts/brandoverts-api/internal/domain"
	"github.com/brandoverts/brandoverts-api/internal/repository"
	apperrors "github.com/brandoverts/brandoverts-api/pkg/util"
)

// ExportFilename is the attachment name for the Excel download.
const ExportFilename = "brandoverts_leads.xlsx"

const exportSheet = "Leads"

// LeadService coordinates the CRM lead lifecycle: records, steps,
// reminders and the Excel export.
type LeadService struct {
	leads     repository.LeadRepository
	reminders repository.ReminderRepository
}

// NewLeadService builds the service.
func NewLeadService(leads repository.LeadRepository, reminders repository.ReminderRepository) *LeadService {
	return &LeadService{leads: leads, reminders: reminders}
}

// List returns all leads, newest first.
func (s *LeadService) List(ctx context.Context) ([]dto.LeadResponse, error) {
	leads, err := s.leads.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	out := make([]dto.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, dto.NewLeadResponse(lead))
	}
	return out, nil
}

// Create stores a new lead with empty pipeline state.
func (s *LeadService) Create(ctx context.Context, req dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	lead := &domain.Lead{
		ClientName:     req.ClientName,
		ContactInfo:    req.ContactInfo,
		Email:          req.Email,
		ProjectTitle:   req.ProjectTitle,
		ProjectDetails: req.ProjectDetails,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}

	resp := dto.NewLeadResponse(lead)
	return &resp, nil
}

// Get returns a single lead with its reminders populated.
func (s *LeadService) Get(ctx context.Context, idHex string) (*dto.LeadResponse, error) {
	id, err := parseLeadID(idHex)
	if err != nil {
		return nil, err
	}

	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, leadNotFoundOr(err)
	}

	reminders, err := s.reminders.GetByIDs(ctx, lead.Reminders)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	resp := dto.NewLeadResponse(lead)
	resp.Reminders = make([]dto.ReminderResponse, 0, len(reminders))
	for _, reminder := range reminders {
		resp.Reminders = append(resp.Reminders, dto.NewReminderResponse(reminder))
	}
	return &resp, nil
}

// Update patches a lead and touches its updatedAt.
func (s *LeadService) Update(ctx context.Context, idHex string, req dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	id, err := parseLeadID(idHex)
	if err != nil {
		return nil, err
	}

	lead, err := s.leads.Update(ctx, id, repository.LeadUpdate{
		ClientName:     req.ClientName,
		ContactInfo:    req.ContactInfo,
		Email:          req.Email,
		ProjectTitle:   req.ProjectTitle,
		ProjectDetails: req.ProjectDetails,
		ProjectStatus:  req.ProjectStatus,
		StatusComment:  req.StatusComment,
		AssignedTo:     req.AssignedTo,
		Checkboxes:     req.Checkboxes,
	})
	if err != nil {
		return nil, leadNotFoundOr(err)
	}

	resp := dto.NewLeadResponse(lead)
	return &resp, nil
}

// Delete removes a lead record.
func (s *LeadService) Delete(ctx context.Context, idHex string) error {
	id, err := parseLeadID(idHex)
	if err != nil {
		return err
	}
	if err := s.leads.Delete(ctx, id); err != nil {
		return leadNotFoundOr(err)
	}
	return nil
}

// AddStep appends a progress note, numbering it after the current steps.
func (s *LeadService) AddStep(ctx context.Context, idHex, text string) (*domain.LeadStep, error) {
	id, err := parseLeadID(idHex)
	if err != nil {
		return nil, err
	}

	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, leadNotFoundOr(err)
	}

	step := domain.LeadStep{
		StepNumber: len(lead.Steps) + 1,
		Text:       text,
		Timestamp:  time.Now(),
	}
	if err := s.leads.AppendStep(ctx, id, step); err != nil {
		return nil, leadNotFoundOr(err)
	}
	return &step, nil
}

// AddReminder creates a reminder document and links it onto the lead.
func (s *LeadService) AddReminder(ctx context.Context, idHex, message string, datetime time.Time) (*dto.ReminderResponse, error) {
	id, err := parseLeadID(idHex)
	if err != nil {
		return nil, err
	}

	if _, err := s.leads.GetByID(ctx, id); err != nil {
		return nil, leadNotFoundOr(err)
	}

	reminder := &domain.Reminder{
		LeadID:   id,
		Message:  message,
		Datetime: datetime,
	}
	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.leads.AppendReminder(ctx, id, reminder.ID); err != nil {
		return nil, leadNotFoundOr(err)
	}

	resp := dto.NewReminderResponse(reminder)
	return &resp, nil
}

// ListReminders returns reminders ascending by datetime, optionally limited
// to one calendar day, each with its lead summary joined.
func (s *LeadService) ListReminders(ctx context.Context, dateStr string) ([]dto.ReminderResponse, error) {
	var day *time.Time
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, apperrors.NewValidationError("Invalid date")
		}
		day = &parsed
	}

	reminders, err := s.reminders.List(ctx, day)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	leadIDs := make([]primitive.ObjectID, 0, len(reminders))
	for _, reminder := range reminders {
		leadIDs = append(leadIDs, reminder.LeadID)
	}
	leads, err := s.leads.GetByIDs(ctx, leadIDs)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	out := make([]dto.ReminderResponse, 0, len(reminders))
	for _, reminder := range reminders {
		resp := dto.NewReminderResponse(reminder)
		if lead, ok := leads[reminder.LeadID]; ok {
			resp.Lead = &dto.LeadSummary{
				ID:           lead.ID.Hex(),
				ClientName:   lead.ClientName,
				ProjectTitle: lead.ProjectTitle,
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

// ExportExcel renders all leads into an xlsx workbook, most recently
// updated first, one row per lead with its latest step text.
func (s *LeadService) ExportExcel(ctx context.Context) ([]byte, error) {
	leads, err := s.leads.ListByUpdatedDesc(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	header := []interface{}{
		"Client Name", "Phone", "Instagram", "LinkedIn", "Email",
		"Project Title", "Project Status", "Status Comment", "Assigned To",
		"Latest Step", "Last Updated",
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	for i, lead := range leads {
		row := []interface{}{
			lead.ClientName,
			lead.ContactInfo.Phone,
			lead.ContactInfo.Instagram,
			lead.ContactInfo.LinkedIn,
			lead.Email,
			lead.ProjectTitle,
			lead.ProjectStatus,
			lead.StatusComment,
			lead.AssignedTo,
			lead.LatestStepText(),
			lead.UpdatedAt.Format("1/2/2006"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, apperrors.NewInternalError(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

func parseLeadID(idHex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewValidationError("Invalid lead ID")
	}
	return id, nil
}

func leadNotFoundOr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NewNotFound("Lead")
	}
	return apperrors.MapError(err)
}
