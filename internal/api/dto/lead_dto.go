package dto

import (
	"time"

	"github.com/brandoverts/brandoverts-api/internal/domain"
)

// CreateLeadRequest payload for new CRM leads.
type CreateLeadRequest struct {
	ClientName     string             `json:"clientName"`
	ContactInfo    domain.ContactInfo `json:"contactInfo"`
	Email          string             `json:"email"`
	ProjectTitle   string             `json:"projectTitle"`
	ProjectDetails string             `json:"projectDetails"`
}

// UpdateLeadRequest carries partial lead updates; nil leaves a field
// unchanged.
type UpdateLeadRequest struct {
	ClientName     *string                `json:"clientName"`
	ContactInfo    *domain.ContactInfo    `json:"contactInfo"`
	Email          *string                `json:"email"`
	ProjectTitle   *string                `json:"projectTitle"`
	ProjectDetails *string                `json:"projectDetails"`
	ProjectStatus  *string                `json:"projectStatus"`
	StatusComment  *string                `json:"statusComment"`
	AssignedTo     *string                `json:"assignedTo"`
	Checkboxes     *domain.LeadCheckboxes `json:"checkboxes"`
}

// CreateStepRequest payload for appending a progress step.
type CreateStepRequest struct {
	Text string `json:"text"`
}

// CreateReminderRequest payload for attaching a reminder to a lead.
type CreateReminderRequest struct {
	Message  string    `json:"message"`
	Datetime time.Time `json:"datetime"`
}

// LeadSummary is the subset of a lead joined onto reminder listings.
type LeadSummary struct {
	ID           string `json:"id"`
	ClientName   string `json:"clientName"`
	ProjectTitle string `json:"projectTitle"`
}

// ReminderResponse is a reminder, optionally with its lead summary joined.
type ReminderResponse struct {
	ID        string       `json:"id"`
	LeadID    string       `json:"leadId"`
	Message   string       `json:"message"`
	Datetime  time.Time    `json:"datetime"`
	CreatedAt time.Time    `json:"createdAt"`
	Lead      *LeadSummary `json:"lead,omitempty"`
}

// LeadResponse is the full lead shape. Reminders holds reminder ids in
// listings and populated reminders on single-lead reads.
type LeadResponse struct {
	ID             string                `json:"id"`
	ClientName     string                `json:"clientName"`
	ContactInfo    domain.ContactInfo    `json:"contactInfo"`
	Email          string                `json:"email"`
	ProjectTitle   string                `json:"projectTitle"`
	ProjectDetails string                `json:"projectDetails"`
	ProjectStatus  string                `json:"projectStatus"`
	StatusComment  string                `json:"statusComment"`
	AssignedTo     string                `json:"assignedTo"`
	Checkboxes     domain.LeadCheckboxes `json:"checkboxes"`
	Steps          []domain.LeadStep     `json:"steps"`
	ReminderIDs    []string              `json:"reminderIds"`
	Reminders      []ReminderResponse    `json:"reminders,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// NewLeadResponse maps a stored lead onto the response shape.
func NewLeadResponse(lead *domain.Lead) LeadResponse {
	reminderIDs := make([]string, 0, len(lead.Reminders))
	for _, id := range lead.Reminders {
		reminderIDs = append(reminderIDs, id.Hex())
	}
	return LeadResponse{
		ID:             lead.ID.Hex(),
		ClientName:     lead.ClientName,
		ContactInfo:    lead.ContactInfo,
		Email:          lead.Email,
		ProjectTitle:   lead.ProjectTitle,
		ProjectDetails: lead.ProjectDetails,
		ProjectStatus:  lead.ProjectStatus,
		StatusComment:  lead.StatusComment,
		AssignedTo:     lead.AssignedTo,
		Checkboxes:     lead.Checkboxes,
		Steps:          lead.Steps,
		ReminderIDs:    reminderIDs,
		CreatedAt:      lead.CreatedAt,
		UpdatedAt:      lead.UpdatedAt,
	}
}

// NewReminderResponse maps a stored reminder onto the response shape.
func NewReminderResponse(reminder *domain.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:        reminder.ID.Hex(),
		LeadID:    reminder.LeadID.Hex(),
		Message:   reminder.Message,
		Datetime:  reminder.Datetime,
		CreatedAt: reminder.CreatedAt,
	}
}
