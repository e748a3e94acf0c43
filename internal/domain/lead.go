package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactInfo groups the reachable channels for a lead.
type ContactInfo struct {
	Phone     string `bson:"phone" json:"phone"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
}

// LeadCheckboxes track pipeline milestones on the CRM board.
type LeadCheckboxes struct {
	TitleMeet bool `bson:"titleMeet" json:"titleMeet"`
	FirstCall bool `bson:"firstCall" json:"firstCall"`
	Closed    bool `bson:"closed" json:"closed"`
}

// LeadStep is an append-only progress note. StepNumber is assigned
// sequentially from the current step count.
type LeadStep struct {
	StepNumber int       `bson:"stepNumber" json:"stepNumber"`
	Text       string    `bson:"text" json:"text"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}

// Lead is a sales-lead record in the internal CRM.
type Lead struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"`
	ClientName     string               `bson:"clientName"`
	ContactInfo    ContactInfo          `bson:"contactInfo"`
	Email          string               `bson:"email,omitempty"`
	ProjectTitle   string               `bson:"projectTitle"`
	ProjectDetails string               `bson:"projectDetails,omitempty"`
	ProjectStatus  string               `bson:"projectStatus,omitempty"`
	StatusComment  string               `bson:"statusComment,omitempty"`
	AssignedTo     string               `bson:"assignedTo,omitempty"`
	Checkboxes     LeadCheckboxes       `bson:"checkboxes"`
	Steps          []LeadStep           `bson:"steps"`
	Reminders      []primitive.ObjectID `bson:"reminders"`
	CreatedAt      time.Time            `bson:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt"`
}

// LatestStepText returns the text of the most recent step, or "".
func (l *Lead) LatestStepText() string {
	if len(l.Steps) == 0 {
		return ""
	}
	return l.Steps[len(l.Steps)-1].Text
}
