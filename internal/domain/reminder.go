package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reminder is a dated follow-up note attached to a lead.
type Reminder struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	LeadID    primitive.ObjectID `bson:"leadId"`
	Message   string             `bson:"message"`
	Datetime  time.Time          `bson:"datetime"`
	CreatedAt time.Time          `bson:"createdAt"`
}
