package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnquirySource identifies which public page submitted the form.
type EnquirySource string

const (
	EnquirySourceHome      EnquirySource = "home"
	EnquirySourceAbout     EnquirySource = "about"
	EnquirySourceServices  EnquirySource = "services"
	EnquirySourcePortfolio EnquirySource = "portfolio"
	EnquirySourceBlogs     EnquirySource = "blogs"
)

// ValidEnquirySource reports whether s is one of the known pages.
func ValidEnquirySource(s EnquirySource) bool {
	switch s {
	case EnquirySourceHome, EnquirySourceAbout, EnquirySourceServices,
		EnquirySourcePortfolio, EnquirySourceBlogs:
		return true
	}
	return false
}

// Enquiry is a lead-capture submission from the marketing site.
type Enquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Service   string             `bson:"service"`
	Message   string             `bson:"message"`
	Source    EnquirySource      `bson:"source"`
	CreatedAt time.Time          `bson:"createdAt"`
}
