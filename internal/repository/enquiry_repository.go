package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brandoverts/brandoverts-api/internal/domain"
)

// EnquiryRepository defines persistence access for lead-capture
// submissions. Enquiries are write-only from the public site.
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *domain.Enquiry) error
}

type enquiryRepository struct {
	col *mongo.Collection
}

// NewEnquiryRepository returns a Mongo-backed implementation.
func NewEnquiryRepository(col *mongo.Collection) EnquiryRepository {
	return &enquiryRepository{col: col}
}

func (r *enquiryRepository) Create(ctx context.Context, enquiry *domain.Enquiry) error {
	if enquiry.ID.IsZero() {
		enquiry.ID = primitive.NewObjectID()
	}
	if enquiry.CreatedAt.IsZero() {
		enquiry.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, enquiry)
	return err
}
