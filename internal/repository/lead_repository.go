package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brandoverts/brandoverts-api/internal/domain"
)

// LeadUpdate carries the patchable lead fields; nil means leave unchanged.
type LeadUpdate struct {
	ClientName     *string
	ContactInfo    *domain.ContactInfo
	Email          *string
	ProjectTitle   *string
	ProjectDetails *string
	ProjectStatus  *string
	StatusComment  *string
	AssignedTo     *string
	Checkboxes     *domain.LeadCheckboxes
}

// LeadRepository defines persistence access for CRM leads.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Lead, error)
	List(ctx context.Context) ([]*domain.Lead, error)
	ListByUpdatedDesc(ctx context.Context) ([]*domain.Lead, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Lead, error)
	Update(ctx context.Context, id primitive.ObjectID, update LeadUpdate) (*domain.Lead, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AppendStep(ctx context.Context, id primitive.ObjectID, step domain.LeadStep) error
	AppendReminder(ctx context.Context, id, reminderID primitive.ObjectID) error
}

type leadRepository struct {
	col *mongo.Collection
}

// NewLeadRepository returns a Mongo-backed implementation.
func NewLeadRepository(col *mongo.Collection) LeadRepository {
	return &leadRepository{col: col}
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	now := time.Now()
	if lead.ID.IsZero() {
		lead.ID = primitive.NewObjectID()
	}
	lead.CreatedAt = now
	lead.UpdatedAt = now
	if lead.Steps == nil {
		lead.Steps = []domain.LeadStep{}
	}
	if lead.Reminders == nil {
		lead.Reminders = []primitive.ObjectID{}
	}
	_, err := r.col.InsertOne(ctx, lead)
	return err
}

func (r *leadRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Lead, error) {
	var lead domain.Lead
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Lead, error) {
	out := make(map[primitive.ObjectID]*domain.Lead, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var lead domain.Lead
		if err := cur.Decode(&lead); err != nil {
			return nil, err
		}
		out[lead.ID] = &lead
	}
	return out, cur.Err()
}

func (r *leadRepository) List(ctx context.Context) ([]*domain.Lead, error) {
	return r.list(ctx, bson.D{{Key: "createdAt", Value: -1}})
}

func (r *leadRepository) ListByUpdatedDesc(ctx context.Context) ([]*domain.Lead, error) {
	return r.list(ctx, bson.D{{Key: "updatedAt", Value: -1}})
}

func (r *leadRepository) list(ctx context.Context, sort bson.D) ([]*domain.Lead, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	leads := []*domain.Lead{}
	for cur.Next(ctx) {
		var lead domain.Lead
		if err := cur.Decode(&lead); err != nil {
			return nil, err
		}
		leads = append(leads, &lead)
	}
	return leads, cur.Err()
}

func (r *leadRepository) Update(ctx context.Context, id primitive.ObjectID, update LeadUpdate) (*domain.Lead, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.ClientName != nil {
		set["clientName"] = *update.ClientName
	}
	if update.ContactInfo != nil {
		set["contactInfo"] = *update.ContactInfo
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.ProjectTitle != nil {
		set["projectTitle"] = *update.ProjectTitle
	}
	if update.ProjectDetails != nil {
		set["projectDetails"] = *update.ProjectDetails
	}
	if update.ProjectStatus != nil {
		set["projectStatus"] = *update.ProjectStatus
	}
	if update.StatusComment != nil {
		set["statusComment"] = *update.StatusComment
	}
	if update.AssignedTo != nil {
		set["assignedTo"] = *update.AssignedTo
	}
	if update.Checkboxes != nil {
		set["checkboxes"] = *update.Checkboxes
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var lead domain.Lead
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *leadRepository) AppendStep(ctx context.Context, id primitive.ObjectID, step domain.LeadStep) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"steps": step},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *leadRepository) AppendReminder(ctx context.Context, id, reminderID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"reminders": reminderID},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
