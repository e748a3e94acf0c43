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

// ReminderRepository defines persistence access for lead reminders.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder) error
	List(ctx context.Context, day *time.Time) ([]*domain.Reminder, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Reminder, error)
}

type reminderRepository struct {
	col *mongo.Collection
}

// NewReminderRepository returns a Mongo-backed implementation.
func NewReminderRepository(col *mongo.Collection) ReminderRepository {
	return &reminderRepository{col: col}
}

func (r *reminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	if reminder.ID.IsZero() {
		reminder.ID = primitive.NewObjectID()
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, reminder)
	return err
}

// List returns reminders ascending by datetime. When day is set, only
// reminders within that calendar day (local time) are returned.
func (r *reminderRepository) List(ctx context.Context, day *time.Time) ([]*domain.Reminder, error) {
	filter := bson.M{}
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.Add(24*time.Hour - time.Nanosecond)
		filter["datetime"] = bson.M{"$gte": start, "$lte": end}
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "datetime", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	return decodeReminders(ctx, cur)
}

func (r *reminderRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Reminder, error) {
	if len(ids) == 0 {
		return []*domain.Reminder{}, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "datetime", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	return decodeReminders(ctx, cur)
}

func decodeReminders(ctx context.Context, cur *mongo.Cursor) ([]*domain.Reminder, error) {
	reminders := []*domain.Reminder{}
	for cur.Next(ctx) {
		var reminder domain.Reminder
		if err := cur.Decode(&reminder); err != nil {
			return nil, err
		}
		reminders = append(reminders, &reminder)
	}
	return reminders, cur.Err()
}
