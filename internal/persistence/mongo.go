package persistence

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/brandoverts/brandoverts-api/internal/config"
)

// Collection names used across the repositories.
const (
	UsersCollection     = "users"
	BlogsCollection     = "blogs"
	LeadsCollection     = "leads"
	RemindersCollection = "reminders"
	EnquiriesCollection = "enquiries"
)

// Mongo wraps access to the document database.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongo establishes the client connection and pings the deployment.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("connected to mongodb", zap.String("database", cfg.Database))
	return &Mongo{Client: client, Database: client.Database(cfg.Database)}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) {
	if m != nil && m.Client != nil {
		_ = m.Client.Disconnect(ctx)
	}
}

// Collection returns a handle by name.
func (m *Mongo) Collection(name string) *mongo.Collection {
	if m == nil || m.Database == nil {
		return nil
	}
	return m.Database.Collection(name)
}

// EnsureIndexes creates the unique indexes the user collection relies on.
// Username and email uniqueness are schema invariants, not best-effort.
func EnsureIndexes(ctx context.Context, db *Mongo, logger *zap.Logger) error {
	users := db.Collection(UsersCollection)

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := users.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}

	reminders := db.Collection(RemindersCollection)
	if _, err := reminders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "datetime", Value: 1}},
	}); err != nil {
		return err
	}

	logger.Info("mongodb indexes ensured")
	return nil
}
