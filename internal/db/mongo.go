package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jiripapousek/classwall/internal/config"
)

// Collection names used by the application
const (
	CollectionUsers    = "users"
	CollectionClasses  = "classes"
	CollectionCourses  = "courses"
	CollectionPosts    = "posts"
	CollectionComments = "comments"
)

// MongoDB database connection structure
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongoDB creates a new MongoDB client and verifies connectivity
func NewMongoDB(cfg *config.Config) (*MongoDB, error) {
	connectTimeout := config.ParseDuration(cfg.Database.ConnectTimeout, 10*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetConnectTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDB{
		Client:   client,
		Database: client.Database(cfg.Database.Name),
	}, nil
}

// Collection returns a handle to the named collection
func (db *MongoDB) Collection(name string) *mongo.Collection {
	return db.Database.Collection(name)
}

// EnsureIndexes creates the indexes the application relies on.
// Usernames are unique; posts and comments are looked up by their parent id.
func (db *MongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := db.Collection(CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create username index: %w", err)
	}

	_, err = db.Collection(CollectionPosts).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "class_id", Value: 1}}},
		{Keys: bson.D{{Key: "course_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}

	_, err = db.Collection(CollectionComments).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "post_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create comment index: %w", err)
	}

	return nil
}

// Close disconnects the client
func (db *MongoDB) Close(ctx context.Context) error {
	if db.Client == nil {
		return nil
	}
	return db.Client.Disconnect(ctx)
}
