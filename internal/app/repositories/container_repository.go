package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jiripapousek/classwall/internal/app/models"
	"github.com/jiripapousek/classwall/internal/db"
	"github.com/jiripapousek/classwall/internal/pkg/apperrors"
)

// ContainerRepository handles database operations for classes and courses.
// The two collections share one document shape, so a single repository
// serves both, parameterized by kind.
type ContainerRepository struct {
	classes *mongo.Collection
	courses *mongo.Collection
}

// NewContainerRepository creates a new ContainerRepository
func NewContainerRepository(database *db.MongoDB) *ContainerRepository {
	return &ContainerRepository{
		classes: database.Collection(db.CollectionClasses),
		courses: database.Collection(db.CollectionCourses),
	}
}

func (r *ContainerRepository) coll(kind models.ContainerKind) *mongo.Collection {
	if kind == models.KindClass {
		return r.classes
	}
	return r.courses
}

func notFoundError(kind models.ContainerKind) error {
	if kind == models.KindClass {
		return apperrors.ErrClassNotFound
	}
	return apperrors.ErrCourseNotFound
}

// GetByID resolves a container id to a document
func (r *ContainerRepository) GetByID(ctx context.Context, kind models.ContainerKind, id primitive.ObjectID) (*models.Container, error) {
	var container models.Container
	err := r.coll(kind).FindOne(ctx, bson.M{"_id": id}).Decode(&container)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFoundError(kind)
		}
		return nil, fmt.Errorf("error finding %s: %w", kind, err)
	}
	return &container, nil
}

// GetAll lists every container of the given kind in insertion order
func (r *ContainerRepository) GetAll(ctx context.Context, kind models.ContainerKind) ([]*models.Container, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll(kind).Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("error listing %s containers: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var containers []*models.Container
	if err := cursor.All(ctx, &containers); err != nil {
		return nil, fmt.Errorf("error decoding %s containers: %w", kind, err)
	}
	return containers, nil
}

// Create inserts a new empty container with the given name
func (r *ContainerRepository) Create(ctx context.Context, kind models.ContainerKind, name string) (*models.Container, error) {
	container := &models.Container{
		Name:    name,
		UserIDs: []primitive.ObjectID{},
	}

	result, err := r.coll(kind).InsertOne(ctx, container)
	if err != nil {
		return nil, fmt.Errorf("error inserting %s: %w", kind, err)
	}

	container.ID = result.InsertedID.(primitive.ObjectID)
	return container, nil
}

// AddMember records a user id in the container's member list.
// $addToSet keeps the list free of duplicates, so re-association is a no-op.
func (r *ContainerRepository) AddMember(ctx context.Context, kind models.ContainerKind, containerID, userID primitive.ObjectID) error {
	result, err := r.coll(kind).UpdateOne(ctx,
		bson.M{"_id": containerID},
		bson.M{"$addToSet": bson.M{"user_ids": userID}},
	)
	if err != nil {
		return fmt.Errorf("error adding member to %s: %w", kind, err)
	}
	if result.MatchedCount == 0 {
		return notFoundError(kind)
	}
	return nil
}
