package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jiripapousek/classwall/internal/app/models"
	"github.com/jiripapousek/classwall/internal/db"
	"github.com/jiripapousek/classwall/internal/pkg/apperrors"
)

// UserRepository handles database operations for users
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.MongoDB) *UserRepository {
	return &UserRepository{coll: database.Collection(db.CollectionUsers)}
}

// FindByUsername resolves a username to a user document
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding user by username: %w", err)
	}
	return &user, nil
}

// FindByID resolves a user id to a user document
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding user by id: %w", err)
	}
	return &user, nil
}

// Create inserts a new user. The username is protected by a unique index;
// a duplicate insert surfaces as ErrUsernameTaken.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.CourseIDs == nil {
		user.CourseIDs = []primitive.ObjectID{}
	}
	if user.ClassIDs == nil {
		user.ClassIDs = []primitive.ObjectID{}
	}
	if user.LikedPostIDs == nil {
		user.LikedPostIDs = []primitive.ObjectID{}
	}
	if user.LikedCommentIDs == nil {
		user.LikedCommentIDs = []primitive.ObjectID{}
	}

	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

// membershipField maps a container kind to the user document field name.
func membershipField(kind models.ContainerKind) string {
	if kind == models.KindClass {
		return "class_ids"
	}
	return "course_ids"
}

// AddMembership records a container id in the user's membership list.
// $addToSet keeps the list free of duplicates, so re-association is a no-op.
func (r *UserRepository) AddMembership(ctx context.Context, userID primitive.ObjectID, kind models.ContainerKind, containerID primitive.ObjectID) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{membershipField(kind): containerID}},
	)
	if err != nil {
		return fmt.Errorf("error adding membership: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// likeField maps a liked entity kind to the user document field name.
func likeField(isPost bool) string {
	if isPost {
		return "likes_post_ids"
	}
	return "likes_comment_ids"
}

// AddLikedPost records a post id in the user's like list
func (r *UserRepository) AddLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.addLiked(ctx, userID, postID, true)
}

// RemoveLikedPost removes a post id from the user's like list
func (r *UserRepository) RemoveLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.removeLiked(ctx, userID, postID, true)
}

// AddLikedComment records a comment id in the user's like list
func (r *UserRepository) AddLikedComment(ctx context.Context, userID, commentID primitive.ObjectID) error {
	return r.addLiked(ctx, userID, commentID, false)
}

// RemoveLikedComment removes a comment id from the user's like list
func (r *UserRepository) RemoveLikedComment(ctx context.Context, userID, commentID primitive.ObjectID) error {
	return r.removeLiked(ctx, userID, commentID, false)
}

func (r *UserRepository) addLiked(ctx context.Context, userID, entityID primitive.ObjectID, isPost bool) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{likeField(isPost): entityID}},
	)
	if err != nil {
		return fmt.Errorf("error adding liked entity: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) removeLiked(ctx context.Context, userID, entityID primitive.ObjectID, isPost bool) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{likeField(isPost): entityID}},
	)
	if err != nil {
		return fmt.Errorf("error removing liked entity: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
