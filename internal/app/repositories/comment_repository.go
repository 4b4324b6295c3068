package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jiripapousek/classwall/internal/app/models"
	"github.com/jiripapousek/classwall/internal/db"
	"github.com/jiripapousek/classwall/internal/pkg/apperrors"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	coll *mongo.Collection
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(database *db.MongoDB) *CommentRepository {
	return &CommentRepository{coll: database.Collection(db.CollectionComments)}
}

// Create inserts a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if comment.LikeUserIDs == nil {
		comment.LikeUserIDs = []primitive.ObjectID{}
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	result, err := r.coll.InsertOne(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("error inserting comment: %w", err)
	}

	comment.ID = result.InsertedID.(primitive.ObjectID)
	return comment, nil
}

// GetByID resolves a comment id to a document
func (r *CommentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error finding comment: %w", err)
	}
	return &comment, nil
}

// GetByPost lists every comment under the given post in insertion order.
// This is the authoritative lookup; the post's comment_ids list is only a
// denormalized convenience.
func (r *CommentRepository) GetByPost(ctx context.Context, postID primitive.ObjectID) ([]*models.Comment, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"post_id": postID}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("error listing comments for post: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("error decoding comments: %w", err)
	}
	return comments, nil
}

// Delete removes a comment document. Like references on user documents are
// left in place; delete does not cascade.
func (r *CommentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

// AddLike records a like on the comment's side, atomically with the
// already-liked check (see PostRepository.AddLike).
func (r *CommentRepository) AddLike(ctx context.Context, commentID, userID primitive.ObjectID) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": commentID, "likes_user_ids": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes_user_ids": userID}},
	)
	if err != nil {
		return fmt.Errorf("error adding like to comment: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrAlreadyLiked
	}
	return nil
}

// RemoveLike removes a like on the comment's side
func (r *CommentRepository) RemoveLike(ctx context.Context, commentID, userID primitive.ObjectID) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": commentID, "likes_user_ids": userID},
		bson.M{"$pull": bson.M{"likes_user_ids": userID}},
	)
	if err != nil {
		return fmt.Errorf("error removing like from comment: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotLiked
	}
	return nil
}
