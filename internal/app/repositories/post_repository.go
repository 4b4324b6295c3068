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

// PostRepository handles database operations for posts
type PostRepository struct {
	coll *mongo.Collection
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(database *db.MongoDB) *PostRepository {
	return &PostRepository{coll: database.Collection(db.CollectionPosts)}
}

// Create inserts a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if post.LikeUserIDs == nil {
		post.LikeUserIDs = []primitive.ObjectID{}
	}
	if post.CommentIDs == nil {
		post.CommentIDs = []primitive.ObjectID{}
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	result, err := r.coll.InsertOne(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error inserting post: %w", err)
	}

	post.ID = result.InsertedID.(primitive.ObjectID)
	return post, nil
}

// GetByID resolves a post id to a document
func (r *PostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error finding post: %w", err)
	}
	return &post, nil
}

// GetByContainer lists every post on the given wall in insertion order
func (r *PostRepository) GetByContainer(ctx context.Context, kind models.ContainerKind, containerID primitive.ObjectID) ([]*models.Post, error) {
	field := "course_id"
	if kind == models.KindClass {
		field = "class_id"
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{field: containerID}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("error listing posts for %s: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var posts []*models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("error decoding posts: %w", err)
	}
	return posts, nil
}

// Delete removes a post document. Child comments and like references are
// left in place; delete does not cascade.
func (r *PostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// AddLike records a like on the post's side. The filter excludes documents
// already containing the user id, so the presence check and the update are
// one atomic write; an unmodified document means the like already existed.
func (r *PostRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": postID, "likes_user_ids": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes_user_ids": userID}},
	)
	if err != nil {
		return fmt.Errorf("error adding like to post: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrAlreadyLiked
	}
	return nil
}

// RemoveLike removes a like on the post's side. The filter requires the
// user id to be present; an unmatched document means there was no like.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": postID, "likes_user_ids": userID},
		bson.M{"$pull": bson.M{"likes_user_ids": userID}},
	)
	if err != nil {
		return fmt.Errorf("error removing like from post: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotLiked
	}
	return nil
}

// AppendCommentID adds a comment id to the post's denormalized comment list
func (r *PostRepository) AppendCommentID(ctx context.Context, postID, commentID primitive.ObjectID) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"comment_ids": commentID}},
	)
	if err != nil {
		return fmt.Errorf("error appending comment id to post: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}
