package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	appAuth "github.com/jiripapousek/classwall/internal/app/auth"
	"github.com/jiripapousek/classwall/internal/app/models"
	"github.com/jiripapousek/classwall/internal/app/models/dto"
	"github.com/jiripapousek/classwall/internal/pkg/apperrors"
	"github.com/jiripapousek/classwall/internal/pkg/keylock"
)

// EngagementService defines the interface for like/unlike operations.
//
// Every mutation touches two documents: the entity's like list and the
// user's liked-id list. The entity-side write carries the duplicate/absence
// check in its filter, making it atomic per document, and operations on
// the same (user, entity) pair are serialized behind a striped key lock
// within this process. Across processes the entity-side list is
// authoritative; the user-side list follows it.
type EngagementService interface {
	LikePost(ctx context.Context, principalID, postID primitive.ObjectID) (*dto.PostResponse, error)
	UnlikePost(ctx context.Context, principalID, postID primitive.ObjectID) error
	LikeComment(ctx context.Context, principalID, commentID primitive.ObjectID) (*dto.CommentResponse, error)
	UnlikeComment(ctx context.Context, principalID, commentID primitive.ObjectID) error
}

// engagementServiceImpl implements EngagementService
type engagementServiceImpl struct {
	users     UserStore
	posts     PostStore
	comments  CommentStore
	evaluator *appAuth.Evaluator
	locks     *keylock.KeyLock
	logger    zerolog.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	users UserStore,
	posts PostStore,
	comments CommentStore,
	evaluator *appAuth.Evaluator,
	locks *keylock.KeyLock,
	logger zerolog.Logger,
) EngagementService {
	return &engagementServiceImpl{
		users:     users,
		posts:     posts,
		comments:  comments,
		evaluator: evaluator,
		locks:     locks,
		logger:    logger,
	}
}

func pairKey(kind string, entityID, userID primitive.ObjectID) string {
	return kind + ":" + entityID.Hex() + ":" + userID.Hex()
}

// LikePost adds a like to a post on both sides and returns the updated post.
// Check order: existence, access, then the duplicate-like guard.
func (s *engagementServiceImpl) LikePost(ctx context.Context, principalID, postID primitive.ObjectID) (*dto.PostResponse, error) {
	unlock := s.locks.Lock(pairKey("post", postID, principalID))
	defer unlock()

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	principal, err := s.users.FindByID(ctx, principalID)
	if err != nil {
		return nil, err
	}

	if err := s.evaluator.ValidatePostAccess(principal, post); err != nil {
		return nil, err
	}

	if err := s.posts.AddLike(ctx, post.ID, principal.ID); err != nil {
		return nil, err
	}
	if err := s.users.AddLikedPost(ctx, principal.ID, post.ID); err != nil {
		s.logger.Error().Err(err).
			Str("postId", post.ID.Hex()).
			Str("userId", principal.ID.Hex()).
			Msg("Post like recorded on entity side only")
		return nil, err
	}

	post.LikeUserIDs = append(post.LikeUserIDs, principal.ID)
	resp := dto.NewPostResponse(post)
	return &resp, nil
}

// UnlikePost removes a like from a post on both sides
func (s *engagementServiceImpl) UnlikePost(ctx context.Context, principalID, postID primitive.ObjectID) error {
	unlock := s.locks.Lock(pairKey("post", postID, principalID))
	defer unlock()

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	principal, err := s.users.FindByID(ctx, principalID)
	if err != nil {
		return err
	}

	if err := s.evaluator.ValidatePostAccess(principal, post); err != nil {
		return err
	}

	if err := s.posts.RemoveLike(ctx, post.ID, principal.ID); err != nil {
		return err
	}
	if err := s.users.RemoveLikedPost(ctx, principal.ID, post.ID); err != nil {
		s.logger.Error().Err(err).
			Str("postId", post.ID.Hex()).
			Str("userId", principal.ID.Hex()).
			Msg("Post unlike recorded on entity side only")
		return err
	}

	return nil
}

// LikeComment adds a like to a comment on both sides and returns the
// updated comment. Access follows the parent post's container.
func (s *engagementServiceImpl) LikeComment(ctx context.Context, principalID, commentID primitive.ObjectID) (*dto.CommentResponse, error) {
	unlock := s.locks.Lock(pairKey("comment", commentID, principalID))
	defer unlock()

	comment, parent, principal, err := s.loadCommentTarget(ctx, principalID, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.evaluator.ValidateCommentAccess(principal, comment, parent); err != nil {
		return nil, err
	}

	if err := s.comments.AddLike(ctx, comment.ID, principal.ID); err != nil {
		return nil, err
	}
	if err := s.users.AddLikedComment(ctx, principal.ID, comment.ID); err != nil {
		s.logger.Error().Err(err).
			Str("commentId", comment.ID.Hex()).
			Str("userId", principal.ID.Hex()).
			Msg("Comment like recorded on entity side only")
		return nil, err
	}

	comment.LikeUserIDs = append(comment.LikeUserIDs, principal.ID)
	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

// UnlikeComment removes a like from a comment on both sides
func (s *engagementServiceImpl) UnlikeComment(ctx context.Context, principalID, commentID primitive.ObjectID) error {
	unlock := s.locks.Lock(pairKey("comment", commentID, principalID))
	defer unlock()

	comment, parent, principal, err := s.loadCommentTarget(ctx, principalID, commentID)
	if err != nil {
		return err
	}

	if err := s.evaluator.ValidateCommentAccess(principal, comment, parent); err != nil {
		return err
	}

	if err := s.comments.RemoveLike(ctx, comment.ID, principal.ID); err != nil {
		return err
	}
	if err := s.users.RemoveLikedComment(ctx, principal.ID, comment.ID); err != nil {
		s.logger.Error().Err(err).
			Str("commentId", comment.ID.Hex()).
			Str("userId", principal.ID.Hex()).
			Msg("Comment unlike recorded on entity side only")
		return err
	}

	return nil
}

// loadCommentTarget resolves the comment, its parent post (nil when the
// post has been deleted) and the principal.
func (s *engagementServiceImpl) loadCommentTarget(ctx context.Context, principalID, commentID primitive.ObjectID) (*models.Comment, *models.Post, *models.User, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, nil, nil, err
	}

	parent, err := s.posts.GetByID(ctx, comment.PostID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrPostNotFound) {
			return nil, nil, nil, err
		}
		parent = nil
	}

	principal, err := s.users.FindByID(ctx, principalID)
	if err != nil {
		return nil, nil, nil, err
	}

	return comment, parent, principal, nil
}
