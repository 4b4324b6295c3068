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
)

// WallService defines the interface for post and comment content operations
type WallService interface {
	CreatePost(ctx context.Context, principalID primitive.ObjectID, kind models.ContainerKind, containerID primitive.ObjectID, text string) (*dto.PostResponse, error)
	GetWall(ctx context.Context, principalID primitive.ObjectID, kind models.ContainerKind, containerID primitive.ObjectID) ([]dto.PostResponse, error)
	GetAggregateWall(ctx context.Context, principalID primitive.ObjectID) ([]dto.PostResponse, error)
	DeletePost(ctx context.Context, principalID, postID primitive.ObjectID) error
	CreateComment(ctx context.Context, principalID, postID primitive.ObjectID, text string) (*dto.CommentResponse, error)
	GetComments(ctx context.Context, principalID, postID primitive.ObjectID) ([]dto.CommentResponse, error)
	DeleteComment(ctx context.Context, principalID, commentID primitive.ObjectID) error
}

// wallServiceImpl implements WallService
type wallServiceImpl struct {
	users      UserStore
	containers ContainerStore
	posts      PostStore
	comments   CommentStore
	evaluator  *appAuth.Evaluator
	logger     zerolog.Logger
}

// NewWallService creates a new WallService
func NewWallService(
	users UserStore,
	containers ContainerStore,
	posts PostStore,
	comments CommentStore,
	evaluator *appAuth.Evaluator,
	logger zerolog.Logger,
) WallService {
	return &wallServiceImpl{
		users:      users,
		containers: containers,
		posts:      posts,
		comments:   comments,
		evaluator:  evaluator,
		logger:     logger,
	}
}

// CreatePost stores a new post on the given wall. The caller must be a
// member of the container; the container must exist.
func (s *wallServiceImpl) CreatePost(ctx context.Context, principalID primitive.ObjectID, kind models.ContainerKind, containerID primitive.ObjectID, text string) (*dto.PostResponse, error) {
	principal, err := s.users.FindByID(ctx, principalID)
	if err != nil {
		return nil, err
	}

	container, err := s.containers.GetByID(ctx, kind, containerID)
	if err != nil {
		return nil, err
	}

	if err := s.evaluator.ValidateContainerAccess(principal, kind, container.ID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     text,
		AuthorID: principal.ID,
	}
	switch kind {
	case models.KindClass:
		post.ClassID = &container.ID
	case models.KindCourse:
		post.CourseID = &container.ID
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("postId", created.ID.Hex()).
		Str("kind", string(kind)).
		Str("containerId", container.ID.Hex()).
		Str("authorId", principal.ID.Hex()).
		Msg("Post created")

	resp := dto.NewPostResponse(created)
	return &resp, nil
}

// GetWall lists the posts of a single container wall in insertion order
func (s *wallServiceImpl) GetWall(ctx context.Context, principalID primitive.ObjectID, kind models.ContainerKind, containerID primitive.ObjectID) ([]dto.PostResponse, error) {
	principal, err := s.users.FindByID(ctx, principalID)
	if err != nil {
		return nil, err
	}

	container, err := s.containers.GetByID(ctx, kind, containerID)
	if err != nil {
		return nil, err
	}

	if err := s.evaluator.ValidateContainerAccess(principal, kind, container.ID); err != nil {
		return nil, err
	}

	posts, err := s.posts.GetByContainer(ctx, kind, container.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewPostListResponse(posts), nil
}

// GetAggregateWall concatenates the walls of every container the caller
// belongs to: class walls first, then course walls, each in insertion
// order. Memberships are sets, so no post can appear twice.
func (s *wallServiceImpl) GetAggregateWall(ctx context.Context, principalID primitive.ObjectID) ([]dto.PostResponse, error) {
	principal, err := s.users.FindByID(ctx, principalID)
	if err != nil {
		return nil, err
	}

	all := make([]dto.PostResponse, 0)
	for _, classID := range principal.ClassIDs {
		posts, err := s.posts.GetByContainer(ctx, models.KindClass, classID)
		if err != nil {
			return nil, err
		}
		all = append(all, dto.NewPostListResponse(posts)...)
	}
	for _, courseID := range principal.CourseIDs {
		posts, err := s.posts.GetByContainer(ctx, models.KindCourse, courseID)
		if err != nil {
			return nil, err
		}
		all = append(all, dto.NewPostListResponse(posts)...)
	}
	return all, nil
}

// DeletePost hard-deletes a post. Child comments and like references are
// left dangling; the comments collection remains queryable by post id.
func (s *wallServiceImpl) DeletePost(ctx context.Context, principalID, postID primitive.ObjectID) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	principal, err := s.users.FindByID(ctx, principalID)
	if err != nil {
		return err
	}

	if err := s.evaluator.ValidatePostDeletion(principal, post); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return err
	}

	s.logger.Info().
		Str("postId", post.ID.Hex()).
		Str("deletedBy", principal.ID.Hex()).
		Msg("Post deleted")
	return nil
}

// CreateComment stores a new comment under a post the caller can access.
// The parent's denormalized comment id list is updated best-effort: a
// failure there is logged but does not fail the request, since comments
// are authoritatively queried by post id.
func (s *wallServiceImpl) CreateComment(ctx context.Context, principalID, postID primitive.ObjectID, text string) (*dto.CommentResponse, error) {
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

	created, err := s.comments.Create(ctx, &models.Comment{
		Text:     text,
		AuthorID: principal.ID,
		PostID:   post.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.posts.AppendCommentID(ctx, post.ID, created.ID); err != nil {
		s.logger.Warn().Err(err).
			Str("postId", post.ID.Hex()).
			Str("commentId", created.ID.Hex()).
			Msg("Failed to append comment id to post")
	}

	resp := dto.NewCommentResponse(created)
	return &resp, nil
}

// GetComments lists the comments of a post the caller can access
func (s *wallServiceImpl) GetComments(ctx context.Context, principalID, postID primitive.ObjectID) ([]dto.CommentResponse, error) {
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

	comments, err := s.comments.GetByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewCommentListResponse(comments), nil
}

// DeleteComment hard-deletes a comment. The parent post may already be
// gone; in that case only the comment's author can remove it.
func (s *wallServiceImpl) DeleteComment(ctx context.Context, principalID, commentID primitive.ObjectID) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	principal, err := s.users.FindByID(ctx, principalID)
	if err != nil {
		return err
	}

	parent, err := s.posts.GetByID(ctx, comment.PostID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrPostNotFound) {
			return err
		}
		parent = nil
	}

	if err := s.evaluator.ValidateCommentDeletion(principal, comment, parent); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return err
	}

	s.logger.Info().
		Str("commentId", comment.ID.Hex()).
		Str("deletedBy", principal.ID.Hex()).
		Msg("Comment deleted")
	return nil
}
