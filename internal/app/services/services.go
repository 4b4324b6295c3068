package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jiripapousek/classwall/internal/app/models"
)

// The store interfaces below describe exactly what the services need from
// the data layer. The mongo repositories satisfy them; tests substitute
// in-memory fakes.

// UserStore is the user collection access needed by the services
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	AddMembership(ctx context.Context, userID primitive.ObjectID, kind models.ContainerKind, containerID primitive.ObjectID) error
	AddLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error
	RemoveLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error
	AddLikedComment(ctx context.Context, userID, commentID primitive.ObjectID) error
	RemoveLikedComment(ctx context.Context, userID, commentID primitive.ObjectID) error
}

// ContainerStore is the class/course collection access needed by the services
type ContainerStore interface {
	GetByID(ctx context.Context, kind models.ContainerKind, id primitive.ObjectID) (*models.Container, error)
	GetAll(ctx context.Context, kind models.ContainerKind) ([]*models.Container, error)
	Create(ctx context.Context, kind models.ContainerKind, name string) (*models.Container, error)
	AddMember(ctx context.Context, kind models.ContainerKind, containerID, userID primitive.ObjectID) error
}

// PostStore is the post collection access needed by the services
type PostStore interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	GetByContainer(ctx context.Context, kind models.ContainerKind, containerID primitive.ObjectID) ([]*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
	AppendCommentID(ctx context.Context, postID, commentID primitive.ObjectID) error
}

// CommentStore is the comment collection access needed by the services
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	GetByPost(ctx context.Context, postID primitive.ObjectID) ([]*models.Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddLike(ctx context.Context, commentID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, commentID, userID primitive.ObjectID) error
}
