package repositories

import (
	"github.com/jiripapousek/classwall/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	ContainerRepository *ContainerRepository
	PostRepository      *PostRepository
	CommentRepository   *CommentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.MongoDB) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(database),
		ContainerRepository: NewContainerRepository(database),
		PostRepository:      NewPostRepository(database),
		CommentRepository:   NewCommentRepository(database),
	}
}
