// Package auth contains the access-control policy for walls, posts and
// comments. Every decision is a pure function of the principal and target
// snapshots passed in; callers load the documents first, so a missing
// target surfaces as not-found before any permission is evaluated.
package auth

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jiripapousek/classwall/internal/app/models"
	"github.com/jiripapousek/classwall/internal/pkg/apperrors"
)

// Evaluator decides whether a principal may act on a target resource.
type Evaluator struct{}

// NewEvaluator creates a new Evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// CanAccessContainer reports whether the principal may read a wall or
// create posts on it: membership only, teachers get no shortcut.
func (e *Evaluator) CanAccessContainer(principal *models.User, kind models.ContainerKind, containerID primitive.ObjectID) bool {
	return principal.IsMemberOf(kind, containerID)
}

// ValidateContainerAccess validates wall access or returns a permission error
func (e *Evaluator) ValidateContainerAccess(principal *models.User, kind models.ContainerKind, containerID primitive.ObjectID) error {
	if !e.CanAccessContainer(principal, kind, containerID) {
		return apperrors.NewForbiddenError("user is not a member of this " + string(kind))
	}
	return nil
}

// CanAccessPost reports whether the principal may read, comment on or
// like a post: the author always may, otherwise the principal must be a
// member of the post's container.
func (e *Evaluator) CanAccessPost(principal *models.User, post *models.Post) bool {
	if post.AuthorID == principal.ID {
		return true
	}
	kind, containerID := post.Container()
	if kind == "" {
		return false
	}
	return principal.IsMemberOf(kind, containerID)
}

// ValidatePostAccess validates post access or returns a permission error
func (e *Evaluator) ValidatePostAccess(principal *models.User, post *models.Post) error {
	if !e.CanAccessPost(principal, post) {
		return apperrors.NewForbiddenError("user does not have access to this post")
	}
	return nil
}

// CanDeletePost reports whether the principal may delete a post: the
// author always may; a teacher may only when also a member of the post's
// container. The teacher flag alone grants nothing.
func (e *Evaluator) CanDeletePost(principal *models.User, post *models.Post) bool {
	if post.AuthorID == principal.ID {
		return true
	}
	if !principal.IsTeacher {
		return false
	}
	kind, containerID := post.Container()
	if kind == "" {
		return false
	}
	return principal.IsMemberOf(kind, containerID)
}

// ValidatePostDeletion validates post deletion or returns a permission error
func (e *Evaluator) ValidatePostDeletion(principal *models.User, post *models.Post) error {
	if !e.CanDeletePost(principal, post) {
		return apperrors.NewForbiddenError("user does not have permission to delete this post")
	}
	return nil
}

// CanAccessComment reports whether the principal may read or like a
// comment. Access follows the parent post's container: the comment's
// author always may, otherwise container membership is required.
func (e *Evaluator) CanAccessComment(principal *models.User, comment *models.Comment, parent *models.Post) bool {
	if comment.AuthorID == principal.ID {
		return true
	}
	// A nil parent means the comment dangles after its post was deleted;
	// membership cannot be established, only the author keeps access.
	if parent == nil {
		return false
	}
	kind, containerID := parent.Container()
	if kind == "" {
		return false
	}
	return principal.IsMemberOf(kind, containerID)
}

// ValidateCommentAccess validates comment access or returns a permission error
func (e *Evaluator) ValidateCommentAccess(principal *models.User, comment *models.Comment, parent *models.Post) error {
	if !e.CanAccessComment(principal, comment, parent) {
		return apperrors.NewForbiddenError("user does not have access to this comment")
	}
	return nil
}

// CanDeleteComment reports whether the principal may delete a comment:
// the author, or a teacher who is a member of the parent post's container.
func (e *Evaluator) CanDeleteComment(principal *models.User, comment *models.Comment, parent *models.Post) bool {
	if comment.AuthorID == principal.ID {
		return true
	}
	if !principal.IsTeacher || parent == nil {
		return false
	}
	kind, containerID := parent.Container()
	if kind == "" {
		return false
	}
	return principal.IsMemberOf(kind, containerID)
}

// ValidateCommentDeletion validates comment deletion or returns a permission error
func (e *Evaluator) ValidateCommentDeletion(principal *models.User, comment *models.Comment, parent *models.Post) error {
	if !e.CanDeleteComment(principal, comment, parent) {
		return apperrors.NewForbiddenError("user does not have permission to delete this comment")
	}
	return nil
}
