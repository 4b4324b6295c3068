package dto

import (
	"time"

	"github.com/jiripapousek/classwall/internal/app/models"
)

// CreateCommentRequest creates a new comment under a post
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required" example:"nice post"`
}

// CommentResponse represents a comment under a post
type CommentResponse struct {
	ID          string    `json:"id" example:"662f9a1be7a7cd6f3cbb2f40"`
	Text        string    `json:"text" example:"nice post"`
	AuthorID    string    `json:"authorId" example:"662f9a1be7a7cd6f3cbb2f14"`
	PostID      string    `json:"postId" example:"662f9a1be7a7cd6f3cbb2f30"`
	LikeUserIDs []string  `json:"likeUserIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewCommentResponse builds a response from a comment document
func NewCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:          comment.ID.Hex(),
		Text:        comment.Text,
		AuthorID:    comment.AuthorID.Hex(),
		PostID:      comment.PostID.Hex(),
		LikeUserIDs: models.HexIDs(comment.LikeUserIDs),
		CreatedAt:   comment.CreatedAt,
	}
}

// NewCommentListResponse builds responses for a list of comments
func NewCommentListResponse(comments []*models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentResponse(c))
	}
	return out
}
