package dto

import (
	"time"

	"github.com/jiripapousek/classwall/internal/app/models"
)

// CreatePostRequest creates a new post on a wall
type CreatePostRequest struct {
	Text string `json:"text" binding:"required" example:"hello"`
}

// PostResponse represents a post on a wall
type PostResponse struct {
	ID          string    `json:"id" example:"662f9a1be7a7cd6f3cbb2f30"`
	Text        string    `json:"text" example:"hello"`
	AuthorID    string    `json:"authorId" example:"662f9a1be7a7cd6f3cbb2f14"`
	ClassID     string    `json:"classId,omitempty" example:""`
	CourseID    string    `json:"courseId,omitempty" example:"662f9a1be7a7cd6f3cbb2f20"`
	LikeUserIDs []string  `json:"likeUserIds"`
	CommentIDs  []string  `json:"commentIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewPostResponse builds a response from a post document
func NewPostResponse(post *models.Post) PostResponse {
	resp := PostResponse{
		ID:          post.ID.Hex(),
		Text:        post.Text,
		AuthorID:    post.AuthorID.Hex(),
		LikeUserIDs: models.HexIDs(post.LikeUserIDs),
		CommentIDs:  models.HexIDs(post.CommentIDs),
		CreatedAt:   post.CreatedAt,
	}
	if post.ClassID != nil {
		resp.ClassID = post.ClassID.Hex()
	}
	if post.CourseID != nil {
		resp.CourseID = post.CourseID.Hex()
	}
	return resp
}

// NewPostListResponse builds responses for a list of posts
func NewPostListResponse(posts []*models.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostResponse(p))
	}
	return out
}
