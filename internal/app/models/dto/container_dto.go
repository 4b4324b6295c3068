package dto

import "github.com/jiripapousek/classwall/internal/app/models"

// CreateContainerRequest creates a new class or course
type CreateContainerRequest struct {
	Name string `json:"name" binding:"required" example:"Biology"`
}

// AddMemberRequest associates a user with a class or course
type AddMemberRequest struct {
	UserID string `json:"userId" binding:"required" example:"662f9a1be7a7cd6f3cbb2f14"`
}

// ContainerResponse represents a class or course
type ContainerResponse struct {
	ID      string   `json:"id" example:"662f9a1be7a7cd6f3cbb2f20"`
	Name    string   `json:"name" example:"Biology"`
	UserIDs []string `json:"userIds"`
}

// NewContainerResponse builds a response from a container document
func NewContainerResponse(container *models.Container) ContainerResponse {
	return ContainerResponse{
		ID:      container.ID.Hex(),
		Name:    container.Name,
		UserIDs: models.HexIDs(container.UserIDs),
	}
}

// NewContainerListResponse builds responses for a list of containers
func NewContainerListResponse(containers []*models.Container) []ContainerResponse {
	out := make([]ContainerResponse, 0, len(containers))
	for _, c := range containers {
		out = append(out, NewContainerResponse(c))
	}
	return out
}
