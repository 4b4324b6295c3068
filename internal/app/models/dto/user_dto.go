package dto

import "github.com/jiripapousek/classwall/internal/app/models"

// UserInfoResponse is the caller's public profile: identity, role and
// membership ids. Like lists and credentials are never exposed here.
type UserInfoResponse struct {
	ID        string   `json:"id" example:"662f9a1be7a7cd6f3cbb2f14"`
	Username  string   `json:"username" example:"jiri.pap@gmail.com"`
	IsTeacher bool     `json:"isTeacher" example:"false"`
	CourseIDs []string `json:"courseIds"`
	ClassIDs  []string `json:"classIds"`
}

// NewUserInfoResponse builds the profile response from a user document
func NewUserInfoResponse(user *models.User) *UserInfoResponse {
	return &UserInfoResponse{
		ID:        user.ID.Hex(),
		Username:  user.Username,
		IsTeacher: user.IsTeacher,
		CourseIDs: models.HexIDs(user.CourseIDs),
		ClassIDs:  models.HexIDs(user.ClassIDs),
	}
}
