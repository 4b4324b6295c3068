package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jiripapousek/classwall/internal/app/models/dto"
	"github.com/jiripapousek/classwall/internal/app/services"
	"github.com/jiripapousek/classwall/internal/middleware"
)

// UserController handles user profile requests
type UserController struct {
	authService services.AuthService
}

// NewUserController creates a new UserController
func NewUserController(authService services.AuthService) *UserController {
	return &UserController{
		authService: authService,
	}
}

// GetUserInfo godoc
// @Summary Get the caller's profile
// @Description Returns the authenticated user's identity, role and memberships
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserInfoResponse}
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /user/info [get]
func (c *UserController) GetUserInfo(ctx *gin.Context) {
	principalID, ok := middleware.PrincipalID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.authService.GetUserInfo(ctx, principalID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}
