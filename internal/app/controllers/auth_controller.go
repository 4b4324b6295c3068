package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jiripapousek/classwall/internal/app/models/dto"
	"github.com/jiripapousek/classwall/internal/app/services"
	"github.com/jiripapousek/classwall/internal/middleware"
)

// AuthController handles authentication requests
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login godoc
// @Summary Issue an access token
// @Description Verifies username and password and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed request body"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /token [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	token, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Token payload goes out bare so standard OAuth-style clients can
	// read access_token directly.
	ctx.JSON(http.StatusOK, token)
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user account with a unique username
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.APIResponse{data=dto.UserInfoResponse}
// @Failure 400 {object} dto.ErrorResponse "Malformed request body"
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.authService.Register(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(user))
}
