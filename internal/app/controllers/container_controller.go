package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jiripapousek/classwall/internal/app/models"
	"github.com/jiripapousek/classwall/internal/app/models/dto"
	"github.com/jiripapousek/classwall/internal/app/services"
	"github.com/jiripapousek/classwall/internal/middleware"
)

// ContainerController handles class and course requests. One instance is
// mounted per container kind; the handlers are otherwise identical.
type ContainerController struct {
	kind              models.ContainerKind
	membershipService services.MembershipService
	wallService       services.WallService
}

// NewContainerController creates a controller bound to one container kind
func NewContainerController(kind models.ContainerKind, membershipService services.MembershipService, wallService services.WallService) *ContainerController {
	return &ContainerController{
		kind:              kind,
		membershipService: membershipService,
		wallService:       wallService,
	}
}

// List godoc
// @Summary List all classes or courses
// @Description Returns every container of the kind, with member ids
// @Tags containers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ContainerResponse}
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /classes [get]
// @Router /courses [get]
func (c *ContainerController) List(ctx *gin.Context) {
	containers, err := c.membershipService.ListContainers(ctx, c.kind)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(containers))
}

// Create godoc
// @Summary Create a class or course
// @Description Creates an empty container; teacher role required
// @Tags containers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateContainerRequest true "Container name"
// @Success 201 {object} dto.APIResponse{data=dto.ContainerResponse}
// @Failure 400 {object} dto.ErrorResponse "Malformed request body"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a teacher"
// @Router /classes [post]
// @Router /courses [post]
func (c *ContainerController) Create(ctx *gin.Context) {
	var req dto.CreateContainerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	container, err := c.membershipService.CreateContainer(ctx, c.kind, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(container))
}

// AddMember godoc
// @Summary Associate a user with a class or course
// @Description Adds the user to the container and the container to the user; teacher role required. Re-associating an existing member is a no-op.
// @Tags containers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Container ID"
// @Param request body dto.AddMemberRequest true "User to add"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown container or user"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a teacher"
// @Router /class/{id}/members [post]
// @Router /course/{id}/members [post]
func (c *ContainerController) AddMember(ctx *gin.Context) {
	containerID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		middleware.RespondInvalidID(ctx, "userId")
		return
	}

	if err := c.membershipService.AssociateUser(ctx, c.kind, containerID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "User added to " + string(c.kind)}))
}

// GetWall godoc
// @Summary List the posts on a wall
// @Description Returns the container's posts in insertion order; membership required
// @Tags walls
// @Produce json
// @Security BearerAuth
// @Param id path string true "Container ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown container"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a member"
// @Router /class/{id}/wall [get]
// @Router /course/{id}/wall [get]
func (c *ContainerController) GetWall(ctx *gin.Context) {
	containerID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	principalID, ok := middleware.PrincipalID(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	posts, err := c.wallService.GetWall(ctx, principalID, c.kind, containerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// CreatePost godoc
// @Summary Create a post on a wall
// @Description Stores a new post on the container's wall; membership required
// @Tags walls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Container ID"
// @Param request body dto.CreatePostRequest true "Post content"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown container or malformed body"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a member"
// @Router /class/{id}/post [post]
// @Router /course/{id}/post [post]
func (c *ContainerController) CreatePost(ctx *gin.Context) {
	containerID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	principalID, ok := middleware.PrincipalID(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	post, err := c.wallService.CreatePost(ctx, principalID, c.kind, containerID, req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// parseIDParam reads an object id from a path parameter, answering the
// request itself when the value is not valid hex.
func parseIDParam(ctx *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(ctx.Param(name))
	if err != nil {
		middleware.RespondInvalidID(ctx, name)
		return primitive.NilObjectID, false
	}
	return id, true
}

func respondUnauthenticated(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
