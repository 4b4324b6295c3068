package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jiripapousek/classwall/internal/app/models/dto"
	"github.com/jiripapousek/classwall/internal/app/services"
	"github.com/jiripapousek/classwall/internal/middleware"
)

// PostController handles post-level requests: the aggregate wall, post
// deletion, comments under a post and post likes.
type PostController struct {
	wallService       services.WallService
	engagementService services.EngagementService
}

// NewPostController creates a new PostController
func NewPostController(wallService services.WallService, engagementService services.EngagementService) *PostController {
	return &PostController{
		wallService:       wallService,
		engagementService: engagementService,
	}
}

// GetAggregateWall godoc
// @Summary Get the caller's aggregate wall
// @Description Concatenates the walls of every class and course the caller belongs to: class walls first, then course walls
// @Tags walls
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse}
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /wall [get]
func (c *PostController) GetAggregateWall(ctx *gin.Context) {
	principalID, ok := middleware.PrincipalID(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	posts, err := c.wallService.GetAggregateWall(ctx, principalID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// DeletePost godoc
// @Summary Delete a post
// @Description Removes a post; allowed for its author, or a teacher who is a member of the post's class or course
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 204 "Post deleted"
// @Failure 400 {object} dto.ErrorResponse "Unknown post"
// @Failure 403 {object} dto.ErrorResponse "Caller may not delete this post"
// @Router /post/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	principalID, ok := middleware.PrincipalID(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	if err := c.wallService.DeletePost(ctx, principalID, postID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CreateComment godoc
// @Summary Comment on a post
// @Description Stores a new comment under a post the caller can access
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body dto.CreateCommentRequest true "Comment content"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown post or malformed body"
// @Failure 403 {object} dto.ErrorResponse "Caller has no access to the post"
// @Router /post/{id}/comment [post]
func (c *PostController) CreateComment(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	principalID, ok := middleware.PrincipalID(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	comment, err := c.wallService.CreateComment(ctx, principalID, postID, req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// GetComments godoc
// @Summary List the comments of a post
// @Description Returns the post's comments in insertion order
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown post"
// @Failure 403 {object} dto.ErrorResponse "Caller has no access to the post"
// @Router /post/{id}/comments [get]
func (c *PostController) GetComments(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	principalID, ok := middleware.PrincipalID(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	comments, err := c.wallService.GetComments(ctx, principalID, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comments))
}

// LikePost godoc
// @Summary Like a post
// @Description Records the caller's like on a post; fails if already liked
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown post or already liked"
// @Failure 403 {object} dto.ErrorResponse "Caller has no access to the post"
// @Router /post/{id}/like [post]
func (c *PostController) LikePost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	principalID, ok := middleware.PrincipalID(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	post, err := c.engagementService.LikePost(ctx, principalID, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// UnlikePost godoc
// @Summary Remove a like from a post
// @Description Withdraws the caller's like; fails if no like exists
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown post or not liked"
// @Failure 403 {object} dto.ErrorResponse "Caller has no access to the post"
// @Router /post/{id}/like [delete]
func (c *PostController) UnlikePost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	principalID, ok := middleware.PrincipalID(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	if err := c.engagementService.UnlikePost(ctx, principalID, postID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Like removed"}))
}
