package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jiripapousek/classwall/internal/app/models/dto"
	"github.com/jiripapousek/classwall/internal/app/services"
	"github.com/jiripapousek/classwall/internal/middleware"
)

// CommentController handles comment deletion and comment likes
type CommentController struct {
	wallService       services.WallService
	engagementService services.EngagementService
}

// NewCommentController creates a new CommentController
func NewCommentController(wallService services.WallService, engagementService services.EngagementService) *CommentController {
	return &CommentController{
		wallService:       wallService,
		engagementService: engagementService,
	}
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Removes a comment; allowed for its author, or a teacher who is a member of the parent post's class or course
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 204 "Comment deleted"
// @Failure 400 {object} dto.ErrorResponse "Unknown comment"
// @Failure 403 {object} dto.ErrorResponse "Caller may not delete this comment"
// @Router /comment/{id} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	commentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	principalID, ok := middleware.PrincipalID(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	if err := c.wallService.DeleteComment(ctx, principalID, commentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// LikeComment godoc
// @Summary Like a comment
// @Description Records the caller's like on a comment; fails if already liked
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown comment or already liked"
// @Failure 403 {object} dto.ErrorResponse "Caller has no access to the comment"
// @Router /comment/{id}/like [post]
func (c *CommentController) LikeComment(ctx *gin.Context) {
	commentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	principalID, ok := middleware.PrincipalID(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	comment, err := c.engagementService.LikeComment(ctx, principalID, commentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comment))
}

// UnlikeComment godoc
// @Summary Remove a like from a comment
// @Description Withdraws the caller's like; fails if no like exists
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown comment or not liked"
// @Failure 403 {object} dto.ErrorResponse "Caller has no access to the comment"
// @Router /comment/{id}/like [delete]
func (c *CommentController) UnlikeComment(ctx *gin.Context) {
	commentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	principalID, ok := middleware.PrincipalID(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	if err := c.engagementService.UnlikeComment(ctx, principalID, commentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Like removed"}))
}
