package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jiripapousek/classwall/internal/app/models/dto"
	"github.com/jiripapousek/classwall/internal/pkg/apperrors"
	"github.com/jiripapousek/classwall/internal/pkg/logger"
)

// HandleAPIError maps a service error to an HTTP response. All controllers
// funnel their failures through here so status codes and the error body
// shape stay uniform across the API.
func HandleAPIError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondWithError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid username or password", err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondWithError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token has expired", err)
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		respondWithError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid authentication token", err)

	case errors.Is(err, apperrors.ErrUsernameTaken):
		respondWithError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Username is already taken", err)

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondWithError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Access denied", err)

	// Unresolvable references are treated as malformed requests rather
	// than 404s: the id was supplied by the client in a request body or
	// path and simply does not name anything.
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrClassNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrPostNotFound),
		errors.Is(err, apperrors.ErrCommentNotFound):
		respondWithError(c, http.StatusBadRequest, dto.ErrorCodeResourceNotFound, "Referenced resource does not exist", err)

	case errors.Is(err, apperrors.ErrAlreadyLiked),
		errors.Is(err, apperrors.ErrNotLiked),
		errors.Is(err, apperrors.ErrBadRequest):
		respondWithError(c, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Invalid request", err)

	case errors.Is(err, apperrors.ErrValidationFailed):
		respondWithError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed", err)

	default:
		logger.Error().Err(err).Msg("Unhandled API error")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An unexpected error occurred")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}

// respondWithError writes a standard error body, surfacing the wrapped
// message from a CustomError when one is present.
func respondWithError(c *gin.Context, status int, code dto.ErrorCode, message string, err error) {
	errorDetail := dto.NewErrorDetail(code, message)

	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		errorDetail = errorDetail.WithDetails(customErr.Message)
	}

	c.JSON(status, dto.NewErrorResponse(errorDetail))
}

// RespondInvalidID writes the response for a path parameter that is not a
// valid object id.
func RespondInvalidID(c *gin.Context, param string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Invalid "+param).
		WithField(param)
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
