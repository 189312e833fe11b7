package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursecatalog/internal/app/models/dto"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
	"github.com/yigit/coursecatalog/internal/pkg/logger"
)

// errorMapping pairs an application error with its HTTP status and error code
type errorMapping struct {
	target error
	status int
	code   dto.ErrorCode
}

var errorMappings = []errorMapping{
	{apperrors.ErrInvalidPrerequisite, http.StatusUnprocessableEntity, dto.ErrorCodeInvalidPrerequisite},
	{apperrors.ErrDuplicateID, http.StatusConflict, dto.ErrorCodeDuplicateCourseID},
	{apperrors.ErrDependencyConflict, http.StatusConflict, dto.ErrorCodeDependencyConflict},
	{apperrors.ErrUnknownCourse, http.StatusUnprocessableEntity, dto.ErrorCodeUnknownCourse},
	{apperrors.ErrDuplicateInstance, http.StatusConflict, dto.ErrorCodeDuplicateInstance},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
}

// StatusFor returns the HTTP status and error code an error is reported with
func StatusFor(err error) (int, dto.ErrorCode) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, dto.ErrorCodeInternalServer
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, code := StatusFor(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error while serving request")
		c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical)))
		return
	}

	detail := dto.NewErrorDetail(code, err.Error())
	if details := apperrors.DetailsOf(err); details != nil {
		detail.WithDetails(details)
	}
	if status == http.StatusNotFound {
		detail.WithSeverity(dto.ErrorSeverityWarning)
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}
