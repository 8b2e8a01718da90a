package types

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/dialogue-qc/internal/services/analyses"
	apperrors "github.com/killallgit/dialogue-qc/pkg/errors"
)

// Handler utility functions to reduce duplication across handlers

// RequireParam extracts a non-empty URL parameter
// Returns false and sends error response if it is blank
func RequireParam(c *gin.Context, paramName string) (string, bool) {
	value := strings.TrimSpace(c.Param(paramName))
	if value == "" {
		SendError(c, apperrors.MissingFieldError(paramName))
		return "", false
	}
	return value, true
}

// SendError writes err as an ErrorResponse. Domain errors are translated
// into AppErrors first so they carry the right status code.
func SendError(c *gin.Context, err error) {
	appErr, ok := apperrors.As(translate(err, c.Param("id")))
	if !ok {
		appErr = apperrors.Wrap(err, apperrors.ErrCodeInternal, "internal server error")
	}

	status := appErr.GetHTTPCode()
	resp := ErrorResponse{
		Status:  StatusError,
		Message: appErr.Message,
		Error:   string(appErr.Code),
	}
	if len(appErr.Details) > 0 {
		resp.Details = appErr.Details
	}
	c.JSON(status, resp)
}

func translate(err error, id string) error {
	switch {
	case stderrors.Is(err, analyses.ErrRunNotFound):
		return apperrors.NotFound("run", id)
	case stderrors.Is(err, analyses.ErrAnalysisNotFound):
		return apperrors.NotFound("analysis", id)
	case stderrors.Is(err, analyses.ErrInvalidRunID):
		return apperrors.ValidationError("id", err.Error())
	}
	return err
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Status: StatusError, Message: message, Error: string(apperrors.ErrCodeInvalidInput)})
}

// SendServiceUnavailable is used when a handler needs persistence that is not configured
func SendServiceUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{Status: StatusError, Message: message, Error: string(apperrors.ErrCodeServiceDown)})
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
