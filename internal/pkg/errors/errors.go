package errors

import (
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

// WithDetails returns a copy carrying extra context, so the shared
// sentinel values below are never mutated.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithMessage returns a copy with a more specific message.
func (e *AppError) WithMessage(format string, args ...interface{}) *AppError {
	clone := *e
	clone.Message = fmt.Sprintf(format, args...)
	return &clone
}

var (
	ErrInvalidRequest = New(
		CodeInvalidInput,
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidPagination = New(
		CodeInvalidInput,
		"Invalid limit or page value",
		http.StatusBadRequest,
	)

	ErrInvalidID = New(
		CodeInvalidInput,
		"Invalid ID format",
		http.StatusBadRequest,
	)

	// ErrNoContent signals an empty result set; handlers translate it
	// into a bodyless 204, not a failure.
	ErrNoContent = New(
		CodeNoContent,
		"No content",
		http.StatusNoContent,
	)

	ErrTypeNotFound = New(
		CodeNotFound,
		"Type entity not found",
		http.StatusNotFound,
	)

	ErrSubtypeNotFound = New(
		CodeNotFound,
		"Subtype entity not found",
		http.StatusNotFound,
	)

	ErrFacilityNotFound = New(
		CodeNotFound,
		"Facility not found",
		http.StatusNotFound,
	)

	ErrPointNotFound = New(
		CodeNotFound,
		"City point of interest not found",
		http.StatusNotFound,
	)

	ErrUserNotFound = New(
		CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrFileNotFound = New(
		CodeNotFound,
		"File not found",
		http.StatusNotFound,
	)

	ErrNameConflict = New(
		CodeConflict,
		"A record with this name already exists",
		http.StatusConflict,
	)

	ErrRoleConflict = New(
		CodeConflict,
		"A type with this role already exists",
		http.StatusConflict,
	)

	ErrUserExists = New(
		CodeInvalidInput,
		"User already exists",
		http.StatusBadRequest,
	)

	ErrBadCredentials = New(
		CodeInvalidInput,
		"Bad credentials",
		http.StatusBadRequest,
	)

	ErrInvalidRefreshToken = New(
		CodeUnauthorized,
		"Invalid user or refresh token",
		http.StatusUnauthorized,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Missing or invalid access token",
		http.StatusUnauthorized,
	)

	ErrForbidden = New(
		CodeForbidden,
		"Insufficient role for this operation",
		http.StatusForbidden,
	)

	ErrInvalidResetToken = New(
		CodeInvalidInput,
		"Invalid or expired reset token",
		http.StatusBadRequest,
	)

	ErrTemplateNotFound = New(
		CodeUpstreamError,
		"Email template not found",
		http.StatusBadRequest,
	)

	ErrEmailSendFailed = New(
		CodeUpstreamError,
		"Failed to send email",
		http.StatusBadRequest,
	)

	ErrInvalidUploadPath = New(
		CodeInvalidInput,
		"Invalid upload path segment",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		CodeDatabaseError,
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		CodeCacheError,
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		CodeInternalServer,
		"Internal server error",
		http.StatusInternalServerError,
	)
)
