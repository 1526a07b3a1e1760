package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents an application error with HTTP status and error code
type Error struct {
	HTTPStatus int
	Code       string
	Message    string
	Internal   error
	Details    map[string]any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the internal error
func (e *Error) Unwrap() error {
	return e.Internal
}

// Is reports whether target is an *Error with the same status and code, so
// copies made by WithMessage/WithInternal still match their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.HTTPStatus == t.HTTPStatus && e.Code == t.Code
}

// WithInternal returns a copy of the error with an internal error attached
func (e *Error) WithInternal(err error) *Error {
	return &Error{
		HTTPStatus: e.HTTPStatus,
		Code:       e.Code,
		Message:    e.Message,
		Internal:   err,
		Details:    e.Details,
	}
}

// WithMessage returns a copy of the error with a custom message
func (e *Error) WithMessage(message string) *Error {
	return &Error{
		HTTPStatus: e.HTTPStatus,
		Code:       e.Code,
		Message:    message,
		Internal:   e.Internal,
		Details:    e.Details,
	}
}

// WithDetails returns a copy of the error with details attached
func (e *Error) WithDetails(details map[string]any) *Error {
	return &Error{
		HTTPStatus: e.HTTPStatus,
		Code:       e.Code,
		Message:    e.Message,
		Internal:   e.Internal,
		Details:    details,
	}
}

// New creates a new application error
func New(status int, code, message string) *Error {
	return &Error{
		HTTPStatus: status,
		Code:       code,
		Message:    message,
	}
}

// Common error definitions
var (
	// Authentication errors
	ErrUnauthorized       = New(http.StatusUnauthorized, "unauthorized", "Authentication required")
	ErrInvalidToken       = New(http.StatusUnauthorized, "invalid_token", "Invalid or expired token")
	ErrTokenExpired       = New(http.StatusUnauthorized, "token_expired", "Token has expired")
	ErrMissingToken       = New(http.StatusUnauthorized, "missing_token", "Missing authorization token")
	ErrInvalidCredentials = New(http.StatusBadRequest, "invalid_credentials", "Invalid credentials")

	// Authorization errors
	ErrForbidden     = New(http.StatusForbidden, "forbidden", "Access denied")
	ErrAdminRequired = New(http.StatusForbidden, "admin_required", "Admin access required")

	// Resource errors
	ErrNotFound      = New(http.StatusNotFound, "not_found", "Resource not found")
	ErrRouteNotFound = New(http.StatusNotFound, "route_not_found", "Route not found")
	ErrUserNotFound  = New(http.StatusNotFound, "user_not_found", "User not found")
	ErrMovieNotFound = New(http.StatusNotFound, "movie_not_found", "Movie not found")

	// Duplicates are reported as 400 to match the public API contract.
	ErrDuplicate = New(http.StatusBadRequest, "duplicate", "Resource already exists")

	// Validation errors
	ErrBadRequest = New(http.StatusBadRequest, "bad_request", "Invalid request")
	ErrValidation = New(http.StatusBadRequest, "validation_failed", "Validation failed")

	// Rate limiting
	ErrTooManyRequests = New(http.StatusTooManyRequests, "too_many_requests", "Too many requests")

	// Server errors
	ErrInternal = New(http.StatusInternalServerError, "internal_error", "Internal server error")
	ErrDatabase = New(http.StatusInternalServerError, "database_error", "Database operation failed")
)

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ToHTTPError converts an error to a status code and response envelope.
// Unknown errors become a generic 500 without exposing the cause.
func ToHTTPError(err error) (int, map[string]any) {
	if appErr, ok := As(err); ok {
		body := map[string]any{
			"success": false,
			"code":    appErr.Code,
			"message": appErr.Message,
		}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		return appErr.HTTPStatus, body
	}

	return http.StatusInternalServerError, map[string]any{
		"success": false,
		"code":    ErrInternal.Code,
		"message": ErrInternal.Message,
	}
}

// NewBadRequest creates a bad request error with a custom message
func NewBadRequest(message string) *Error {
	return ErrBadRequest.WithMessage(message)
}

// NewNotFound creates a not found error for a resource type and ID
func NewNotFound(resourceType, id string) *Error {
	return ErrNotFound.WithMessage(fmt.Sprintf("%s '%s' not found", resourceType, id))
}

// NewDuplicate creates a duplicate error with a custom message
func NewDuplicate(message string) *Error {
	return ErrDuplicate.WithMessage(message)
}

// NewInternal creates an internal error with a message and optional wrapped error
func NewInternal(message string, err error) *Error {
	return &Error{
		HTTPStatus: http.StatusInternalServerError,
		Code:       "internal_error",
		Message:    message,
		Internal:   err,
	}
}

// NewForbidden creates a forbidden error with a custom message
func NewForbidden(message string) *Error {
	return ErrForbidden.WithMessage(message)
}
