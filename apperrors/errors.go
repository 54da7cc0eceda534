// Package apperrors defines the application error taxonomy and its mapping
// to HTTP status codes. Handlers convert any error into a structured
// {"error": ...} response; nothing above this package inspects raw errors.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an application error.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeStore        ErrorType = "store_error"
	ErrorTypeUpstreamAuth ErrorType = "upstream_auth_error"
)

// AppError carries an error type, a user-facing message and the HTTP status
// the handler layer should respond with.
type AppError struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports a user-correctable input problem.
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message, Code: http.StatusBadRequest}
}

// NewUnauthorizedError reports a missing or invalid credential.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Type: ErrorTypeUnauthorized, Message: message, Code: http.StatusUnauthorized}
}

// NewForbiddenError reports a valid identity with an insufficient role.
func NewForbiddenError(message string) *AppError {
	return &AppError{Type: ErrorTypeForbidden, Message: message, Code: http.StatusForbidden}
}

// NewNotFoundError reports a missing record.
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message, Code: http.StatusNotFound}
}

// NewStoreError wraps a key-value store failure.
func NewStoreError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeStore, Message: message, Code: http.StatusInternalServerError, Err: err}
}

// NewUpstreamAuthError reports an authenticator failure that is not an
// invalid credential, e.g. the verifier being misconfigured or unreachable.
func NewUpstreamAuthError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeUpstreamAuth, Message: message, Code: http.StatusInternalServerError, Err: err}
}

// AsAppError extracts an *AppError from err if there is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == t
}

// StatusCode returns the HTTP status for err, defaulting to 500 for errors
// outside the taxonomy.
func StatusCode(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
