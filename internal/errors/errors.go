package errors

import (
	"fmt"
	"net/http"
)

// APIError is the application error carried through gin's error list and
// translated to the JSON envelope by the error-handler middleware.
type APIError struct {
	Status   int      `json:"status"`
	Message  string   `json:"message"`
	Details  []string `json:"details,omitempty"`
	Internal error    `json:"-"`
}

func (e *APIError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Internal
}

func (e *APIError) WithDetails(details ...string) *APIError {
	e.Details = append(e.Details, details...)
	return e
}

func New(status int, message string, internal error) *APIError {
	return &APIError{Status: status, Message: message, Internal: internal}
}

// BadRequest covers structural/field-level validation failures.
func BadRequest(message string, internal error) *APIError {
	return New(http.StatusBadRequest, message, internal)
}

// Unauthorized covers missing or invalid credentials.
func Unauthorized(message string, internal error) *APIError {
	return New(http.StatusUnauthorized, message, internal)
}

// Forbidden covers an authenticated principal lacking permission.
func Forbidden(message string, internal error) *APIError {
	return New(http.StatusForbidden, message, internal)
}

// NotFound covers an absent entity id, slug or path.
func NotFound(message string, internal error) *APIError {
	return New(http.StatusNotFound, message, internal)
}

// Conflict covers business-rule violations such as duplicate username/email.
func Conflict(message string, internal error) *APIError {
	return New(http.StatusConflict, message, internal)
}

// UnprocessableEntity covers well-formed input that breaks a domain rule,
// such as exceeding the per-page tag limit.
func UnprocessableEntity(message string, internal error) *APIError {
	return New(http.StatusUnprocessableEntity, message, internal)
}

func Internal(internal error) *APIError {
	return New(http.StatusInternalServerError, "Internal server error", internal)
}
