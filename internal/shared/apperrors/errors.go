package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel error classes. Handlers map these to HTTP status codes; everything
// else is treated as an internal error.
var (
	// ErrValidation means the request is missing or malformed required fields.
	// The client must fix the request before retrying.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers absent resources and expired or foreign holds alike,
	// so callers cannot distinguish "never existed" from "just expired".
	ErrNotFound = errors.New("not found")

	// ErrConflict covers exhausted capacity, duplicate active holds, and
	// unique-constraint violations. Terminal for this request; never retried
	// server-side.
	ErrConflict = errors.New("conflict")
)

// Validationf wraps ErrValidation with a client-facing message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// NotFoundf wraps ErrNotFound with a client-facing message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// Conflictf wraps ErrConflict with a client-facing message.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}

// StatusCode returns the HTTP status for a service error.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
