package utils

import (
	"errors"
	"net/http"
)

// Request errors recovered at the handler boundary. Domain code wraps them
// with fmt.Errorf("...: %w", ...) so the detail survives for logging.
var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrNotAuthorized         = errors.New("not authorized")
	ErrResourceNotFound      = errors.New("resource not found")
)

// StatusCode maps an error to the HTTP status the API answers with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequestPayload):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrResourceNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage is the client-facing message for err. Wrapped details are
// never exposed.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequestPayload):
		return "Invalid request payload"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrNotAuthorized):
		return "Not authorized"
	case errors.Is(err, ErrResourceNotFound):
		return "Resource not found"
	default:
		return "Internal Server Error"
	}
}
