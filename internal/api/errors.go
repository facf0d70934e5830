package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nfjones/blogmart-api/internal/api/shared"
	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This keeps internal error types and
// messages out of client responses.
func MapErrorToStatusCode(err error) int {
	var validationErr validator.ValidationErrors

	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		domain.IsValidation(err),
		errors.As(err, &validationErr):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// HandleAPIError writes the error response for err. clientMessage is the
// human-readable message sent to the client for 4xx errors; it should name
// the offending id or value. 5xx responses always carry a generic message,
// with the detail confined to the logs.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, clientMessage string) {
	status := MapErrorToStatusCode(err)

	message := clientMessage
	if status >= http.StatusInternalServerError || message == "" {
		message = safeErrorMessage(err, status)
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// safeErrorMessage returns a generic, sanitized message for the given error.
func safeErrorMessage(err error, status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "An unexpected error occurred"
	case store.IsNotFoundError(err):
		return "Resource not found"
	case store.IsDuplicateError(err):
		return "Resource already exists"
	case status == http.StatusBadRequest:
		return "Invalid request"
	default:
		return "An unexpected error occurred"
	}
}
