package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when an entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or not positive.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")
)

// ValidationError carries the offending field alongside the sentinel error,
// so the API layer can build a precise client message.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
// If err is nil, ErrValidation is used as the sentinel.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// IsValidation reports whether err is any of the domain's validation
// errors: the shared sentinels, a field ValidationError, or one of the
// per-entity field errors.
func IsValidation(err error) bool {
	var fieldErr *ValidationError
	if errors.As(err, &fieldErr) {
		return true
	}
	for _, sentinel := range []error{
		ErrValidation, ErrInvalidID, ErrInvalidEmail,
		ErrUserNameEmpty, ErrUserNameTooLong, ErrEmptyEmail, ErrEmailTooLong,
		ErrPostTitleEmpty, ErrPostTitleTooLong, ErrPostAuthorEmpty,
		ErrProductNameEmpty, ErrProductNameTooLong,
		ErrProductSKUEmpty, ErrProductSKUTooLong, ErrProductPriceNotPositive,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
