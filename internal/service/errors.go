package service

import (
	"errors"
	"fmt"

	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/store"
)

// ServiceError wraps errors from the service layer with operation context.
// Store sentinels and domain validation errors are never wrapped; they pass
// through unchanged so callers can dispatch on them with errors.Is.
type ServiceError struct {
	// Operation is the operation that failed (e.g. "create_user").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError constructs a ServiceError with operation context.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Message: message, Err: err}
}

// wrapError wraps unexpected errors with operation context. Sentinel errors
// the API layer dispatches on are returned unchanged.
func wrapError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	if store.IsNotFoundError(err) || store.IsDuplicateError(err) ||
		errors.Is(err, store.ErrInvalidEntity) || domain.IsValidation(err) {
		return err
	}
	return &ServiceError{Operation: operation, Message: message, Err: err}
}
