package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/service"
	"github.com/nfjones/blogmart-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"post not found", store.ErrPostNotFound, http.StatusNotFound},
		{"product not found", store.ErrProductNotFound, http.StatusNotFound},
		{"generic not found", store.ErrNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"sku exists", store.ErrSKUExists, http.StatusConflict},
		{"generic duplicate", store.ErrDuplicate, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"invalid email", domain.ErrInvalidEmail, http.StatusBadRequest},
		{"price not positive", domain.ErrProductPriceNotPositive, http.StatusBadRequest},
		{"field validation", domain.NewValidationError("limit", "out of range", domain.ErrValidation), http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestMapErrorToStatusCode_WrappedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			"wrapped not found",
			fmt.Errorf("loading user: %w", store.ErrUserNotFound),
			http.StatusNotFound,
		},
		{
			"service error around conflict",
			service.NewServiceError("create_user", "create failed", store.ErrEmailExists),
			http.StatusConflict,
		},
		{
			"service error around validation",
			service.NewServiceError("create_product", "create failed", domain.ErrProductPriceNotPositive),
			http.StatusBadRequest,
		},
		{
			"service error around unknown cause",
			service.NewServiceError("get_user", "get failed", errors.New("connection reset")),
			http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred",
		safeErrorMessage(errors.New("pq: connection refused"), http.StatusInternalServerError))
	assert.Equal(t, "Resource not found",
		safeErrorMessage(store.ErrUserNotFound, http.StatusNotFound))
	assert.Equal(t, "Resource already exists",
		safeErrorMessage(store.ErrSKUExists, http.StatusConflict))
	assert.Equal(t, "Invalid request",
		safeErrorMessage(domain.ErrValidation, http.StatusBadRequest))
}
