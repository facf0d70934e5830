package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/store"
)

// pageParams holds validated offset pagination values.
type pageParams struct {
	Skip  int
	Limit int
}

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}

	return id, nil
}

// parsePageParams reads skip/limit query parameters, applying the endpoint's
// default limit. skip must be >= 0 and limit within [store.MinLimit,
// store.MaxLimit].
func parsePageParams(r *http.Request, defaultLimit int) (pageParams, error) {
	page := pageParams{Skip: 0, Limit: defaultLimit}
	q := r.URL.Query()

	if raw := q.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return page, domain.NewValidationError("skip", "must be a non-negative integer", domain.ErrValidation)
		}
		page.Skip = skip
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < store.MinLimit || limit > store.MaxLimit {
			return page, domain.NewValidationError("limit",
				fmt.Sprintf("must be an integer between %d and %d", store.MinLimit, store.MaxLimit),
				domain.ErrValidation)
		}
		page.Limit = limit
	}

	return page, nil
}

// parseOptionalBool reads an optional query parameter as a bool pointer.
// Returns nil when the parameter is absent.
func parseOptionalBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be a boolean", domain.ErrValidation)
	}
	return &value, nil
}

// parseOptionalInt64 reads an optional query parameter as an int64 pointer.
// Returns nil when the parameter is absent.
func parseOptionalInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be an integer", domain.ErrValidation)
	}
	return &value, nil
}
