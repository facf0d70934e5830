package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/nfjones/blogmart-api/internal/api"
	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/mocks"
	"github.com/nfjones/blogmart-api/internal/service"
	"github.com/nfjones/blogmart-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostRouter(svc *mocks.MockPostService) http.Handler {
	h := api.NewPostHandler(svc)
	r := chi.NewRouter()
	r.Post("/posts/", h.Create)
	r.Get("/posts/", h.List)
	r.Get("/posts/filtered", h.Filter)
	r.Get("/posts/{id}", h.Get)
	r.Patch("/posts/{id}", h.Update)
	r.Delete("/posts/{id}", h.Delete)
	return r
}

func TestPostHandlerCreate_Success(t *testing.T) {
	svc := &mocks.MockPostService{
		CreateFn: func(ctx context.Context, title, content string, published bool, userID int64) (*domain.Post, error) {
			assert.False(t, published, "published should default to false when absent")
			post, err := domain.NewPost(title, content, published, userID)
			require.NoError(t, err)
			post.ID = 1
			return post, nil
		},
	}

	rr := doRequest(t, newPostRouter(svc), http.MethodPost, "/posts/",
		`{"title": "First", "content": "hello", "user_id": 1}`)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp api.PostResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "First", resp.Title)
	assert.False(t, resp.Published)
	assert.Equal(t, int64(1), resp.UserID)
}

func TestPostHandlerCreate_MissingAuthor(t *testing.T) {
	svc := &mocks.MockPostService{
		CreateFn: func(ctx context.Context, title, content string, published bool, userID int64) (*domain.Post, error) {
			return nil, store.ErrUserNotFound
		},
	}

	rr := doRequest(t, newPostRouter(svc), http.MethodPost, "/posts/",
		`{"title": "Orphan", "user_id": 999}`)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, decodeErrorBody(t, rr), "999")
}

func TestPostHandlerCreate_ValidationErrors(t *testing.T) {
	svc := &mocks.MockPostService{
		CreateFn: func(ctx context.Context, title, content string, published bool, userID int64) (*domain.Post, error) {
			t.Fatal("service should not be called for invalid payloads")
			return nil, nil
		},
	}
	router := newPostRouter(svc)

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"user_id": 1}`},
		{"missing user_id", `{"title": "First"}`},
		{"non-positive user_id", `{"title": "First", "user_id": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodPost, "/posts/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestPostHandlerGet_EmbedsAuthor(t *testing.T) {
	svc := &mocks.MockPostService{
		GetFn: func(ctx context.Context, id int64) (*domain.PostWithAuthor, error) {
			post, err := domain.NewPost("First", "hello", true, 1)
			require.NoError(t, err)
			post.ID = id

			author, err := domain.NewUser("Alice", "alice@example.com", true)
			require.NoError(t, err)
			author.ID = 1

			return &domain.PostWithAuthor{Post: *post, Author: *author}, nil
		},
	}

	rr := doRequest(t, newPostRouter(svc), http.MethodGet, "/posts/5", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.PostWithAuthorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "Alice", resp.Author.Name)
	assert.Equal(t, "alice@example.com", resp.Author.Email)
}

func TestPostHandlerGet_NotFound(t *testing.T) {
	svc := &mocks.MockPostService{
		GetFn: func(ctx context.Context, id int64) (*domain.PostWithAuthor, error) {
			return nil, store.ErrPostNotFound
		},
	}

	rr := doRequest(t, newPostRouter(svc), http.MethodGet, "/posts/7", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, decodeErrorBody(t, rr), "7")
}

func TestPostHandlerList_DefaultLimit(t *testing.T) {
	var gotLimit int
	svc := &mocks.MockPostService{
		ListFn: func(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
			gotLimit = limit
			return nil, nil
		},
	}

	rr := doRequest(t, newPostRouter(svc), http.MethodGet, "/posts/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 20, gotLimit)
}

func TestPostHandlerFilter(t *testing.T) {
	var gotFilter store.PostFilter
	svc := &mocks.MockPostService{
		FilterFn: func(ctx context.Context, filter store.PostFilter) ([]*domain.Post, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	router := newPostRouter(svc)

	rr := doRequest(t, router, http.MethodGet,
		"/posts/filtered?published=true&user_id=3&title=go&sort_by=title&order=asc&skip=5&limit=10", "")
	require.Equal(t, http.StatusOK, rr.Code)

	require.NotNil(t, gotFilter.Published)
	assert.True(t, *gotFilter.Published)
	require.NotNil(t, gotFilter.UserID)
	assert.Equal(t, int64(3), *gotFilter.UserID)
	require.NotNil(t, gotFilter.TitleContains)
	assert.Equal(t, "go", *gotFilter.TitleContains)
	assert.Equal(t, store.PostSortTitle, gotFilter.SortBy)
	assert.Equal(t, store.SortAsc, gotFilter.Order)
	assert.Equal(t, 5, gotFilter.Skip)
	assert.Equal(t, 10, gotFilter.Limit)
}

func TestPostHandlerFilter_Defaults(t *testing.T) {
	var gotFilter store.PostFilter
	svc := &mocks.MockPostService{
		FilterFn: func(ctx context.Context, filter store.PostFilter) ([]*domain.Post, error) {
			gotFilter = filter
			return nil, nil
		},
	}

	rr := doRequest(t, newPostRouter(svc), http.MethodGet, "/posts/filtered", "")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Nil(t, gotFilter.Published)
	assert.Nil(t, gotFilter.UserID)
	assert.Nil(t, gotFilter.TitleContains)
	assert.Equal(t, store.PostSortCreatedAt, gotFilter.SortBy)
	assert.Equal(t, store.SortDesc, gotFilter.Order)
	assert.Equal(t, 0, gotFilter.Skip)
	assert.Equal(t, 20, gotFilter.Limit)

	// An empty result is a JSON array, not null
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestPostHandlerFilter_InvalidParams(t *testing.T) {
	svc := &mocks.MockPostService{
		FilterFn: func(ctx context.Context, filter store.PostFilter) ([]*domain.Post, error) {
			t.Fatal("service should not be called for invalid query parameters")
			return nil, nil
		},
	}
	router := newPostRouter(svc)

	for _, path := range []string{
		"/posts/filtered?sort_by=price",
		"/posts/filtered?order=sideways",
		"/posts/filtered?published=maybe",
		"/posts/filtered?user_id=abc",
		"/posts/filtered?limit=500",
	} {
		rr := doRequest(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, "path %s", path)
	}
}

func TestPostHandlerUpdate(t *testing.T) {
	svc := &mocks.MockPostService{
		UpdateFn: func(ctx context.Context, id int64, update domain.PostUpdate) (*domain.Post, error) {
			require.NotNil(t, update.Published)
			assert.True(t, *update.Published)
			assert.Nil(t, update.Title)
			assert.Nil(t, update.Content)

			post, err := domain.NewPost("First", "hello", *update.Published, 1)
			require.NoError(t, err)
			post.ID = id
			return post, nil
		},
	}

	rr := doRequest(t, newPostRouter(svc), http.MethodPatch, "/posts/1",
		`{"published": true}`)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.PostResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Published)
}

func TestPostHandlerUpdate_NotFound(t *testing.T) {
	svc := &mocks.MockPostService{
		UpdateFn: func(ctx context.Context, id int64, update domain.PostUpdate) (*domain.Post, error) {
			return nil, store.ErrPostNotFound
		},
	}

	rr := doRequest(t, newPostRouter(svc), http.MethodPatch, "/posts/404",
		`{"title": "gone"}`)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, decodeErrorBody(t, rr), "404")
}

func TestPostHandlerDelete(t *testing.T) {
	svc := &mocks.MockPostService{
		DeleteFn: func(ctx context.Context, id int64) error {
			if id != 1 {
				return store.ErrPostNotFound
			}
			return nil
		},
	}
	router := newPostRouter(svc)

	rr := doRequest(t, router, http.MethodDelete, "/posts/1", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doRequest(t, router, http.MethodDelete, "/posts/2", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPostHandlerInternalErrorIsGeneric(t *testing.T) {
	svc := &mocks.MockPostService{
		GetFn: func(ctx context.Context, id int64) (*domain.PostWithAuthor, error) {
			return nil, &service.ServiceError{Operation: "get_post", Err: assert.AnError}
		},
	}

	rr := doRequest(t, newPostRouter(svc), http.MethodGet, "/posts/1", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, decodeErrorBody(t, rr), "assert.AnError")
}

func TestPostHandlerUpdate_ValidationMessageFromService(t *testing.T) {
	svc := &mocks.MockPostService{
		UpdateFn: func(ctx context.Context, id int64, update domain.PostUpdate) (*domain.Post, error) {
			return nil, domain.ErrPostTitleTooLong
		},
	}

	rr := doRequest(t, newPostRouter(svc), http.MethodPatch, "/posts/1",
		`{"title": "fine at the boundary"}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeErrorBody(t, rr)
	assert.Contains(t, body, "at most 200 characters")
	assert.NotContains(t, body, "not found")
}

func TestPostHandlerCreate_ValidationMessageFromService(t *testing.T) {
	svc := &mocks.MockPostService{
		CreateFn: func(ctx context.Context, title, content string, published bool, userID int64) (*domain.Post, error) {
			return nil, domain.ErrPostTitleEmpty
		},
	}

	rr := doRequest(t, newPostRouter(svc), http.MethodPost, "/posts/",
		`{"title": "x", "user_id": 1}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeErrorBody(t, rr)
	assert.Contains(t, body, "title cannot be empty")
	assert.NotContains(t, body, "not found")
}
