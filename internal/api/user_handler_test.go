package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/nfjones/blogmart-api/internal/api"
	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/mocks"
	"github.com/nfjones/blogmart-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newUserRouter wires the handler into a chi router so path parameters
// resolve the same way they do in production.
func newUserRouter(svc *mocks.MockUserService) http.Handler {
	h := api.NewUserHandler(svc)
	r := chi.NewRouter()
	r.Post("/users/", h.Create)
	r.Get("/users/", h.List)
	r.Get("/users/stats", h.Stats)
	r.Get("/users/{id}", h.Get)
	r.Patch("/users/{id}", h.Update)
	r.Delete("/users/{id}", h.Delete)
	r.Get("/users/{id}/posts", h.ListPosts)
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeErrorBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Error
}

func TestUserHandlerCreate_Success(t *testing.T) {
	svc := &mocks.MockUserService{
		CreateFn: func(ctx context.Context, name, email string, isActive bool) (*domain.User, error) {
			assert.True(t, isActive, "is_active should default to true when absent")
			user, err := domain.NewUser(name, email, isActive)
			require.NoError(t, err)
			user.ID = 1
			return user, nil
		},
	}

	rr := doRequest(t, newUserRouter(svc), http.MethodPost, "/users/",
		`{"name": "Alice", "email": "alice@example.com"}`)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp api.UserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Alice", resp.Name)
	assert.True(t, resp.IsActive)
	assert.Nil(t, resp.UpdatedAt)
}

func TestUserHandlerCreate_Conflict(t *testing.T) {
	svc := &mocks.MockUserService{
		CreateFn: func(ctx context.Context, name, email string, isActive bool) (*domain.User, error) {
			return nil, store.ErrEmailExists
		},
	}

	rr := doRequest(t, newUserRouter(svc), http.MethodPost, "/users/",
		`{"name": "Alice", "email": "alice@example.com"}`)

	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, decodeErrorBody(t, rr), "alice@example.com")
}

func TestUserHandlerCreate_ValidationErrors(t *testing.T) {
	svc := &mocks.MockUserService{
		CreateFn: func(ctx context.Context, name, email string, isActive bool) (*domain.User, error) {
			t.Fatal("service should not be called for invalid payloads")
			return nil, nil
		},
	}
	router := newUserRouter(svc)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email": "alice@example.com"}`},
		{"missing email", `{"name": "Alice"}`},
		{"malformed email", `{"name": "Alice", "email": "not-an-email"}`},
		{"overlong name", `{"name": "` + strings.Repeat("a", 101) + `", "email": "alice@example.com"}`},
		{"unknown field", `{"name": "Alice", "email": "alice@example.com", "admin": true}`},
		{"malformed json", `{"name": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodPost, "/users/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestUserHandlerGet(t *testing.T) {
	svc := &mocks.MockUserService{
		GetFn: func(ctx context.Context, id int64) (*domain.User, error) {
			if id != 42 {
				return nil, store.ErrUserNotFound
			}
			user, err := domain.NewUser("Alice", "alice@example.com", true)
			require.NoError(t, err)
			user.ID = id
			return user, nil
		},
	}
	router := newUserRouter(svc)

	rr := doRequest(t, router, http.MethodGet, "/users/42", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.UserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)

	// Missing user names the id in the message
	rr = doRequest(t, router, http.MethodGet, "/users/7", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, decodeErrorBody(t, rr), "7")

	// Non-numeric and non-positive ids are rejected before the service runs
	rr = doRequest(t, router, http.MethodGet, "/users/abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/users/0", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUserHandlerList_Pagination(t *testing.T) {
	var gotSkip, gotLimit int
	svc := &mocks.MockUserService{
		ListFn: func(ctx context.Context, skip, limit int) ([]*domain.User, error) {
			gotSkip, gotLimit = skip, limit
			return []*domain.User{}, nil
		},
	}
	router := newUserRouter(svc)

	// Defaults apply when parameters are absent
	rr := doRequest(t, router, http.MethodGet, "/users/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, gotSkip)
	assert.Equal(t, 100, gotLimit)

	// Explicit parameters pass through
	rr = doRequest(t, router, http.MethodGet, "/users/?skip=10&limit=5", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 10, gotSkip)
	assert.Equal(t, 5, gotLimit)

	// An empty page is a JSON array, not null
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))

	// Out-of-bounds parameters are rejected
	for _, path := range []string{
		"/users/?skip=-1",
		"/users/?limit=0",
		"/users/?limit=101",
		"/users/?limit=abc",
	} {
		rr = doRequest(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, "path %s", path)
	}
}

func TestUserHandlerUpdate(t *testing.T) {
	svc := &mocks.MockUserService{
		UpdateFn: func(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
			require.NotNil(t, update.Name)
			assert.Nil(t, update.Email, "absent fields must stay nil")
			assert.Nil(t, update.IsActive)

			user, err := domain.NewUser(*update.Name, "alice@example.com", true)
			require.NoError(t, err)
			user.ID = id
			return user, nil
		},
	}

	rr := doRequest(t, newUserRouter(svc), http.MethodPatch, "/users/1",
		`{"name": "Alicia"}`)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.UserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Alicia", resp.Name)
}

func TestUserHandlerUpdate_EmailConflict(t *testing.T) {
	svc := &mocks.MockUserService{
		UpdateFn: func(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
			return nil, store.ErrEmailExists
		},
	}

	rr := doRequest(t, newUserRouter(svc), http.MethodPatch, "/users/1",
		`{"email": "taken@example.com"}`)

	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, decodeErrorBody(t, rr), "taken@example.com")
}

func TestUserHandlerUpdate_NotFound(t *testing.T) {
	svc := &mocks.MockUserService{
		UpdateFn: func(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
			return nil, store.ErrUserNotFound
		},
	}

	rr := doRequest(t, newUserRouter(svc), http.MethodPatch, "/users/99",
		`{"name": "Nobody"}`)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, decodeErrorBody(t, rr), "99")
}

func TestUserHandlerDelete(t *testing.T) {
	deleted := false
	svc := &mocks.MockUserService{
		DeleteFn: func(ctx context.Context, id int64) error {
			if id != 1 {
				return store.ErrUserNotFound
			}
			deleted = true
			return nil
		},
	}
	router := newUserRouter(svc)

	rr := doRequest(t, router, http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.True(t, deleted)

	rr = doRequest(t, router, http.MethodDelete, "/users/2", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUserHandlerStats(t *testing.T) {
	svc := &mocks.MockUserService{
		PostCountsFn: func(ctx context.Context) ([]domain.UserPostCount, error) {
			return []domain.UserPostCount{
				{ID: 1, Name: "Alice", Email: "alice@example.com", PostCount: 3},
				{ID: 2, Name: "Bob", Email: "bob@example.com", PostCount: 0},
			}, nil
		},
	}

	rr := doRequest(t, newUserRouter(svc), http.MethodGet, "/users/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp []api.UserPostCountResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, int64(3), resp[0].PostCount)
	assert.Equal(t, int64(0), resp[1].PostCount)
}

func TestUserHandlerListPosts(t *testing.T) {
	svc := &mocks.MockUserService{
		ListPostsFn: func(ctx context.Context, userID int64, skip, limit int) ([]*domain.Post, error) {
			if userID != 1 {
				return nil, store.ErrUserNotFound
			}
			post, err := domain.NewPost("Hello", "", true, userID)
			require.NoError(t, err)
			post.ID = 10
			return []*domain.Post{post}, nil
		},
	}
	router := newUserRouter(svc)

	rr := doRequest(t, router, http.MethodGet, "/users/1/posts", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp []api.PostResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Hello", resp[0].Title)

	rr = doRequest(t, router, http.MethodGet, "/users/99/posts", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUserHandlerCreate_ValidationMessageFromService(t *testing.T) {
	svc := &mocks.MockUserService{
		CreateFn: func(ctx context.Context, name, email string, isActive bool) (*domain.User, error) {
			return nil, domain.ErrInvalidEmail
		},
	}

	rr := doRequest(t, newUserRouter(svc), http.MethodPost, "/users/",
		`{"name": "Alice", "email": "alice@example.com"}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeErrorBody(t, rr)
	assert.Contains(t, body, "invalid email format")
	assert.NotContains(t, body, "already exists")
}

func TestUserHandlerUpdate_ValidationMessageFromService(t *testing.T) {
	svc := &mocks.MockUserService{
		UpdateFn: func(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
			return nil, domain.ErrUserNameTooLong
		},
	}

	rr := doRequest(t, newUserRouter(svc), http.MethodPatch, "/users/1",
		`{"name": "fine at the boundary"}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeErrorBody(t, rr)
	assert.Contains(t, body, "at most 100 characters")
	assert.NotContains(t, body, "not found")
	assert.NotContains(t, body, "already exists")
}
