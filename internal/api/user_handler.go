package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nfjones/blogmart-api/internal/api/shared"
	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/service"
)

// defaultUserPageLimit is the page size applied when the client does not
// send a limit parameter.
const defaultUserPageLimit = 100

// CreateUserRequest represents the request body for creating a new user.
type CreateUserRequest struct {
	Name     string `json:"name"      validate:"required,max=100"`
	Email    string `json:"email"     validate:"required,email,max=255"`
	IsActive *bool  `json:"is_active" validate:"omitempty"`
}

// UpdateUserRequest represents the request body for a partial user update.
// Absent fields leave the stored values untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name"      validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email"     validate:"omitempty,email,max=255"`
	IsActive *bool   `json:"is_active" validate:"omitempty"`
}

// UserResponse represents the response data for a user.
type UserResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// UserPostCountResponse is one entry of the user statistics listing.
type UserPostCountResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	PostCount int64  `json:"post_count"`
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

// Create handles POST /users/ requests.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// is_active defaults to true when absent.
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user, err := h.userService.Create(r.Context(), req.Name, req.Email, isActive)
	if err != nil {
		message := err.Error()
		if MapErrorToStatusCode(err) == http.StatusConflict {
			message = fmt.Sprintf("User with email '%s' already exists", req.Email)
		}
		HandleAPIError(w, r, err, message)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// List handles GET /users/ requests.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageParams(r, defaultUserPageLimit)
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	users, err := h.userService.List(r.Context(), page.Skip, page.Limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, userToResponse(user))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /users/{id} requests.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, fmt.Sprintf("User with id %d not found", id))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Update handles PATCH /users/{id} requests.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	update := domain.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		IsActive: req.IsActive,
	}

	user, err := h.userService.Update(r.Context(), id, update)
	if err != nil {
		HandleAPIError(w, r, err, userUpdateMessage(err, id, req.Email))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Delete handles DELETE /users/{id} requests. The user's posts are removed
// with the user.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, fmt.Sprintf("User with id %d not found", id))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /users/stats requests.
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.userService.PostCounts(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	responses := make([]UserPostCountResponse, 0, len(counts))
	for _, c := range counts {
		responses = append(responses, UserPostCountResponse{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			PostCount: c.PostCount,
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// ListPosts handles GET /users/{id}/posts requests.
func (h *UserHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	page, err := parsePageParams(r, defaultUserPageLimit)
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	posts, err := h.userService.ListPosts(r.Context(), id, page.Skip, page.Limit)
	if err != nil {
		HandleAPIError(w, r, err, fmt.Sprintf("User with id %d not found", id))
		return
	}

	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, postToResponse(post))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// userToResponse converts a domain.User to a UserResponse.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// userUpdateMessage picks the client message for a failed update from the
// mapped status: a conflict names the email, a missing user names the id,
// and a validation failure surfaces its own description.
func userUpdateMessage(err error, id int64, email *string) string {
	switch MapErrorToStatusCode(err) {
	case http.StatusConflict:
		if email != nil {
			return fmt.Sprintf("User with email '%s' already exists", *email)
		}
		return fmt.Sprintf("User with id %d not found", id)
	case http.StatusNotFound:
		return fmt.Sprintf("User with id %d not found", id)
	default:
		return err.Error()
	}
}
