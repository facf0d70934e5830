package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nfjones/blogmart-api/internal/api/shared"
	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/service"
	"github.com/nfjones/blogmart-api/internal/store"
)

// defaultPostPageLimit is the page size applied when the client does not
// send a limit parameter.
const defaultPostPageLimit = 20

// CreatePostRequest represents the request body for creating a new post.
type CreatePostRequest struct {
	Title     string `json:"title"     validate:"required,max=200"`
	Content   string `json:"content"`
	Published *bool  `json:"published" validate:"omitempty"`
	UserID    int64  `json:"user_id"   validate:"required,gt=0"`
}

// UpdatePostRequest represents the request body for a partial post update.
// The author cannot be reassigned, so user_id is not accepted.
type UpdatePostRequest struct {
	Title     *string `json:"title"     validate:"omitempty,min=1,max=200"`
	Content   *string `json:"content"   validate:"omitempty"`
	Published *bool   `json:"published" validate:"omitempty"`
}

// PostResponse represents the response data for a post.
type PostResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PostWithAuthorResponse is a post with its author's record embedded.
type PostWithAuthorResponse struct {
	PostResponse
	Author UserResponse `json:"author"`
}

// PostHandler handles post-related HTTP requests.
type PostHandler struct {
	postService service.PostService
	validator   *validator.Validate
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
		validator:   validator.New(),
	}
}

// Create handles POST /posts/ requests.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// published defaults to false when absent.
	published := false
	if req.Published != nil {
		published = *req.Published
	}

	post, err := h.postService.Create(r.Context(), req.Title, req.Content, published, req.UserID)
	if err != nil {
		message := err.Error()
		if MapErrorToStatusCode(err) == http.StatusNotFound {
			message = fmt.Sprintf("User with id %d not found", req.UserID)
		}
		HandleAPIError(w, r, err, message)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, postToResponse(post))
}

// List handles GET /posts/ requests.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageParams(r, defaultPostPageLimit)
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	posts, err := h.postService.List(r.Context(), page.Skip, page.Limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postsToResponses(posts))
}

// Filter handles GET /posts/filtered requests. Supplied filters combine
// conjunctively; an absent filter imposes no constraint on that field.
func (h *PostHandler) Filter(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageParams(r, defaultPostPageLimit)
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	published, err := parseOptionalBool(r, "published")
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	userID, err := parseOptionalInt64(r, "user_id")
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	filter := store.PostFilter{
		Published: published,
		UserID:    userID,
		SortBy:    store.PostSortCreatedAt,
		Order:     store.SortDesc,
		Skip:      page.Skip,
		Limit:     page.Limit,
	}

	if title := r.URL.Query().Get("title"); title != "" {
		filter.TitleContains = &title
	}

	if raw := r.URL.Query().Get("sort_by"); raw != "" {
		sortBy := store.PostSortField(raw)
		if !sortBy.Valid() {
			HandleAPIError(w, r,
				domain.NewValidationError("sort_by", "must be one of created_at, title, id", domain.ErrValidation),
				"sort_by must be one of created_at, title, id")
			return
		}
		filter.SortBy = sortBy
	}

	if raw := r.URL.Query().Get("order"); raw != "" {
		order := store.SortOrder(raw)
		if !order.Valid() {
			HandleAPIError(w, r,
				domain.NewValidationError("order", "must be asc or desc", domain.ErrValidation),
				"order must be asc or desc")
			return
		}
		filter.Order = order
	}

	posts, err := h.postService.Filter(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postsToResponses(posts))
}

// Get handles GET /posts/{id} requests. The response embeds the author's
// full record.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, fmt.Sprintf("Post with id %d not found", id))
		return
	}

	response := PostWithAuthorResponse{
		PostResponse: postToResponse(&post.Post),
		Author:       userToResponse(&post.Author),
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Update handles PATCH /posts/{id} requests.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	var req UpdatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	update := domain.PostUpdate{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	}

	post, err := h.postService.Update(r.Context(), id, update)
	if err != nil {
		message := err.Error()
		if MapErrorToStatusCode(err) == http.StatusNotFound {
			message = fmt.Sprintf("Post with id %d not found", id)
		}
		HandleAPIError(w, r, err, message)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
}

// Delete handles DELETE /posts/{id} requests.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	if err := h.postService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, fmt.Sprintf("Post with id %d not found", id))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// postToResponse converts a domain.Post to a PostResponse.
func postToResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
		UserID:    post.UserID,
		CreatedAt: post.CreatedAt,
	}
}

func postsToResponses(posts []*domain.Post) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, postToResponse(post))
	}
	return responses
}
