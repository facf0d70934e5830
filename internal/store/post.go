package store

import (
	"context"
	"database/sql"

	"github.com/nfjones/blogmart-api/internal/domain"
)

// PostSortField enumerates the columns a post listing may be sorted by.
type PostSortField string

// Valid post sort fields.
const (
	PostSortCreatedAt PostSortField = "created_at"
	PostSortTitle     PostSortField = "title"
	PostSortID        PostSortField = "id"
)

// Valid reports whether the sort field is one of the allowed columns.
func (f PostSortField) Valid() bool {
	switch f {
	case PostSortCreatedAt, PostSortTitle, PostSortID:
		return true
	}
	return false
}

// SortOrder enumerates sort directions.
type SortOrder string

// Valid sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Valid reports whether the order is one of the allowed directions.
func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

// PostFilter describes a filtered, sorted, paginated post listing.
// Nil filter fields mean "no constraint on that field", not "match the
// default value". Filters combine conjunctively.
type PostFilter struct {
	Published     *bool
	UserID        *int64
	TitleContains *string // case-insensitive substring match

	SortBy PostSortField // defaults to PostSortCreatedAt when empty
	Order  SortOrder     // defaults to SortDesc when empty

	Skip  int
	Limit int
}

// PostStore defines the interface for post data persistence.
type PostStore interface {
	// Create saves a new post and assigns its generated ID.
	// The author must exist; the caller pre-checks it and the foreign key
	// enforces it (ErrInvalidEntity on violation).
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post joined with its author's full record.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id int64) (*domain.PostWithAuthor, error)

	// List returns a page of posts ordered by primary key.
	List(ctx context.Context, skip, limit int) ([]*domain.Post, error)

	// ListByUser returns a page of the given user's posts ordered by
	// primary key. Existence of the user is checked by the caller.
	ListByUser(ctx context.Context, userID int64, skip, limit int) ([]*domain.Post, error)

	// Filter returns posts matching the filter, sorted and paginated.
	Filter(ctx context.Context, filter PostFilter) ([]*domain.Post, error)

	// Update applies a partial update (title/content/published only) and
	// returns the updated record. The author is never reassigned.
	// Returns ErrPostNotFound if the post does not exist.
	Update(ctx context.Context, id int64, update domain.PostUpdate) (*domain.Post, error)

	// Delete permanently removes a post.
	// Returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id int64) error

	// DeleteByUser permanently removes all posts owned by the given user
	// and returns the number of posts removed. Used by the cascading user
	// delete.
	DeleteByUser(ctx context.Context, userID int64) (int64, error)

	// WithTx returns a new PostStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) PostStore
}
