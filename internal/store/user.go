package store

import (
	"context"
	"database/sql"

	"github.com/nfjones/blogmart-api/internal/domain"
)

// Pagination bounds shared by all list operations.
const (
	MinLimit = 1
	MaxLimit = 100
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and assigns its generated ID.
	// Returns ErrEmailExists if the email is already taken (case-sensitive
	// exact match, pre-checked and backed by the schema's unique constraint).
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// List returns a page of users ordered by primary key.
	// skip must be >= 0; limit must be within [MinLimit, MaxLimit].
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)

	// Update applies a partial update to an existing user and returns the
	// updated record. Only fields set in the update are changed; updated_at
	// is stamped on every successful update.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if the new email belongs to another user
	// (the target user itself is excluded from the check).
	Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)

	// Delete permanently removes a user. The caller is responsible for
	// handling the user's posts; see service.UserService.Delete.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// PostCounts returns one entry per user with the number of posts they
	// own (zero included), ordered by post count descending. Computed as a
	// single left-join-and-group-by statement, never per-user lookups.
	PostCounts(ctx context.Context) ([]domain.UserPostCount, error)

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
