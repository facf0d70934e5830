package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/store"
)

// UserService provides user-related operations.
type UserService interface {
	// Create inserts a new user. Returns store.ErrEmailExists if the email
	// is already taken, or a validation error if fields are out of bounds.
	Create(ctx context.Context, name, email string, isActive bool) (*domain.User, error)

	// Get retrieves a user by ID. Returns store.ErrUserNotFound if absent.
	Get(ctx context.Context, id int64) (*domain.User, error)

	// List returns a page of users ordered by ID.
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)

	// Update applies a partial update. Returns store.ErrUserNotFound if the
	// user is absent, store.ErrEmailExists if the new email belongs to
	// another user.
	Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)

	// Delete removes the user and all of their posts in one transaction.
	// Returns store.ErrUserNotFound if absent.
	Delete(ctx context.Context, id int64) error

	// PostCounts returns the posts-per-user aggregate, ordered by post
	// count descending, including users with zero posts.
	PostCounts(ctx context.Context) ([]domain.UserPostCount, error)

	// ListPosts returns a page of the given user's posts.
	// Returns store.ErrUserNotFound if the user is absent.
	ListPosts(ctx context.Context, userID int64, skip, limit int) ([]*domain.Post, error)
}

type userService struct {
	db     *sql.DB
	users  store.UserStore
	posts  store.PostStore
	logger *slog.Logger
}

// NewUserService creates a UserService backed by the given stores.
// The *sql.DB is used to open transactions for multi-statement operations.
func NewUserService(db *sql.DB, users store.UserStore, posts store.PostStore, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		db:     db,
		users:  users,
		posts:  posts,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

func (s *userService) Create(ctx context.Context, name, email string, isActive bool) (*domain.User, error) {
	user, err := domain.NewUser(name, email, isActive)
	if err != nil {
		return nil, err
	}

	// Uniqueness check and insert run on one connection.
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		return nil, wrapError("create_user", "failed to create user", err)
	}

	return user, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, wrapError("get_user", "failed to get user", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	users, err := s.users.List(ctx, skip, limit)
	if err != nil {
		return nil, wrapError("list_users", "failed to list users", err)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	var user *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		user, err = s.users.WithTx(tx).Update(ctx, id, update)
		return err
	})
	if err != nil {
		return nil, wrapError("update_user", "failed to update user", err)
	}
	return user, nil
}

// Delete removes the user's posts and then the user inside one transaction,
// so a failed user delete never leaves the posts gone.
func (s *userService) Delete(ctx context.Context, id int64) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		deleted, err := s.posts.WithTx(tx).DeleteByUser(ctx, id)
		if err != nil {
			return err
		}
		if deleted > 0 {
			s.logger.Info("cascading post delete",
				slog.Int64("user_id", id),
				slog.Int64("post_count", deleted))
		}
		return s.users.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return wrapError("delete_user", "failed to delete user", err)
	}
	return nil
}

func (s *userService) PostCounts(ctx context.Context) ([]domain.UserPostCount, error) {
	counts, err := s.users.PostCounts(ctx)
	if err != nil {
		return nil, wrapError("user_post_counts", "failed to compute post counts", err)
	}
	return counts, nil
}

func (s *userService) ListPosts(ctx context.Context, userID int64, skip, limit int) ([]*domain.Post, error) {
	// Existence check first so a missing user yields NotFound rather than
	// an empty page.
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, wrapError("list_user_posts", "failed to get user", err)
	}

	posts, err := s.posts.ListByUser(ctx, userID, skip, limit)
	if err != nil {
		return nil, wrapError("list_user_posts", "failed to list posts", err)
	}
	return posts, nil
}
