package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/store"
)

// PostService provides post-related operations.
type PostService interface {
	// Create inserts a new post after checking that the author exists.
	// Returns store.ErrUserNotFound if the author is absent.
	Create(ctx context.Context, title, content string, published bool, userID int64) (*domain.Post, error)

	// Get retrieves a post with its author's full record.
	// Returns store.ErrPostNotFound if absent.
	Get(ctx context.Context, id int64) (*domain.PostWithAuthor, error)

	// List returns a page of posts ordered by ID.
	List(ctx context.Context, skip, limit int) ([]*domain.Post, error)

	// Filter returns posts matching the filter, sorted and paginated.
	Filter(ctx context.Context, filter store.PostFilter) ([]*domain.Post, error)

	// Update applies a partial update (title/content/published only).
	// Returns store.ErrPostNotFound if absent.
	Update(ctx context.Context, id int64, update domain.PostUpdate) (*domain.Post, error)

	// Delete removes a post. Returns store.ErrPostNotFound if absent.
	Delete(ctx context.Context, id int64) error
}

type postService struct {
	db     *sql.DB
	users  store.UserStore
	posts  store.PostStore
	logger *slog.Logger
}

// NewPostService creates a PostService backed by the given stores.
func NewPostService(db *sql.DB, users store.UserStore, posts store.PostStore, logger *slog.Logger) PostService {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		db:     db,
		users:  users,
		posts:  posts,
		logger: logger.With(slog.String("component", "post_service")),
	}
}

// Create checks the author explicitly before inserting, inside one
// transaction so the author cannot disappear between check and insert.
func (s *postService) Create(ctx context.Context, title, content string, published bool, userID int64) (*domain.Post, error) {
	post, err := domain.NewPost(title, content, published, userID)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.users.WithTx(tx).GetByID(ctx, userID); err != nil {
			return err
		}
		return s.posts.WithTx(tx).Create(ctx, post)
	})
	if err != nil {
		// The foreign key backstop reports the same condition as the
		// explicit check.
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, store.ErrUserNotFound
		}
		return nil, wrapError("create_post", "failed to create post", err)
	}

	return post, nil
}

func (s *postService) Get(ctx context.Context, id int64) (*domain.PostWithAuthor, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, wrapError("get_post", "failed to get post", err)
	}
	return post, nil
}

func (s *postService) List(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	posts, err := s.posts.List(ctx, skip, limit)
	if err != nil {
		return nil, wrapError("list_posts", "failed to list posts", err)
	}
	return posts, nil
}

func (s *postService) Filter(ctx context.Context, filter store.PostFilter) ([]*domain.Post, error) {
	posts, err := s.posts.Filter(ctx, filter)
	if err != nil {
		return nil, wrapError("filter_posts", "failed to filter posts", err)
	}
	return posts, nil
}

func (s *postService) Update(ctx context.Context, id int64, update domain.PostUpdate) (*domain.Post, error) {
	var post *domain.Post
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		post, err = s.posts.WithTx(tx).Update(ctx, id, update)
		return err
	})
	if err != nil {
		return nil, wrapError("update_post", "failed to update post", err)
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id int64) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return wrapError("delete_post", "failed to delete post", err)
	}
	return nil
}
