package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/platform/logger"
	"github.com/nfjones/blogmart-api/internal/store"
)

// PostgresPostStore implements the store.PostStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the
// PostStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresPostStore(db store.DBTX, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// WithTx implements store.PostStore.WithTx
func (s *PostgresPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostgresPostStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.PostStore.Create
// The author's existence is pre-checked by the service layer; the foreign
// key constraint is the backstop and maps to store.ErrInvalidEntity.
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO posts (title, content, published, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	echoQuery(ctx, log, query)

	err := s.db.QueryRowContext(
		ctx,
		query,
		post.Title,
		post.Content,
		post.Published,
		post.UserID,
		post.CreatedAt,
	).Scan(&post.ID)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during post creation",
				slog.Int64("user_id", post.UserID))
			return fmt.Errorf("%w: user with id %d not found",
				store.ErrInvalidEntity, post.UserID)
		}
		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.Int64("user_id", post.UserID))
		return MapError(err)
	}

	log.Info("post created",
		slog.Int64("post_id", post.ID),
		slog.Int64("user_id", post.UserID))
	return nil
}

// GetByID implements store.PostStore.GetByID
// The post row is joined with its author in a single statement.
func (s *PostgresPostStore) GetByID(ctx context.Context, id int64) (*domain.PostWithAuthor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT p.id, p.title, p.content, p.published, p.user_id, p.created_at,
		       u.id, u.name, u.email, u.is_active, u.created_at, u.updated_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`
	echoQuery(ctx, log, query)

	var post domain.PostWithAuthor
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Published,
		&post.UserID,
		&post.CreatedAt,
		&post.Author.ID,
		&post.Author.Name,
		&post.Author.Email,
		&post.Author.IsActive,
		&post.Author.CreatedAt,
		&post.Author.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found", slog.Int64("post_id", id))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return nil, MapError(err)
	}

	return &post, nil
}

// List implements store.PostStore.List
func (s *PostgresPostStore) List(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	query := `
		SELECT id, title, content, published, user_id, created_at
		FROM posts
		ORDER BY id
		OFFSET $1 LIMIT $2
	`
	return s.queryPosts(ctx, query, skip, limit)
}

// ListByUser implements store.PostStore.ListByUser
func (s *PostgresPostStore) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]*domain.Post, error) {
	query := `
		SELECT id, title, content, published, user_id, created_at
		FROM posts
		WHERE user_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3
	`
	return s.queryPosts(ctx, query, userID, skip, limit)
}

// Filter implements store.PostStore.Filter
// Supplied filters apply conjunctively; absent filters impose no constraint.
// Sort column and direction come from a fixed whitelist, never from client
// input directly.
func (s *PostgresPostStore) Filter(ctx context.Context, filter store.PostFilter) ([]*domain.Post, error) {
	query := `
		SELECT id, title, content, published, user_id, created_at
		FROM posts
		WHERE 1=1
	`
	args := make([]any, 0, 5)

	if filter.Published != nil {
		args = append(args, *filter.Published)
		query += fmt.Sprintf(" AND published = $%d", len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.TitleContains != nil {
		args = append(args, "%"+*filter.TitleContains+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = store.PostSortCreatedAt
	}
	order := filter.Order
	if order == "" {
		order = store.SortDesc
	}
	if !sortBy.Valid() {
		return nil, fmt.Errorf("%w: invalid sort field %q", store.ErrInvalidEntity, sortBy)
	}
	if !order.Valid() {
		return nil, fmt.Errorf("%w: invalid sort order %q", store.ErrInvalidEntity, order)
	}

	column := map[store.PostSortField]string{
		store.PostSortCreatedAt: "created_at",
		store.PostSortTitle:     "title",
		store.PostSortID:        "id",
	}[sortBy]
	direction := "DESC"
	if order == store.SortAsc {
		direction = "ASC"
	}
	// Secondary id sort keeps pagination deterministic on ties.
	query += fmt.Sprintf(" ORDER BY %s %s, id %s", column, direction, direction)

	args = append(args, filter.Skip)
	query += fmt.Sprintf(" OFFSET $%d", len(args))
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	return s.queryPosts(ctx, query, args...)
}

// Update implements store.PostStore.Update
// Only title, content, and published may change; the author and creation
// timestamp are immutable.
func (s *PostgresPostStore) Update(ctx context.Context, id int64, update domain.PostUpdate) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := update.Validate(); err != nil {
		log.Warn("post update validation failed",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return nil, err
	}

	withAuthor, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	post := withAuthor.Post

	update.Apply(&post)

	query := `
		UPDATE posts
		SET title = $1, content = $2, published = $3
		WHERE id = $4
	`
	echoQuery(ctx, log, query)

	result, err := s.db.ExecContext(ctx, query, post.Title, post.Content, post.Published, post.ID)
	if err != nil {
		log.Error("failed to update post",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return nil, MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrPostNotFound); err != nil {
		return nil, err
	}

	log.Info("post updated", slog.Int64("post_id", post.ID))
	return &post, nil
}

// Delete implements store.PostStore.Delete
func (s *PostgresPostStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM posts WHERE id = $1`
	echoQuery(ctx, log, query)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete post",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrPostNotFound); err != nil {
		return err
	}

	log.Info("post deleted", slog.Int64("post_id", id))
	return nil
}

// DeleteByUser implements store.PostStore.DeleteByUser
// Zero affected rows is not an error here; a user may simply own no posts.
func (s *PostgresPostStore) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM posts WHERE user_id = $1`
	echoQuery(ctx, log, query)

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to delete posts by user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return 0, MapError(err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if deleted > 0 {
		log.Info("posts deleted with user",
			slog.Int64("user_id", userID),
			slog.Int64("post_count", deleted))
	}
	return deleted, nil
}

// queryPosts runs a statement returning post rows and scans them.
func (s *PostgresPostStore) queryPosts(ctx context.Context, query string, args ...any) ([]*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	echoQuery(ctx, log, query)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query posts", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var posts []*domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.Published,
			&post.UserID,
			&post.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return posts, nil
}
