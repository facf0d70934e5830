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

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.UserStore.Create
// The email uniqueness pre-check gives a precise error message on the fast
// path; the schema's unique index closes the check-then-insert race, and a
// unique violation from the insert maps to the same sentinel.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	checkQuery := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	echoQuery(ctx, log, checkQuery)

	var exists bool
	err := s.db.QueryRowContext(ctx, checkQuery, user.Email).Scan(&exists)
	if err != nil {
		log.Error("failed to check email uniqueness",
			slog.String("error", err.Error()))
		return MapError(err)
	}
	if exists {
		log.Debug("email already taken", slog.String("email", user.Email))
		return store.ErrEmailExists
	}

	query := `
		INSERT INTO users (name, email, is_active, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	echoQuery(ctx, log, query)

	err = s.db.QueryRowContext(
		ctx,
		query,
		user.Name,
		user.Email,
		user.IsActive,
		user.CreatedAt,
	).Scan(&user.ID)

	if err != nil {
		if IsUniqueViolation(err) {
			// Lost the race between check and insert.
			return store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("email", user.Email))
		return MapError(err)
	}

	log.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, email, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	echoQuery(ctx, log, query)

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, MapError(err)
	}

	return &user, nil
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, email, is_active, created_at, updated_at
		FROM users
		ORDER BY id
		OFFSET $1 LIMIT $2
	`
	echoQuery(ctx, log, query)

	rows, err := s.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0, limit)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.IsActive,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return users, nil
}

// Update implements store.UserStore.Update
// Only the fields set in the update are changed; updated_at is stamped on
// every successful update. The target user is excluded from the email
// uniqueness check.
func (s *PostgresUserStore) Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := update.Validate(); err != nil {
		log.Warn("user update validation failed",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, err
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Email != nil && *update.Email != user.Email {
		checkQuery := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
		echoQuery(ctx, log, checkQuery)

		var exists bool
		err := s.db.QueryRowContext(ctx, checkQuery, *update.Email, id).Scan(&exists)
		if err != nil {
			return nil, MapError(err)
		}
		if exists {
			log.Debug("email already taken by another user",
				slog.String("email", *update.Email),
				slog.Int64("user_id", id))
			return nil, store.ErrEmailExists
		}
	}

	update.Apply(user)

	query := `
		UPDATE users
		SET name = $1, email = $2, is_active = $3, updated_at = $4
		WHERE id = $5
	`
	echoQuery(ctx, log, query)

	result, err := s.db.ExecContext(
		ctx,
		query,
		user.Name,
		user.Email,
		user.IsActive,
		user.UpdatedAt,
		user.ID,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			return nil, store.ErrEmailExists
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return nil, err
	}

	log.Info("user updated", slog.Int64("user_id", user.ID))
	return user, nil
}

// Delete implements store.UserStore.Delete
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM users WHERE id = $1`
	echoQuery(ctx, log, query)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Info("user deleted", slog.Int64("user_id", id))
	return nil
}

// PostCounts implements store.UserStore.PostCounts
// A single left-join-and-group-by statement: every user appears exactly
// once, users without posts count zero, ordered by post count descending.
func (s *PostgresUserStore) PostCounts(ctx context.Context) ([]domain.UserPostCount, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT u.id, u.name, u.email, COUNT(p.id) AS post_count
		FROM users u
		LEFT JOIN posts p ON p.user_id = u.id
		GROUP BY u.id, u.name, u.email
		ORDER BY post_count DESC, u.id
	`
	echoQuery(ctx, log, query)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query post counts", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var counts []domain.UserPostCount
	for rows.Next() {
		var c domain.UserPostCount
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.PostCount); err != nil {
			return nil, fmt.Errorf("failed to scan post count row: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return counts, nil
}
