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

// PostgresProductStore implements the store.ProductStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a new PostgreSQL implementation of the
// ProductStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// a default logger will be used.
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure PostgresProductStore implements store.ProductStore interface
var _ store.ProductStore = (*PostgresProductStore)(nil)

// WithTx implements store.ProductStore.WithTx
func (s *PostgresProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return &PostgresProductStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ProductStore.Create
// SKU uniqueness is pre-checked for a precise error; the schema's unique
// index closes the race and a unique violation maps to the same sentinel.
func (s *PostgresProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	checkQuery := `SELECT EXISTS (SELECT 1 FROM products WHERE sku = $1)`
	echoQuery(ctx, log, checkQuery)

	var exists bool
	err := s.db.QueryRowContext(ctx, checkQuery, product.SKU).Scan(&exists)
	if err != nil {
		log.Error("failed to check sku uniqueness",
			slog.String("error", err.Error()))
		return MapError(err)
	}
	if exists {
		log.Debug("sku already taken", slog.String("sku", product.SKU))
		return store.ErrSKUExists
	}

	query := `
		INSERT INTO products (name, description, price, in_stock, sku, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	echoQuery(ctx, log, query)

	err = s.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.InStock,
		product.SKU,
		product.CreatedAt,
	).Scan(&product.ID)

	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrSKUExists
		}
		log.Error("failed to create product",
			slog.String("error", err.Error()),
			slog.String("sku", product.SKU))
		return MapError(err)
	}

	log.Info("product created",
		slog.Int64("product_id", product.ID),
		slog.String("sku", product.SKU))
	return nil
}

// GetByID implements store.ProductStore.GetByID
func (s *PostgresProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, price, in_stock, sku, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	echoQuery(ctx, log, query)

	var product domain.Product
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.InStock,
		&product.SKU,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("product not found", slog.Int64("product_id", id))
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to get product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return nil, MapError(err)
	}

	return &product, nil
}

// List implements store.ProductStore.List
func (s *PostgresProductStore) List(ctx context.Context, skip, limit int) ([]*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, price, in_stock, sku, created_at, updated_at
		FROM products
		ORDER BY id
		OFFSET $1 LIMIT $2
	`
	echoQuery(ctx, log, query)

	rows, err := s.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		log.Error("failed to list products", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]*domain.Product, 0, limit)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.Price,
			&product.InStock,
			&product.SKU,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, &product)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return products, nil
}

// Update implements store.ProductStore.Update
func (s *PostgresProductStore) Update(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := update.Validate(); err != nil {
		log.Warn("product update validation failed",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return nil, err
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.SKU != nil && *update.SKU != product.SKU {
		checkQuery := `SELECT EXISTS (SELECT 1 FROM products WHERE sku = $1 AND id <> $2)`
		echoQuery(ctx, log, checkQuery)

		var exists bool
		err := s.db.QueryRowContext(ctx, checkQuery, *update.SKU, id).Scan(&exists)
		if err != nil {
			return nil, MapError(err)
		}
		if exists {
			log.Debug("sku already taken by another product",
				slog.String("sku", *update.SKU),
				slog.Int64("product_id", id))
			return nil, store.ErrSKUExists
		}
	}

	update.Apply(product)

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, in_stock = $4, sku = $5, updated_at = $6
		WHERE id = $7
	`
	echoQuery(ctx, log, query)

	result, err := s.db.ExecContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.InStock,
		product.SKU,
		product.UpdatedAt,
		product.ID,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			return nil, store.ErrSKUExists
		}
		log.Error("failed to update product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return nil, MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrProductNotFound); err != nil {
		return nil, err
	}

	log.Info("product updated", slog.Int64("product_id", product.ID))
	return product, nil
}

// Delete implements store.ProductStore.Delete
func (s *PostgresProductStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM products WHERE id = $1`
	echoQuery(ctx, log, query)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrProductNotFound); err != nil {
		return err
	}

	log.Info("product deleted", slog.Int64("product_id", id))
	return nil
}
