package store

import (
	"context"
	"database/sql"

	"github.com/nfjones/blogmart-api/internal/domain"
)

// ProductStore defines the interface for product data persistence.
type ProductStore interface {
	// Create saves a new product and assigns its generated ID.
	// Returns ErrSKUExists if the SKU is already taken.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List returns a page of products ordered by primary key.
	List(ctx context.Context, skip, limit int) ([]*domain.Product, error)

	// Update applies a partial update to an existing product and returns
	// the updated record; updated_at is stamped on every successful update.
	// Returns ErrProductNotFound if the product does not exist.
	// Returns ErrSKUExists if the new SKU belongs to another product.
	Update(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error)

	// Delete permanently removes a product.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new ProductStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ProductStore
}
