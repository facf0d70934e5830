package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/store"
)

// ProductService provides product-related operations.
type ProductService interface {
	// Create inserts a new product. Returns store.ErrSKUExists if the SKU
	// is already taken.
	Create(ctx context.Context, name string, description *string, price float64, inStock bool, sku string) (*domain.Product, error)

	// Get retrieves a product by ID. Returns store.ErrProductNotFound if
	// absent.
	Get(ctx context.Context, id int64) (*domain.Product, error)

	// List returns a page of products ordered by ID.
	List(ctx context.Context, skip, limit int) ([]*domain.Product, error)

	// Update applies a partial update. Returns store.ErrProductNotFound if
	// the product is absent, store.ErrSKUExists if the new SKU belongs to
	// another product.
	Update(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error)

	// Delete removes a product. Returns store.ErrProductNotFound if absent.
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	db       *sql.DB
	products store.ProductStore
	logger   *slog.Logger
}

// NewProductService creates a ProductService backed by the given store.
func NewProductService(db *sql.DB, products store.ProductStore, logger *slog.Logger) ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &productService{
		db:       db,
		products: products,
		logger:   logger.With(slog.String("component", "product_service")),
	}
}

func (s *productService) Create(ctx context.Context, name string, description *string, price float64, inStock bool, sku string) (*domain.Product, error) {
	product, err := domain.NewProduct(name, description, price, inStock, sku)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.products.WithTx(tx).Create(ctx, product)
	})
	if err != nil {
		return nil, wrapError("create_product", "failed to create product", err)
	}

	return product, nil
}

func (s *productService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, wrapError("get_product", "failed to get product", err)
	}
	return product, nil
}

func (s *productService) List(ctx context.Context, skip, limit int) ([]*domain.Product, error) {
	products, err := s.products.List(ctx, skip, limit)
	if err != nil {
		return nil, wrapError("list_products", "failed to list products", err)
	}
	return products, nil
}

func (s *productService) Update(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error) {
	var product *domain.Product
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		product, err = s.products.WithTx(tx).Update(ctx, id, update)
		return err
	})
	if err != nil {
		return nil, wrapError("update_product", "failed to update product", err)
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return wrapError("delete_product", "failed to delete product", err)
	}
	return nil
}
