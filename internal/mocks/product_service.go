package mocks

import (
	"context"

	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/store"
)

// MockProductService implements service.ProductService for testing
type MockProductService struct {
	CreateFn func(ctx context.Context, name string, description *string, price float64, inStock bool, sku string) (*domain.Product, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Product, error)
	ListFn   func(ctx context.Context, skip, limit int) ([]*domain.Product, error)
	UpdateFn func(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error)
	DeleteFn func(ctx context.Context, id int64) error
}

// Create implements the ProductService interface
func (m *MockProductService) Create(ctx context.Context, name string, description *string, price float64, inStock bool, sku string) (*domain.Product, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, name, description, price, inStock, sku)
	}
	return nil, store.ErrProductNotFound
}

// Get implements the ProductService interface
func (m *MockProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, store.ErrProductNotFound
}

// List implements the ProductService interface
func (m *MockProductService) List(ctx context.Context, skip, limit int) ([]*domain.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, skip, limit)
	}
	return []*domain.Product{}, nil
}

// Update implements the ProductService interface
func (m *MockProductService) Update(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}
	return nil, store.ErrProductNotFound
}

// Delete implements the ProductService interface
func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return store.ErrProductNotFound
}
