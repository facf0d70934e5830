package mocks

import (
	"context"
	"database/sql"

	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/store"
)

// MockProductStore implements store.ProductStore for testing
type MockProductStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, product *domain.Product) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Product, error)
	ListFn    func(ctx context.Context, skip, limit int) ([]*domain.Product, error)
	UpdateFn  func(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error)
	DeleteFn  func(ctx context.Context, id int64) error

	// Data for default implementation
	Products map[int64]*domain.Product
	NextID   int64
}

// NewMockProductStore creates a new mock store with initialized defaults
func NewMockProductStore() *MockProductStore {
	return &MockProductStore{
		Products: make(map[int64]*domain.Product),
		NextID:   1,
	}
}

// Create implements the ProductStore interface
func (m *MockProductStore) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, product)
	}

	for _, existing := range m.Products {
		if existing.SKU == product.SKU {
			return store.ErrSKUExists
		}
	}

	product.ID = m.NextID
	m.NextID++
	m.Products[product.ID] = product
	return nil
}

// GetByID implements the ProductStore interface
func (m *MockProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	product, exists := m.Products[id]
	if !exists {
		return nil, store.ErrProductNotFound
	}
	return product, nil
}

// List implements the ProductStore interface
func (m *MockProductStore) List(ctx context.Context, skip, limit int) ([]*domain.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, skip, limit)
	}

	products := make([]*domain.Product, 0, len(m.Products))
	for id := int64(1); id < m.NextID; id++ {
		if product, ok := m.Products[id]; ok {
			products = append(products, product)
		}
	}
	if skip >= len(products) {
		return []*domain.Product{}, nil
	}
	products = products[skip:]
	if limit < len(products) {
		products = products[:limit]
	}
	return products, nil
}

// Update implements the ProductStore interface
func (m *MockProductStore) Update(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}

	product, exists := m.Products[id]
	if !exists {
		return nil, store.ErrProductNotFound
	}
	if update.SKU != nil {
		for otherID, other := range m.Products {
			if otherID != id && other.SKU == *update.SKU {
				return nil, store.ErrSKUExists
			}
		}
	}
	update.Apply(product)
	return product, nil
}

// Delete implements the ProductStore interface
func (m *MockProductStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Products[id]; !exists {
		return store.ErrProductNotFound
	}
	delete(m.Products, id)
	return nil
}

// WithTx implements the ProductStore interface. The mock carries no
// connection state, so the same instance is returned.
func (m *MockProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return m
}
