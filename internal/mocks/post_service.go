package mocks

import (
	"context"

	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/store"
)

// MockPostService implements service.PostService for testing
type MockPostService struct {
	CreateFn func(ctx context.Context, title, content string, published bool, userID int64) (*domain.Post, error)
	GetFn    func(ctx context.Context, id int64) (*domain.PostWithAuthor, error)
	ListFn   func(ctx context.Context, skip, limit int) ([]*domain.Post, error)
	FilterFn func(ctx context.Context, filter store.PostFilter) ([]*domain.Post, error)
	UpdateFn func(ctx context.Context, id int64, update domain.PostUpdate) (*domain.Post, error)
	DeleteFn func(ctx context.Context, id int64) error
}

// Create implements the PostService interface
func (m *MockPostService) Create(ctx context.Context, title, content string, published bool, userID int64) (*domain.Post, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, title, content, published, userID)
	}
	return nil, store.ErrPostNotFound
}

// Get implements the PostService interface
func (m *MockPostService) Get(ctx context.Context, id int64) (*domain.PostWithAuthor, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, store.ErrPostNotFound
}

// List implements the PostService interface
func (m *MockPostService) List(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, skip, limit)
	}
	return []*domain.Post{}, nil
}

// Filter implements the PostService interface
func (m *MockPostService) Filter(ctx context.Context, filter store.PostFilter) ([]*domain.Post, error) {
	if m.FilterFn != nil {
		return m.FilterFn(ctx, filter)
	}
	return []*domain.Post{}, nil
}

// Update implements the PostService interface
func (m *MockPostService) Update(ctx context.Context, id int64, update domain.PostUpdate) (*domain.Post, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}
	return nil, store.ErrPostNotFound
}

// Delete implements the PostService interface
func (m *MockPostService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return store.ErrPostNotFound
}
