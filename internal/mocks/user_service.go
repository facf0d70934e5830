package mocks

import (
	"context"

	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/store"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	CreateFn     func(ctx context.Context, name, email string, isActive bool) (*domain.User, error)
	GetFn        func(ctx context.Context, id int64) (*domain.User, error)
	ListFn       func(ctx context.Context, skip, limit int) ([]*domain.User, error)
	UpdateFn     func(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)
	DeleteFn     func(ctx context.Context, id int64) error
	PostCountsFn func(ctx context.Context) ([]domain.UserPostCount, error)
	ListPostsFn  func(ctx context.Context, userID int64, skip, limit int) ([]*domain.Post, error)
}

// Create implements the UserService interface
func (m *MockUserService) Create(ctx context.Context, name, email string, isActive bool) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, name, email, isActive)
	}
	return nil, store.ErrUserNotFound
}

// Get implements the UserService interface
func (m *MockUserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

// List implements the UserService interface
func (m *MockUserService) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, skip, limit)
	}
	return []*domain.User{}, nil
}

// Update implements the UserService interface
func (m *MockUserService) Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}
	return nil, store.ErrUserNotFound
}

// Delete implements the UserService interface
func (m *MockUserService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return store.ErrUserNotFound
}

// PostCounts implements the UserService interface
func (m *MockUserService) PostCounts(ctx context.Context) ([]domain.UserPostCount, error) {
	if m.PostCountsFn != nil {
		return m.PostCountsFn(ctx)
	}
	return []domain.UserPostCount{}, nil
}

// ListPosts implements the UserService interface
func (m *MockUserService) ListPosts(ctx context.Context, userID int64, skip, limit int) ([]*domain.Post, error) {
	if m.ListPostsFn != nil {
		return m.ListPostsFn(ctx, userID, skip, limit)
	}
	return nil, store.ErrUserNotFound
}
