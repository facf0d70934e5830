package mocks

import (
	"context"
	"database/sql"

	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	ListFn       func(ctx context.Context, skip, limit int) ([]*domain.User, error)
	UpdateFn     func(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)
	DeleteFn     func(ctx context.Context, id int64) error
	PostCountsFn func(ctx context.Context) ([]domain.UserPostCount, error)

	// Data for default implementation
	Users  map[int64]*domain.User
	NextID int64
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users:  make(map[int64]*domain.User),
		NextID: 1,
	}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	for _, existing := range m.Users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	user.ID = m.NextID
	m.NextID++
	m.Users[user.ID] = user
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	user, exists := m.Users[id]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// List implements the UserStore interface
func (m *MockUserStore) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, skip, limit)
	}

	users := make([]*domain.User, 0, len(m.Users))
	for id := int64(1); id < m.NextID; id++ {
		if user, ok := m.Users[id]; ok {
			users = append(users, user)
		}
	}
	if skip >= len(users) {
		return []*domain.User{}, nil
	}
	users = users[skip:]
	if limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}

	user, exists := m.Users[id]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	if update.Email != nil {
		for otherID, other := range m.Users {
			if otherID != id && other.Email == *update.Email {
				return nil, store.ErrEmailExists
			}
		}
	}
	update.Apply(user)
	return user, nil
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Users[id]; !exists {
		return store.ErrUserNotFound
	}
	delete(m.Users, id)
	return nil
}

// PostCounts implements the UserStore interface
func (m *MockUserStore) PostCounts(ctx context.Context) ([]domain.UserPostCount, error) {
	if m.PostCountsFn != nil {
		return m.PostCountsFn(ctx)
	}
	return []domain.UserPostCount{}, nil
}

// WithTx implements the UserStore interface. The mock carries no
// connection state, so the same instance is returned.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
