package mocks

import (
	"context"
	"database/sql"

	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/store"
)

// MockPostStore implements store.PostStore for testing
type MockPostStore struct {
	// Function fields for customizable behavior
	CreateFn       func(ctx context.Context, post *domain.Post) error
	GetByIDFn      func(ctx context.Context, id int64) (*domain.PostWithAuthor, error)
	ListFn         func(ctx context.Context, skip, limit int) ([]*domain.Post, error)
	ListByUserFn   func(ctx context.Context, userID int64, skip, limit int) ([]*domain.Post, error)
	FilterFn       func(ctx context.Context, filter store.PostFilter) ([]*domain.Post, error)
	UpdateFn       func(ctx context.Context, id int64, update domain.PostUpdate) (*domain.Post, error)
	DeleteFn       func(ctx context.Context, id int64) error
	DeleteByUserFn func(ctx context.Context, userID int64) (int64, error)

	// Data for default implementation
	Posts  map[int64]*domain.Post
	NextID int64
}

// NewMockPostStore creates a new mock store with initialized defaults
func NewMockPostStore() *MockPostStore {
	return &MockPostStore{
		Posts:  make(map[int64]*domain.Post),
		NextID: 1,
	}
}

// Create implements the PostStore interface
func (m *MockPostStore) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, post)
	}

	post.ID = m.NextID
	m.NextID++
	m.Posts[post.ID] = post
	return nil
}

// GetByID implements the PostStore interface
func (m *MockPostStore) GetByID(ctx context.Context, id int64) (*domain.PostWithAuthor, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	post, exists := m.Posts[id]
	if !exists {
		return nil, store.ErrPostNotFound
	}
	return &domain.PostWithAuthor{Post: *post}, nil
}

// List implements the PostStore interface
func (m *MockPostStore) List(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, skip, limit)
	}

	posts := m.orderedPosts()
	if skip >= len(posts) {
		return []*domain.Post{}, nil
	}
	posts = posts[skip:]
	if limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

// ListByUser implements the PostStore interface
func (m *MockPostStore) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]*domain.Post, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, skip, limit)
	}

	var posts []*domain.Post
	for _, post := range m.orderedPosts() {
		if post.UserID == userID {
			posts = append(posts, post)
		}
	}
	if skip >= len(posts) {
		return []*domain.Post{}, nil
	}
	posts = posts[skip:]
	if limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

// Filter implements the PostStore interface
func (m *MockPostStore) Filter(ctx context.Context, filter store.PostFilter) ([]*domain.Post, error) {
	if m.FilterFn != nil {
		return m.FilterFn(ctx, filter)
	}
	return []*domain.Post{}, nil
}

// Update implements the PostStore interface
func (m *MockPostStore) Update(ctx context.Context, id int64, update domain.PostUpdate) (*domain.Post, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}

	post, exists := m.Posts[id]
	if !exists {
		return nil, store.ErrPostNotFound
	}
	update.Apply(post)
	return post, nil
}

// Delete implements the PostStore interface
func (m *MockPostStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Posts[id]; !exists {
		return store.ErrPostNotFound
	}
	delete(m.Posts, id)
	return nil
}

// DeleteByUser implements the PostStore interface
func (m *MockPostStore) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	if m.DeleteByUserFn != nil {
		return m.DeleteByUserFn(ctx, userID)
	}

	var deleted int64
	for id, post := range m.Posts {
		if post.UserID == userID {
			delete(m.Posts, id)
			deleted++
		}
	}
	return deleted, nil
}

// WithTx implements the PostStore interface. The mock carries no
// connection state, so the same instance is returned.
func (m *MockPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return m
}

// orderedPosts returns the stored posts in insertion (id) order.
func (m *MockPostStore) orderedPosts() []*domain.Post {
	posts := make([]*domain.Post, 0, len(m.Posts))
	for id := int64(1); id < m.NextID; id++ {
		if post, ok := m.Posts[id]; ok {
			posts = append(posts, post)
		}
	}
	return posts
}
