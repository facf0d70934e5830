package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/mocks"
	"github.com/nfjones/blogmart-api/internal/service"
	"github.com/nfjones/blogmart-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, users *mocks.MockUserStore) *domain.User {
	t.Helper()

	user, err := domain.NewUser("Alice", "alice@example.com", true)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestPostService_Create(t *testing.T) {
	db, mock := newTestDB(t)
	users := mocks.NewMockUserStore()
	posts := mocks.NewMockPostStore()
	svc := service.NewPostService(db, users, posts, nil)

	alice := seedUser(t, users)

	mock.ExpectBegin()
	mock.ExpectCommit()

	post, err := svc.Create(context.Background(), "Hello", "first post", true, alice.ID)
	require.NoError(t, err)

	assert.NotZero(t, post.ID)
	assert.Equal(t, alice.ID, post.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostService_CreateMissingAuthor(t *testing.T) {
	db, mock := newTestDB(t)
	users := mocks.NewMockUserStore()
	posts := mocks.NewMockPostStore()
	svc := service.NewPostService(db, users, posts, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), "Orphan", "", false, 999)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	assert.Empty(t, posts.Posts, "insert must not happen for a missing author")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostService_CreateForeignKeyBackstop(t *testing.T) {
	db, mock := newTestDB(t)
	users := mocks.NewMockUserStore()
	posts := mocks.NewMockPostStore()
	svc := service.NewPostService(db, users, posts, nil)

	alice := seedUser(t, users)

	// The author passes the pre-check but the insert hits the foreign key,
	// as happens when the user is deleted concurrently.
	posts.CreateFn = func(ctx context.Context, post *domain.Post) error {
		return fmt.Errorf("%w: user with id %d not found", store.ErrInvalidEntity, post.UserID)
	}

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), "Hello", "", false, alice.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostService_CreateInvalidTitle(t *testing.T) {
	db, mock := newTestDB(t)
	svc := service.NewPostService(db, mocks.NewMockUserStore(), mocks.NewMockPostStore(), nil)

	_, err := svc.Create(context.Background(), "", "content", false, 1)
	assert.ErrorIs(t, err, domain.ErrPostTitleEmpty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostService_Get(t *testing.T) {
	db, _ := newTestDB(t)
	users := mocks.NewMockUserStore()
	posts := mocks.NewMockPostStore()
	svc := service.NewPostService(db, users, posts, nil)

	post, err := domain.NewPost("Hello", "", false, 1)
	require.NoError(t, err)
	require.NoError(t, posts.Create(context.Background(), post))

	got, err := svc.Get(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)

	_, err = svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, store.ErrPostNotFound)
}

func TestPostService_Filter(t *testing.T) {
	db, _ := newTestDB(t)
	posts := mocks.NewMockPostStore()
	svc := service.NewPostService(db, mocks.NewMockUserStore(), posts, nil)

	var captured store.PostFilter
	posts.FilterFn = func(ctx context.Context, filter store.PostFilter) ([]*domain.Post, error) {
		captured = filter
		return []*domain.Post{}, nil
	}

	published := true
	filter := store.PostFilter{
		Published: &published,
		SortBy:    store.PostSortTitle,
		Order:     store.SortAsc,
		Limit:     20,
	}

	_, err := svc.Filter(context.Background(), filter)
	require.NoError(t, err)

	// The filter passes through to the store unchanged
	assert.Equal(t, filter, captured)
}

func TestPostService_Update(t *testing.T) {
	db, mock := newTestDB(t)
	posts := mocks.NewMockPostStore()
	svc := service.NewPostService(db, mocks.NewMockUserStore(), posts, nil)

	post, err := domain.NewPost("Draft", "", false, 1)
	require.NoError(t, err)
	require.NoError(t, posts.Create(context.Background(), post))

	mock.ExpectBegin()
	mock.ExpectCommit()

	published := true
	updated, err := svc.Update(context.Background(), post.ID, domain.PostUpdate{Published: &published})
	require.NoError(t, err)

	assert.True(t, updated.Published)
	assert.Equal(t, "Draft", updated.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostService_Delete(t *testing.T) {
	db, _ := newTestDB(t)
	posts := mocks.NewMockPostStore()
	svc := service.NewPostService(db, mocks.NewMockUserStore(), posts, nil)

	post, err := domain.NewPost("Gone soon", "", false, 1)
	require.NoError(t, err)
	require.NoError(t, posts.Create(context.Background(), post))

	require.NoError(t, svc.Delete(context.Background(), post.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), post.ID), store.ErrPostNotFound)
}
