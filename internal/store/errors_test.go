package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorHierarchy(t *testing.T) {
	// Entity-specific errors unwrap to their generic sentinel
	assert.ErrorIs(t, ErrUserNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrPostNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrProductNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrEmailExists, ErrDuplicate)
	assert.ErrorIs(t, ErrSKUExists, ErrDuplicate)

	// The two families do not overlap
	assert.NotErrorIs(t, ErrUserNotFound, ErrDuplicate)
	assert.NotErrorIs(t, ErrEmailExists, ErrNotFound)
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup failed: %w", ErrPostNotFound)))

	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(errors.New("some other error")))
	assert.False(t, IsNotFoundError(ErrEmailExists))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(ErrSKUExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("insert failed: %w", ErrEmailExists)))

	assert.False(t, IsDuplicateError(nil))
	assert.False(t, IsDuplicateError(ErrUserNotFound))
}

func TestStoreError(t *testing.T) {
	inner := errors.New("connection reset")
	err := NewStoreError("user", "create", "insert failed", inner)

	assert.Contains(t, err.Error(), "create operation on user failed")
	assert.Contains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, inner)

	// Without a wrapped error the message stands alone
	bare := NewStoreError("post", "delete", "no rows affected", nil)
	assert.Equal(t, "delete operation on post failed: no rows affected", bare.Error())
}

func TestStoreErrorPreservesSentinels(t *testing.T) {
	err := NewStoreError("user", "get", "lookup failed", ErrUserNotFound)

	assert.True(t, IsNotFoundError(err))
	assert.ErrorIs(t, err, ErrUserNotFound)
}
