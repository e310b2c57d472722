package repositories_test

import (
	"testing"

	"furniro/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "cart_guest", repositories.StorageKey("cart", ""))
	assert.Equal(t, "cart_user-123", repositories.StorageKey("cart", "user-123"))
	assert.Equal(t, "wishlist_guest", repositories.StorageKey("wishlist", ""))
	assert.Equal(t, "orders_user-123", repositories.StorageKey("orders", "user-123"))
}

func TestMockStateStore(t *testing.T) {
	store := repositories.NewMockStateStore()

	_, err := store.Load("cart_guest")
	assert.ErrorIs(t, err, repositories.ErrStateNotFound)

	assert.NoError(t, store.Save("cart_guest", []byte(`[]`)))
	payload, err := store.Load("cart_guest")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`[]`), payload)

	store.FailSaves = true
	assert.Error(t, store.Save("cart_guest", []byte(`[1]`)))
	// The old payload survives a failed save.
	payload, err = store.Load("cart_guest")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`[]`), payload)
}

func TestNotifyingStateStore_ReportsWriteFailures(t *testing.T) {
	inner := repositories.NewMockStateStore()
	var reportedKey string
	var reportedErr error
	store := repositories.NewNotifyingStateStore(inner, func(key string, err error) {
		reportedKey = key
		reportedErr = err
	})

	assert.NoError(t, store.Save("cart_guest", []byte(`[]`)))
	assert.Empty(t, reportedKey)

	payload, err := store.Load("cart_guest")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`[]`), payload)

	inner.FailSaves = true
	assert.Error(t, store.Save("cart_guest", []byte(`[1]`)))
	assert.Equal(t, "cart_guest", reportedKey)
	assert.Error(t, reportedErr)
}

func TestNotifyingStateStore_NilHook(t *testing.T) {
	inner := repositories.NewMockStateStore()
	inner.FailSaves = true
	store := repositories.NewNotifyingStateStore(inner, nil)
	assert.Error(t, store.Save("cart_guest", []byte(`[]`)))
}
