package services_test

import (
	"testing"

	"furniro/internal/repositories"
	"furniro/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestWishlistService_AddIsIdempotent(t *testing.T) {
	store := repositories.NewMockStateStore()
	wishlist := services.NewWishlistService(store)

	items := wishlist.Add("guest-id", chairProduct)
	assert.Len(t, items, 1)

	// Adding the same product again changes nothing.
	items = wishlist.Add("guest-id", chairProduct)
	assert.Len(t, items, 1)

	items = wishlist.Add("guest-id", lampProduct)
	assert.Len(t, items, 2)
}

func TestWishlistService_Contains(t *testing.T) {
	store := repositories.NewMockStateStore()
	wishlist := services.NewWishlistService(store)

	wishlist.Add("guest-id", chairProduct)
	assert.True(t, wishlist.Contains("guest-id", chairProduct.ID))
	assert.False(t, wishlist.Contains("guest-id", lampProduct.ID))
	assert.False(t, wishlist.Contains("someone-else", chairProduct.ID))
}

func TestWishlistService_Remove(t *testing.T) {
	store := repositories.NewMockStateStore()
	wishlist := services.NewWishlistService(store)

	wishlist.Add("guest-id", chairProduct)
	wishlist.Add("guest-id", lampProduct)

	items := wishlist.Remove("guest-id", chairProduct.ID)
	assert.Len(t, items, 1)
	assert.Equal(t, lampProduct.ID, items[0].ID)

	items = wishlist.Remove("guest-id", "missing")
	assert.Len(t, items, 1)
}

func TestWishlistService_Clear(t *testing.T) {
	store := repositories.NewMockStateStore()
	wishlist := services.NewWishlistService(store)

	wishlist.Add("guest-id", chairProduct)
	wishlist.Clear("guest-id")
	assert.Empty(t, wishlist.Items("guest-id"))
}

func TestWishlistService_IdentityIsolation(t *testing.T) {
	store := repositories.NewMockStateStore()
	wishlist := services.NewWishlistService(store)

	wishlist.Add("", chairProduct)
	wishlist.Add("user-a", lampProduct)

	assert.True(t, wishlist.Contains("", chairProduct.ID))
	assert.False(t, wishlist.Contains("", lampProduct.ID))
	assert.True(t, wishlist.Contains("user-a", lampProduct.ID))
	assert.ElementsMatch(t, []string{"wishlist_guest", "wishlist_user-a"}, store.Keys())
}

func TestWishlistService_CorruptRecordReadsAsEmpty(t *testing.T) {
	store := repositories.NewMockStateStore()
	assert.NoError(t, store.Save("wishlist_guest", []byte("[broken")))

	wishlist := services.NewWishlistService(store)
	assert.Empty(t, wishlist.Items(""))

	items := wishlist.Add("", chairProduct)
	assert.Len(t, items, 1)
}
