package services_test

import (
	"testing"

	"furniro/internal/models"
	"furniro/internal/repositories"
	"furniro/internal/services"

	"github.com/stretchr/testify/assert"
)

var (
	chairProduct = models.Product{ID: "1", Name: "Syltherine", Price: "RM 2,500"}
	lampProduct  = models.Product{ID: "5", Name: "Grifo", Price: "RM 1,500"}
	sofaProduct  = models.Product{ID: "3", Name: "Lolito", Price: "Rp 2.500.000"}
)

func TestCartService_Add(t *testing.T) {
	store := repositories.NewMockStateStore()
	cart := services.NewCartService(store)

	lines := cart.Add("guest-id", chairProduct, 2)
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	// Re-adding merges into the existing line instead of duplicating it.
	lines = cart.Add("guest-id", chairProduct, 3)
	assert.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)

	lines = cart.Add("guest-id", lampProduct, 1)
	assert.Len(t, lines, 2)
}

func TestCartService_AddClampsQuantity(t *testing.T) {
	store := repositories.NewMockStateStore()
	cart := services.NewCartService(store)

	lines := cart.Add("guest-id", chairProduct, 0)
	assert.Equal(t, 1, lines[0].Quantity)

	lines = cart.Add("guest-id", lampProduct, -5)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestCartService_SetQuantity(t *testing.T) {
	store := repositories.NewMockStateStore()
	cart := services.NewCartService(store)

	cart.Add("guest-id", chairProduct, 2)
	lines := cart.SetQuantity("guest-id", chairProduct.ID, 7)
	assert.Equal(t, 7, lines[0].Quantity)

	// Zero or negative quantity removes the line.
	lines = cart.SetQuantity("guest-id", chairProduct.ID, 0)
	assert.Empty(t, lines)

	cart.Add("guest-id", lampProduct, 1)
	lines = cart.SetQuantity("guest-id", lampProduct.ID, -3)
	assert.Empty(t, lines)
}

func TestCartService_Remove(t *testing.T) {
	store := repositories.NewMockStateStore()
	cart := services.NewCartService(store)

	cart.Add("guest-id", chairProduct, 1)
	cart.Add("guest-id", lampProduct, 1)

	lines := cart.Remove("guest-id", chairProduct.ID)
	assert.Len(t, lines, 1)
	assert.Equal(t, lampProduct.ID, lines[0].ID)

	// Removing a product that is not in the cart is a no-op.
	lines = cart.Remove("guest-id", "missing")
	assert.Len(t, lines, 1)
}

func TestCartService_Totals(t *testing.T) {
	store := repositories.NewMockStateStore()
	cart := services.NewCartService(store)

	cart.Add("guest-id", chairProduct, 2)
	assert.Equal(t, 2, cart.TotalItemCount("guest-id"))
	assert.Equal(t, 5000.0, cart.TotalPrice("guest-id"))

	cart.Add("guest-id", sofaProduct, 1)
	assert.Equal(t, 3, cart.TotalItemCount("guest-id"))
	assert.Equal(t, 2505000.0, cart.TotalPrice("guest-id"))
}

func TestCartService_TotalSkipsUnparseablePrices(t *testing.T) {
	store := repositories.NewMockStateStore()
	cart := services.NewCartService(store)

	cart.Add("guest-id", chairProduct, 1)
	cart.Add("guest-id", models.Product{ID: "x", Name: "Broken", Price: "call us"}, 1)

	assert.Equal(t, 2500.0, cart.TotalPrice("guest-id"))
	assert.Equal(t, 2, cart.TotalItemCount("guest-id"))
}

func TestCartService_Clear(t *testing.T) {
	store := repositories.NewMockStateStore()
	cart := services.NewCartService(store)

	cart.Add("guest-id", chairProduct, 2)
	cart.Clear("guest-id")
	assert.Empty(t, cart.Lines("guest-id"))
	assert.Equal(t, 0.0, cart.TotalPrice("guest-id"))
}

func TestCartService_IdentityIsolation(t *testing.T) {
	store := repositories.NewMockStateStore()
	cart := services.NewCartService(store)

	cart.Add("", chairProduct, 1)
	cart.Add("user-a", lampProduct, 2)

	assert.Len(t, cart.Lines(""), 1)
	assert.Equal(t, chairProduct.ID, cart.Lines("")[0].ID)
	assert.Len(t, cart.Lines("user-a"), 1)
	assert.Equal(t, lampProduct.ID, cart.Lines("user-a")[0].ID)
	assert.Empty(t, cart.Lines("user-b"))

	assert.ElementsMatch(t, []string{"cart_guest", "cart_user-a"}, store.Keys())
}

func TestCartService_CorruptRecordReadsAsEmpty(t *testing.T) {
	store := repositories.NewMockStateStore()
	assert.NoError(t, store.Save("cart_guest", []byte("{not json")))

	cart := services.NewCartService(store)
	assert.Empty(t, cart.Lines(""))

	// The cart stays usable and the next write replaces the bad record.
	lines := cart.Add("", chairProduct, 1)
	assert.Len(t, lines, 1)
	assert.Len(t, cart.Lines(""), 1)
}

func TestCartService_SaveFailureDoesNotFailMutation(t *testing.T) {
	store := repositories.NewMockStateStore()
	store.FailSaves = true
	cart := services.NewCartService(store)

	lines := cart.Add("guest-id", chairProduct, 1)
	assert.Len(t, lines, 1)
	assert.Empty(t, store.Keys())
}
