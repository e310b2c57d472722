package services

import (
	"encoding/json"
	"log"

	"furniro/internal/models"
	"furniro/internal/repositories"
)

const wishlistResource = "wishlist"

// WishlistService manages per-identity wishlists. A wishlist is a set of
// product snapshots keyed by product ID: no duplicates, no quantities.
// Persistence behaves exactly like the cart's: missing or malformed records
// read as empty, writes are best-effort.
type WishlistService struct {
	store repositories.StateStore
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(store repositories.StateStore) *WishlistService {
	return &WishlistService{
		store: store,
	}
}

// Items returns the wishlist contents for an identity.
func (s *WishlistService) Items(identityID string) []models.Product {
	return s.load(identityID)
}

// Add puts a product on the wishlist. Adding an already-present product is a
// no-op.
func (s *WishlistService) Add(identityID string, product models.Product) []models.Product {
	items := s.load(identityID)
	for _, item := range items {
		if item.ID == product.ID {
			return items
		}
	}
	items = append(items, product)
	s.persist(identityID, items)
	return items
}

// Remove drops a product from the wishlist. Removing an absent product is
// not an error.
func (s *WishlistService) Remove(identityID, productID string) []models.Product {
	items := s.load(identityID)
	kept := items[:0]
	for _, item := range items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	s.persist(identityID, kept)
	return kept
}

// Contains reports whether the wishlist holds a product.
func (s *WishlistService) Contains(identityID, productID string) bool {
	for _, item := range s.load(identityID) {
		if item.ID == productID {
			return true
		}
	}
	return false
}

// Clear empties the wishlist.
func (s *WishlistService) Clear(identityID string) {
	s.persist(identityID, []models.Product{})
}

func (s *WishlistService) load(identityID string) []models.Product {
	key := repositories.StorageKey(wishlistResource, identityID)
	payload, err := s.store.Load(key)
	if err != nil {
		if err != repositories.ErrStateNotFound {
			log.Printf("Error loading wishlist %s: %v", key, err)
		}
		return nil
	}
	var items []models.Product
	if err := json.Unmarshal(payload, &items); err != nil {
		log.Printf("Error decoding wishlist %s, starting empty: %v", key, err)
		return nil
	}
	return items
}

func (s *WishlistService) persist(identityID string, items []models.Product) {
	key := repositories.StorageKey(wishlistResource, identityID)
	payload, err := json.Marshal(items)
	if err != nil {
		log.Printf("Error encoding wishlist %s: %v", key, err)
		return
	}
	if err := s.store.Save(key, payload); err != nil {
		log.Printf("Error saving wishlist %s: %v", key, err)
	}
}
