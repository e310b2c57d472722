package services

import (
	"encoding/json"
	"log"

	"furniro/internal/models"
	"furniro/internal/repositories"
	"furniro/pkg/money"
)

const cartResource = "cart"

// CartService manages per-identity shopping carts. Each operation loads the
// identity's cart from the state store, mutates it, and writes it back.
// Reads of missing or malformed records degrade to an empty cart;
// writes are best-effort and never fail the mutation.
type CartService struct {
	store     repositories.StateStore
	listeners []func(identityID string)
}

// NewCartService creates a new CartService.
func NewCartService(store repositories.StateStore) *CartService {
	return &CartService{
		store: store,
	}
}

// AddListener registers a callback invoked after every cart mutation, with
// the owning identity. Listeners must be registered before the service starts
// taking requests.
func (s *CartService) AddListener(fn func(identityID string)) {
	s.listeners = append(s.listeners, fn)
}

func (s *CartService) notify(identityID string) {
	for _, fn := range s.listeners {
		fn(identityID)
	}
}

// Lines returns the cart contents for an identity.
func (s *CartService) Lines(identityID string) []models.CartLine {
	return s.load(identityID)
}

// Add puts quantity units of a product in the cart. A line already holding
// the product absorbs the quantity; otherwise a new line is appended.
func (s *CartService) Add(identityID string, product models.Product, quantity int) []models.CartLine {
	if quantity < 1 {
		quantity = 1
	}
	lines := s.load(identityID)
	merged := false
	for i := range lines {
		if lines[i].ID == product.ID {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, models.CartLine{ID: product.ID, Product: product, Quantity: quantity})
	}
	s.persist(identityID, lines)
	s.notify(identityID)
	return lines
}

// Remove drops the line for a product. Removing an absent product is not an
// error.
func (s *CartService) Remove(identityID, productID string) []models.CartLine {
	lines := s.load(identityID)
	kept := lines[:0]
	for _, line := range lines {
		if line.ID != productID {
			kept = append(kept, line)
		}
	}
	s.persist(identityID, kept)
	s.notify(identityID)
	return kept
}

// SetQuantity replaces a line's quantity. A quantity of zero or below removes
// the line instead; a line never survives with quantity < 1.
func (s *CartService) SetQuantity(identityID, productID string, quantity int) []models.CartLine {
	if quantity <= 0 {
		return s.Remove(identityID, productID)
	}
	lines := s.load(identityID)
	for i := range lines {
		if lines[i].ID == productID {
			lines[i].Quantity = quantity
			break
		}
	}
	s.persist(identityID, lines)
	s.notify(identityID)
	return lines
}

// Clear empties the cart.
func (s *CartService) Clear(identityID string) {
	s.persist(identityID, []models.CartLine{})
	s.notify(identityID)
}

// clearQuiet empties the cart without notifying listeners. Checkout
// finalization uses it because it resets its own session state and holds the
// session lock the listeners would need.
func (s *CartService) clearQuiet(identityID string) {
	s.persist(identityID, []models.CartLine{})
}

// TotalItemCount returns the sum of quantities across lines.
func (s *CartService) TotalItemCount(identityID string) int {
	total := 0
	for _, line := range s.load(identityID) {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the cart total in major units. Lines whose display price
// cannot be parsed contribute nothing and are logged.
func (s *CartService) TotalPrice(identityID string) float64 {
	var total float64
	for _, line := range s.load(identityID) {
		value, err := money.MajorValue(line.Product.Price)
		if err != nil {
			log.Printf("Skipping unparseable price %q for product %s: %v", line.Product.Price, line.ID, err)
			continue
		}
		total += value * float64(line.Quantity)
	}
	return total
}

func (s *CartService) load(identityID string) []models.CartLine {
	key := repositories.StorageKey(cartResource, identityID)
	payload, err := s.store.Load(key)
	if err != nil {
		if err != repositories.ErrStateNotFound {
			log.Printf("Error loading cart %s: %v", key, err)
		}
		return nil
	}
	var lines []models.CartLine
	if err := json.Unmarshal(payload, &lines); err != nil {
		log.Printf("Error decoding cart %s, starting empty: %v", key, err)
		return nil
	}
	return lines
}

func (s *CartService) persist(identityID string, lines []models.CartLine) {
	key := repositories.StorageKey(cartResource, identityID)
	payload, err := json.Marshal(lines)
	if err != nil {
		log.Printf("Error encoding cart %s: %v", key, err)
		return
	}
	if err := s.store.Save(key, payload); err != nil {
		// Best-effort persistence: the mutation already happened and the
		// response reflects it.
		log.Printf("Error saving cart %s: %v", key, err)
	}
}
