package services

import (
	"encoding/json"
	"fmt"
	"log"

	"furniro/internal/models"
	"furniro/internal/repositories"
)

const orderResource = "orders"

// OrderHistoryService keeps an append-only order history per identity in the
// state store. Orders are never removed; the only mutation after creation is
// the pending→paid flip when the payment provider confirms a card charge.
type OrderHistoryService struct {
	store repositories.StateStore
}

// NewOrderHistoryService creates a new OrderHistoryService.
func NewOrderHistoryService(store repositories.StateStore) *OrderHistoryService {
	return &OrderHistoryService{
		store: store,
	}
}

// Append records a finalized order at the end of the identity's history.
func (s *OrderHistoryService) Append(identityID string, order models.Order) {
	orders := s.load(identityID)
	orders = append(orders, order)
	s.persist(identityID, orders)
}

// List returns the identity's orders, newest first.
func (s *OrderHistoryService) List(identityID string) []models.Order {
	orders := s.load(identityID)
	reversed := make([]models.Order, 0, len(orders))
	for i := len(orders) - 1; i >= 0; i-- {
		reversed = append(reversed, orders[i])
	}
	return reversed
}

// MarkPaid flips the pending order holding a payment intent to paid. The
// intent ID must be non-empty: non-card orders carry no intent and must never
// match a payment confirmation.
func (s *OrderHistoryService) MarkPaid(identityID, paymentIntentID string) error {
	if paymentIntentID == "" {
		return fmt.Errorf("payment intent ID is required")
	}
	orders := s.load(identityID)
	for i := range orders {
		if orders[i].PaymentIntentID == paymentIntentID {
			if orders[i].Status == models.OrderStatusPaid {
				return nil
			}
			orders[i].Status = models.OrderStatusPaid
			s.persist(identityID, orders)
			return nil
		}
	}
	return fmt.Errorf("no order found for payment intent %s", paymentIntentID)
}

func (s *OrderHistoryService) load(identityID string) []models.Order {
	key := repositories.StorageKey(orderResource, identityID)
	payload, err := s.store.Load(key)
	if err != nil {
		if err != repositories.ErrStateNotFound {
			log.Printf("Error loading orders %s: %v", key, err)
		}
		return nil
	}
	var orders []models.Order
	if err := json.Unmarshal(payload, &orders); err != nil {
		log.Printf("Error decoding orders %s, starting empty: %v", key, err)
		return nil
	}
	return orders
}

func (s *OrderHistoryService) persist(identityID string, orders []models.Order) {
	key := repositories.StorageKey(orderResource, identityID)
	payload, err := json.Marshal(orders)
	if err != nil {
		log.Printf("Error encoding orders %s: %v", key, err)
		return
	}
	if err := s.store.Save(key, payload); err != nil {
		log.Printf("Error saving orders %s: %v", key, err)
	}
}
