package models

import "time"

// Order statuses. Card orders stay pending until the payment provider
// confirms the charge through the webhook; other methods stay pending until
// settled out of band.
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// OrderItem is a single line of a placed order, frozen at order time.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"` // Display price at the time of order
}

// Order is an immutable record of a placed order. Orders are appended to the
// owning identity's history and never mutated afterwards, except for the
// pending→paid status flip driven by payment confirmation.
type Order struct {
	ID              string         `json:"id"`
	Billing         BillingDetails `json:"billing"`
	PaymentMethod   string         `json:"payment_method"`
	Items           []OrderItem    `json:"items"`
	Total           float64        `json:"total"`
	Status          string         `json:"status"`
	PaymentIntentID string         `json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}
