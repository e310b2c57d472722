package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// Bounds applied to payment-intent requests before they reach the provider.
const (
	maxIntentAmount     = 1_000_000 // major units
	maxMetadataPairs    = 20
	maxMetadataKeyLen   = 50
	maxMetadataValueLen = 500
)

// ErrInvalidAmount rejects out-of-bounds payment amounts.
var ErrInvalidAmount = fmt.Errorf("invalid amount: must be between 0.01 and 1,000,000")

// IntentCreator creates a payment intent with the provider. It is a seam so
// tests can run without Stripe credentials.
type IntentCreator func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)

// PaymentService creates payment intents with the card-payment provider.
type PaymentService struct {
	currency string
	create   IntentCreator
}

// NewPaymentService creates a PaymentService backed by the Stripe API.
// currency is the store default, used when a request carries none.
func NewPaymentService(secretKey, currency string) *PaymentService {
	stripe.Key = secretKey
	return &PaymentService{
		currency: currency,
		create: func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
			return paymentintent.New(params)
		},
	}
}

// NewPaymentServiceWithCreator creates a PaymentService with a custom intent
// creator. Used by tests.
func NewPaymentServiceWithCreator(currency string, create IntentCreator) *PaymentService {
	return &PaymentService{
		currency: currency,
		create:   create,
	}
}

// CreateIntent validates and sanitizes the request, creates a payment intent,
// and returns its client secret. Amount is in major units; the provider is
// charged in minor units.
func (s *PaymentService) CreateIntent(amount float64, currency string, metadata map[string]string) (string, error) {
	if math.IsNaN(amount) || amount <= 0 || amount > maxIntentAmount {
		return "", ErrInvalidAmount
	}

	if currency == "" {
		currency = s.currency
	}
	currency = strings.ToLower(currency)
	if len(currency) > 3 {
		currency = currency[:3]
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for key, value := range sanitizeMetadata(metadata) {
		params.AddMetadata(key, value)
	}

	pi, err := s.create(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	if pi == nil || pi.ClientSecret == "" {
		return "", fmt.Errorf("payment provider returned no client secret")
	}
	return pi.ClientSecret, nil
}

// sanitizeMetadata clamps metadata to the provider limits: at most
// maxMetadataPairs entries, keys and values truncated. Keys are selected in
// sorted order so the clamp is deterministic.
func sanitizeMetadata(metadata map[string]string) map[string]string {
	if len(metadata) == 0 {
		return nil
	}

	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > maxMetadataPairs {
		keys = keys[:maxMetadataPairs]
	}

	sanitized := make(map[string]string, len(keys))
	for _, key := range keys {
		value := metadata[key]
		trimmedKey := key
		if len(trimmedKey) > maxMetadataKeyLen {
			trimmedKey = trimmedKey[:maxMetadataKeyLen]
		}
		if len(value) > maxMetadataValueLen {
			value = value[:maxMetadataValueLen]
		}
		sanitized[trimmedKey] = value
	}
	return sanitized
}
