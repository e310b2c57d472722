package services_test

import (
	"fmt"
	"strings"
	"testing"

	"furniro/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v81"
)

// capturingCreator records the params it was called with and answers with a
// fixed client secret.
func capturingCreator(captured **stripe.PaymentIntentParams) services.IntentCreator {
	return func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		*captured = params
		return &stripe.PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
	}
}

func TestPaymentService_CreateIntent(t *testing.T) {
	var captured *stripe.PaymentIntentParams
	payment := services.NewPaymentServiceWithCreator("myr", capturingCreator(&captured))

	secret, err := payment.CreateIntent(2500, "", map[string]string{"identity": "user-a"})
	assert.NoError(t, err)
	assert.Equal(t, "pi_test_secret", secret)
	assert.Equal(t, int64(250000), *captured.Amount)
	assert.Equal(t, "myr", *captured.Currency)
	assert.True(t, *captured.AutomaticPaymentMethods.Enabled)
	assert.Equal(t, "user-a", captured.Metadata["identity"])
}

func TestPaymentService_AmountBounds(t *testing.T) {
	payment := services.NewPaymentServiceWithCreator("myr", func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		t.Fatal("creator must not be called for invalid amounts")
		return nil, nil
	})

	for _, amount := range []float64{0, -10, 1_000_001, 1_500_000} {
		_, err := payment.CreateIntent(amount, "", nil)
		assert.ErrorIs(t, err, services.ErrInvalidAmount, "amount %v", amount)
	}

	// The upper bound itself is allowed.
	var captured *stripe.PaymentIntentParams
	payment = services.NewPaymentServiceWithCreator("myr", capturingCreator(&captured))
	_, err := payment.CreateIntent(1_000_000, "", nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(100_000_000), *captured.Amount)
}

func TestPaymentService_CurrencyNormalization(t *testing.T) {
	var captured *stripe.PaymentIntentParams
	payment := services.NewPaymentServiceWithCreator("myr", capturingCreator(&captured))

	_, err := payment.CreateIntent(100, "USD", nil)
	assert.NoError(t, err)
	assert.Equal(t, "usd", *captured.Currency)

	_, err = payment.CreateIntent(100, "EURO", nil)
	assert.NoError(t, err)
	assert.Equal(t, "eur", *captured.Currency)
}

func TestPaymentService_CentsRounding(t *testing.T) {
	var captured *stripe.PaymentIntentParams
	payment := services.NewPaymentServiceWithCreator("myr", capturingCreator(&captured))

	_, err := payment.CreateIntent(19.99, "", nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(1999), *captured.Amount)

	// 0.1+0.2 style float noise must not shift the charge by a cent.
	_, err = payment.CreateIntent(0.3, "", nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(30), *captured.Amount)
}

func TestPaymentService_MetadataClamp(t *testing.T) {
	var captured *stripe.PaymentIntentParams
	payment := services.NewPaymentServiceWithCreator("myr", capturingCreator(&captured))

	metadata := make(map[string]string)
	for i := 0; i < 30; i++ {
		metadata[fmt.Sprintf("key-%02d", i)] = "value"
	}

	_, err := payment.CreateIntent(100, "", metadata)
	assert.NoError(t, err)
	assert.Len(t, captured.Metadata, 20)
	// The clamp keeps the lowest keys, deterministically.
	assert.Contains(t, captured.Metadata, "key-00")
	assert.Contains(t, captured.Metadata, "key-19")
	assert.NotContains(t, captured.Metadata, "key-20")

	_, err = payment.CreateIntent(100, "", map[string]string{
		"note":                  strings.Repeat("v", 600),
		strings.Repeat("k", 80): "long-key",
	})
	assert.NoError(t, err)
	assert.Len(t, captured.Metadata["note"], 500)
	// Oversized keys are truncated, not dropped.
	assert.Equal(t, "long-key", captured.Metadata[strings.Repeat("k", 50)])
}

func TestPaymentService_ProviderFailures(t *testing.T) {
	payment := services.NewPaymentServiceWithCreator("myr", func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		return nil, fmt.Errorf("stripe is down")
	})
	_, err := payment.CreateIntent(100, "", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create payment intent")

	payment = services.NewPaymentServiceWithCreator("myr", func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		return &stripe.PaymentIntent{ID: "pi_no_secret"}, nil
	})
	_, err = payment.CreateIntent(100, "", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no client secret")
}
