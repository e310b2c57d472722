package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"furniro/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/stripe/stripe-go/v81"
)

// Payment-intent creation is limited per client IP over a rolling window.
const (
	paymentRateLimit  = 10
	paymentRateWindow = 60 * time.Second
)

// PaymentHandler handles HTTP requests for payment intents and the
// provider's webhook.
type PaymentHandler struct {
	payment  *services.PaymentService
	checkout *services.CheckoutService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(payment *services.PaymentService, checkout *services.CheckoutService) *PaymentHandler {
	return &PaymentHandler{
		payment:  payment,
		checkout: checkout,
	}
}

// RegisterRoutes registers the payment routes with the Fiber app.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	paymentRoutes := router.Group("/payment")
	paymentRoutes.Post("/intent", rateLimiter(paymentRateLimit, paymentRateWindow), h.HandleCreateIntent)
	paymentRoutes.Post("/webhook", h.HandleWebhook)
}

// rateLimiter builds a sliding-window per-IP limiter answering 429 in the
// API's JSON error shape.
func rateLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests. Please try again later.",
			})
		},
	})
}

// IntentRequest represents the request body for payment-intent creation.
// Amount is in major units.
type IntentRequest struct {
	Amount   float64           `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

// HandleCreateIntent validates the request and returns the provider's client
// secret.
func (h *PaymentHandler) HandleCreateIntent(c *fiber.Ctx) error {
	var req IntentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing payment intent body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	secret, err := h.payment.CreateIntent(req.Amount, req.Currency, req.Metadata)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid amount. Must be between 0.01 and 1,000,000",
			})
		}
		log.Printf("Error creating payment intent: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create payment intent",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"clientSecret": secret,
	})
}

// HandleWebhook processes provider events. A payment_intent.succeeded event
// flips the matching pending order to paid; everything else is acknowledged
// and ignored.
func (h *PaymentHandler) HandleWebhook(c *fiber.Ctx) error {
	var event stripe.Event
	if err := json.Unmarshal(c.Body(), &event); err != nil {
		log.Printf("Error parsing webhook event: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid webhook payload",
			"error":   err.Error(),
		})
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var paymentIntent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
			log.Printf("Error parsing payment intent from webhook: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid payment intent payload",
				"error":   err.Error(),
			})
		}

		if paymentIntent.ID == "" {
			log.Printf("Rejecting payment_intent.succeeded event with no intent ID")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Missing payment intent ID",
			})
		}

		identity := paymentIntent.Metadata["identity"]
		if err := h.checkout.HandlePaymentSucceeded(identity, paymentIntent.ID); err != nil {
			log.Printf("Error confirming payment %s: %v", paymentIntent.ID, err)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No matching order for payment intent",
			})
		}
		log.Printf("Payment intent %s confirmed for identity %q", paymentIntent.ID, identity)
	default:
		log.Printf("Ignoring webhook event type %s", event.Type)
	}

	return c.JSON(fiber.Map{"received": true})
}
