package handlers

import (
	"errors"
	"log"

	"furniro/internal/middleware"
	"furniro/internal/models"
	"furniro/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	checkout *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Get("/", h.HandleGetStatus)
	checkoutRoutes.Post("/method", h.HandleSelectMethod)
	checkoutRoutes.Post("/billing", h.HandleUpdateBilling)
	checkoutRoutes.Post("/place-order", h.HandlePlaceOrder)
	checkoutRoutes.Post("/confirm", h.HandleConfirmCardPayment)
}

// HandleGetStatus returns the identity's checkout snapshot, including the
// remote payment-intent state and client secret when ready.
func (h *CheckoutHandler) HandleGetStatus(c *fiber.Ctx) error {
	return c.JSON(h.checkout.Status(middleware.Identity(c)))
}

// SelectMethodRequest represents the request body for a method switch.
type SelectMethodRequest struct {
	Method string `json:"method"`
}

// HandleSelectMethod switches the payment method.
func (h *CheckoutHandler) HandleSelectMethod(c *fiber.Ctx) error {
	var req SelectMethodRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing method selection body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	status, err := h.checkout.SelectMethod(middleware.Identity(c), req.Method)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not select payment method",
			"error":   err.Error(),
		})
	}
	return c.JSON(status)
}

// HandleUpdateBilling replaces the billing record. The record is stored as
// typed; validation runs at order placement, not here.
func (h *CheckoutHandler) HandleUpdateBilling(c *fiber.Ctx) error {
	var billing models.BillingDetails
	if err := c.BodyParser(&billing); err != nil {
		log.Printf("Error parsing billing body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	return c.JSON(h.checkout.UpdateBilling(middleware.Identity(c), billing))
}

// HandlePlaceOrder runs the place-order transition. Card checkouts answer
// 202 and wait for the payment widget's confirmation.
func (h *CheckoutHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	order, fieldErrors, err := h.checkout.PlaceOrder(middleware.Identity(c))
	if err != nil {
		return h.placeOrderError(c, fieldErrors, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully!",
		"order":   order,
	})
}

// ConfirmRequest represents the request body for a card confirmation.
type ConfirmRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

// HandleConfirmCardPayment finalizes a card order after the embedded payment
// widget reports success.
func (h *CheckoutHandler) HandleConfirmCardPayment(c *fiber.Ctx) error {
	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing confirm body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.PaymentIntentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "payment_intent_id is required",
		})
	}

	order, fieldErrors, err := h.checkout.ConfirmCardPayment(middleware.Identity(c), req.PaymentIntentID)
	if err != nil {
		return h.placeOrderError(c, fieldErrors, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully!",
		"order":   order,
	})
}

func (h *CheckoutHandler) placeOrderError(c *fiber.Ctx, fieldErrors map[string]string, err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Your cart is empty",
		})
	case errors.Is(err, services.ErrBillingRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please fill in your billing details",
		})
	case errors.Is(err, services.ErrBillingInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  fieldErrors,
		})
	case errors.Is(err, services.ErrAwaitingCardPayment):
		status := h.checkout.Status(middleware.Identity(c))
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"message":       "Awaiting card payment confirmation",
			"intent_state":  status.IntentState,
			"client_secret": status.ClientSecret,
		})
	}
	log.Printf("Error placing order: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not place order",
		"error":   err.Error(),
	})
}
