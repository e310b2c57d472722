package handlers

import (
	"furniro/internal/middleware"
	"furniro/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for the per-identity order history.
type OrderHandler struct {
	orders *services.OrderHistoryService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders *services.OrderHistoryService) *OrderHandler {
	return &OrderHandler{
		orders: orders,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
}

// HandleGetOrders returns the identity's order history, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"orders": h.orders.List(middleware.Identity(c)),
	})
}
