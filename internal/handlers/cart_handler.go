package handlers

import (
	"log"
	"strings"

	"furniro/internal/middleware"
	"furniro/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the per-identity shopping cart.
type CartHandler struct {
	cart     *services.CartService
	products *services.ProductService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cart *services.CartService, products *services.ProductService) *CartHandler {
	return &CartHandler{
		cart:     cart,
		products: products,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleSetQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
}

func (h *CartHandler) cartResponse(c *fiber.Ctx) error {
	identity := middleware.Identity(c)
	return c.JSON(fiber.Map{
		"items":       h.cart.Lines(identity),
		"total_items": h.cart.TotalItemCount(identity),
		"total_price": h.cart.TotalPrice(identity),
	})
}

// HandleGetCart returns the cart contents and derived totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return h.cartResponse(c)
}

// AddItemRequest represents the request body for adding to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// HandleAddItem adds a product to the cart, merging with an existing line.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}

	product, err := h.products.GetProductByID(req.ProductID)
	if err != nil {
		log.Printf("Error fetching product %s for cart: %v", req.ProductID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add product to cart",
			"error":   err.Error(),
		})
	}

	h.cart.Add(middleware.Identity(c), *product, req.Quantity)
	return h.cartResponse(c)
}

// SetQuantityRequest represents the request body for a quantity update.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleSetQuantity replaces a line's quantity. Zero or below removes the
// line.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quantity update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	h.cart.SetQuantity(middleware.Identity(c), c.Params("id"), req.Quantity)
	return h.cartResponse(c)
}

// HandleRemoveItem drops a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	h.cart.Remove(middleware.Identity(c), c.Params("id"))
	return h.cartResponse(c)
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	h.cart.Clear(middleware.Identity(c))
	return h.cartResponse(c)
}
