package handlers

import (
	"log"
	"strings"

	"furniro/internal/middleware"
	"furniro/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles HTTP requests for the per-identity wishlist.
type WishlistHandler struct {
	wishlist *services.WishlistService
	products *services.ProductService
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(wishlist *services.WishlistService, products *services.ProductService) *WishlistHandler {
	return &WishlistHandler{
		wishlist: wishlist,
		products: products,
	}
}

// RegisterRoutes registers the wishlist routes with the Fiber app.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router) {
	wishlistRoutes := router.Group("/wishlist")
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Delete("/", h.HandleClearWishlist)
	wishlistRoutes.Post("/items", h.HandleAddItem)
	wishlistRoutes.Get("/items/:id", h.HandleContains)
	wishlistRoutes.Delete("/items/:id", h.HandleRemoveItem)
}

// HandleGetWishlist returns the wishlist contents.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items": h.wishlist.Items(middleware.Identity(c)),
	})
}

// WishlistAddRequest represents the request body for a wishlist add.
type WishlistAddRequest struct {
	ProductID string `json:"product_id"`
}

// HandleAddItem puts a product on the wishlist; re-adding is a no-op.
func (h *WishlistHandler) HandleAddItem(c *fiber.Ctx) error {
	var req WishlistAddRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing wishlist add body: %v", err)
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
		log.Printf("Error fetching product %s for wishlist: %v", req.ProductID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add product to wishlist",
			"error":   err.Error(),
		})
	}

	items := h.wishlist.Add(middleware.Identity(c), *product)
	return c.JSON(fiber.Map{"items": items})
}

// HandleContains reports whether the wishlist holds a product.
func (h *WishlistHandler) HandleContains(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"in_wishlist": h.wishlist.Contains(middleware.Identity(c), c.Params("id")),
	})
}

// HandleRemoveItem drops a product from the wishlist.
func (h *WishlistHandler) HandleRemoveItem(c *fiber.Ctx) error {
	items := h.wishlist.Remove(middleware.Identity(c), c.Params("id"))
	return c.JSON(fiber.Map{"items": items})
}

// HandleClearWishlist empties the wishlist.
func (h *WishlistHandler) HandleClearWishlist(c *fiber.Ctx) error {
	h.wishlist.Clear(middleware.Identity(c))
	return c.JSON(fiber.Map{"items": []interface{}{}})
}
