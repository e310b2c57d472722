package middleware

import (
	"log"
	"strings"

	"furniro/internal/services"

	"github.com/gofiber/fiber/v2"
)

// IdentityKey is the Locals key carrying the resolved identity ID. An empty
// value means the anonymous guest bucket.
const IdentityKey = "identity_id"

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		tokenString := parts[1]

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		// Store claims in Fiber context for subsequent handlers
		c.Locals(IdentityKey, claims["user_id"])
		c.Locals("email", claims["email"])

		// Continue to the next handler
		return c.Next()
	}
}

// ResolveIdentity populates the identity for storefront routes. Unlike
// AuthRequired, a missing or invalid token falls back to the guest bucket
// instead of rejecting, so anonymous customers keep a cart and wishlist.
func ResolveIdentity(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(IdentityKey, "")

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Next()
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return c.Next()
		}
		if id, ok := claims["user_id"].(string); ok {
			c.Locals(IdentityKey, id)
		}
		return c.Next()
	}
}

// Identity extracts the resolved identity ID from the request context.
func Identity(c *fiber.Ctx) string {
	if id, ok := c.Locals(IdentityKey).(string); ok {
		return id
	}
	return ""
}
