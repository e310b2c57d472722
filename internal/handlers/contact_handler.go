package handlers

import (
	"errors"
	"log"
	"time"

	"furniro/internal/models"
	"furniro/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Contact submissions are limited per client IP over a rolling window.
const (
	contactRateLimit  = 5
	contactRateWindow = 60 * time.Second
)

// ContactHandler handles HTTP requests for the contact form.
type ContactHandler struct {
	contact *services.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contact *services.ContactService) *ContactHandler {
	return &ContactHandler{
		contact: contact,
	}
}

// RegisterRoutes registers the contact routes with the Fiber app.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	contactRoutes := router.Group("/contact")
	contactRoutes.Post("/", rateLimiter(contactRateLimit, contactRateWindow), h.HandleSubmit)
	contactRoutes.Get("/", h.HandleMethodNotAllowed)
}

// HandleSubmit validates and records a contact-form submission.
func (h *ContactHandler) HandleSubmit(c *fiber.Ctx) error {
	var submission models.ContactSubmission
	if err := c.BodyParser(&submission); err != nil {
		log.Printf("Error parsing contact form body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request data",
		})
	}

	fieldErrors, err := h.contact.Submit(submission)
	if err != nil {
		if errors.Is(err, services.ErrContactValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Validation failed",
				"errors":  fieldErrors,
			})
		}
		log.Printf("Error processing contact form submission: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "An error occurred while processing your request. Please try again later.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Your message has been sent successfully. We'll get back to you soon!",
	})
}

// HandleMethodNotAllowed rejects reads of the contact endpoint.
func (h *ContactHandler) HandleMethodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
		"success": false,
		"message": "Method not allowed. Please use POST.",
	})
}
