package handlers

import (
	"errors"
	"log"

	"zipmyproject/internal/models"
	"zipmyproject/internal/repositories"
	"zipmyproject/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles HTTP requests for contact messages.
type ContactHandler struct {
	service  *services.ContactService
	validate *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the public contact form route.
func (h *ContactHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Post("/contact", h.HandleSubmit)
}

// RegisterAdminRoutes registers the admin inbox routes.
func (h *ContactHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/contact/admin/all", h.HandleAdminAll)
	router.Put("/contact/:id/read", h.HandleMarkRead)
}

// HandleSubmit stores a contact-form submission. All four fields are
// required; nothing is written on rejection.
func (h *ContactHandler) HandleSubmit(c *fiber.Ctx) error {
	var message models.ContactMessage
	if err := c.BodyParser(&message); err != nil {
		log.Printf("Error parsing contact body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(message); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "All fields are required",
		})
	}

	if err := h.service.Submit(&message); err != nil {
		log.Printf("Error saving contact message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Message sent successfully",
	})
}

// HandleAdminAll returns every contact message, newest first.
func (h *ContactHandler) HandleAdminAll(c *fiber.Ctx) error {
	messages, err := h.service.ListAll()
	if err != nil {
		log.Printf("Error fetching contact messages: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(messages)
}

// HandleMarkRead flags a contact message as read.
func (h *ContactHandler) HandleMarkRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.MarkRead(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Message not found",
			})
		}
		log.Printf("Error marking message %s as read: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Message marked as read",
	})
}
