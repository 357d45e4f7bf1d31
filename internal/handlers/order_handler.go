package handlers

import (
	"errors"
	"log"

	"zipmyproject/internal/middleware"
	"zipmyproject/internal/repositories"
	"zipmyproject/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for checkout, payment verification and
// downloads.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the authenticated order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/create", h.HandleCreate)
	orderRoutes.Post("/verify", h.HandleVerify)
	orderRoutes.Get("/my-purchases", h.HandleMyPurchases)
	orderRoutes.Get("/download/:projectId", h.HandleDownload)
}

// RegisterAdminRoutes registers the admin order routes.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/orders/admin/all", h.HandleAdminAll)
}

// CreateOrderRequest represents the checkout request body.
type CreateOrderRequest struct {
	ProjectID     string `json:"projectId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=razorpay stripe"`
}

// HandleCreate opens a provider-side payment intent for a project.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create order body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "projectId and a valid paymentMethod are required",
		})
	}

	userID := middleware.UserID(c)
	result, err := h.service.CreateCheckout(userID, req.ProjectID, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		case errors.Is(err, services.ErrAlreadyOwned):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "You already own this project",
			})
		case errors.Is(err, services.ErrUnknownPaymentMethod):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported payment method",
			})
		}
		log.Printf("Error creating order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(result)
}

// VerifyOrderRequest represents the payment verification request body.
type VerifyOrderRequest struct {
	PaymentID     string `json:"paymentId" validate:"required"`
	OrderID       string `json:"orderId"`
	Signature     string `json:"signature"`
	ProjectID     string `json:"projectId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=razorpay stripe"`
}

// HandleVerify confirms a payment with its provider and records the order and
// ownership grant.
func (h *OrderHandler) HandleVerify(c *fiber.Ctx) error {
	var req VerifyOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing verify order body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "paymentId, projectId and a valid paymentMethod are required",
		})
	}

	userID := middleware.UserID(c)
	result, err := h.service.VerifyPayment(userID, services.VerifyInput{
		PaymentID:     req.PaymentID,
		OrderID:       req.OrderID,
		Signature:     req.Signature,
		ProjectID:     req.ProjectID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVerificationFailed):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Payment verification failed",
			})
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		case errors.Is(err, services.ErrAlreadyOwned):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "You already own this project",
			})
		case errors.Is(err, services.ErrUnknownPaymentMethod):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported payment method",
			})
		}
		log.Printf("Error verifying payment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"message":      "Payment successful",
		"downloadLink": result.DownloadLink,
		"orderId":      result.OrderID,
	})
}

// HandleMyPurchases returns the authenticated user's purchase history.
func (h *OrderHandler) HandleMyPurchases(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	purchases, err := h.service.ListPurchases(userID)
	if err != nil {
		log.Printf("Error fetching purchases for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(purchases)
}

// HandleDownload returns the download link for an owned project and bumps the
// download counter.
func (h *OrderHandler) HandleDownload(c *fiber.Ctx) error {
	projectID := c.Params("projectId")
	userID := middleware.UserID(c)

	result, err := h.service.Download(userID, projectID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoAccess):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You do not have access to this project",
			})
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		log.Printf("Error processing download for user %s project %s: %v", userID, projectID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(result)
}

// HandleAdminAll returns every order with joined buyer and project info.
func (h *OrderHandler) HandleAdminAll(c *fiber.Ctx) error {
	orders, err := h.service.AdminOrders()
	if err != nil {
		log.Printf("Error fetching all orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(orders)
}
