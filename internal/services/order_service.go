package services

import (
	"errors"
	"fmt"
	"log"
	"math"

	"zipmyproject/internal/models"
	"zipmyproject/internal/payments"
	"zipmyproject/internal/repositories"
	"zipmyproject/pkg/rabbitmq"
)

// ErrAlreadyOwned is returned when the user already holds an ownership grant
// for the project, either at checkout or when a concurrent verification won.
var ErrAlreadyOwned = errors.New("project already owned")

// ErrUnknownPaymentMethod is returned for a payment method tag no configured
// gateway answers for.
var ErrUnknownPaymentMethod = errors.New("unknown payment method")

// ErrVerificationFailed is returned whenever a payment cannot be confirmed.
// Failed payments and tampered requests produce the same error.
var ErrVerificationFailed = errors.New("payment verification failed")

// ErrNoAccess is returned when a download is requested without an ownership
// grant.
var ErrNoAccess = errors.New("no access to this project")

// PurchaseEventPublisher publishes completed-purchase events. Satisfied by
// *rabbitmq.Client; nil publishers are tolerated.
type PurchaseEventPublisher interface {
	PublishPurchaseCompleted(event rabbitmq.PurchaseEvent) error
}

// OrderService orchestrates the purchase lifecycle: open a provider-side
// payment intent, verify its completion, persist the order and ownership
// grant, and gate downloads on the grant.
type OrderService struct {
	purchaseRepo repositories.PurchaseRepository
	projectRepo  repositories.ProjectRepository
	gateways     map[string]payments.Gateway
	events       PurchaseEventPublisher
}

// NewOrderService creates a new OrderService. The gateways are keyed by their
// method tag; events may be nil.
func NewOrderService(purchaseRepo repositories.PurchaseRepository, projectRepo repositories.ProjectRepository, gateways []payments.Gateway, events PurchaseEventPublisher) *OrderService {
	byMethod := make(map[string]payments.Gateway, len(gateways))
	for _, g := range gateways {
		byMethod[g.Method()] = g
	}
	return &OrderService{
		purchaseRepo: purchaseRepo,
		projectRepo:  projectRepo,
		gateways:     byMethod,
		events:       events,
	}
}

// CheckoutProject is the project snapshot echoed back at checkout.
type CheckoutProject struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// CheckoutResult is what the client needs to drive the provider's payment UI.
type CheckoutResult struct {
	Project CheckoutProject      `json:"project"`
	Payment *payments.ClientData `json:"payment"`
}

// CreateCheckout opens a payment intent for an active, not-yet-owned project.
// Nothing is written locally; an abandoned checkout leaves no trace.
func (s *OrderService) CreateCheckout(userID, projectID, paymentMethod string) (*CheckoutResult, error) {
	gateway, ok := s.gateways[paymentMethod]
	if !ok {
		return nil, ErrUnknownPaymentMethod
	}

	project, err := s.projectRepo.GetActiveByID(projectID)
	if err != nil {
		return nil, err
	}

	// Duplicate-purchase guard: one grant per user/project pair.
	if _, err := s.purchaseRepo.GetGrant(userID, projectID); err == nil {
		return nil, ErrAlreadyOwned
	} else if !errors.Is(err, repositories.ErrGrantNotFound) {
		return nil, fmt.Errorf("failed to check ownership: %w", err)
	}

	clientData, err := gateway.CreateIntent(payments.IntentRequest{
		AmountMinor:  int64(math.Round(project.Price * 100)),
		Currency:     "INR",
		ProjectID:    project.ID,
		ProjectTitle: project.Title,
		UserID:       userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	clientData.Amount = project.Price

	return &CheckoutResult{
		Project: CheckoutProject{ID: project.ID, Title: project.Title, Price: project.Price},
		Payment: clientData,
	}, nil
}

// VerifyInput is the client-supplied completion proof for one purchase attempt.
type VerifyInput struct {
	PaymentID     string
	OrderID       string
	Signature     string
	ProjectID     string
	PaymentMethod string
}

// VerifyResult reports a recorded purchase.
type VerifyResult struct {
	DownloadLink string
	OrderID      string
}

// VerifyPayment confirms the payment with the provider, then records the
// order and its ownership grant in one transaction. The amount written is the
// live project price, never a client-supplied figure.
func (s *OrderService) VerifyPayment(userID string, in VerifyInput) (*VerifyResult, error) {
	gateway, ok := s.gateways[in.PaymentMethod]
	if !ok {
		return nil, ErrUnknownPaymentMethod
	}

	valid, err := gateway.VerifyPayment(payments.VerifyRequest{
		PaymentID: in.PaymentID,
		OrderID:   in.OrderID,
		Signature: in.Signature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify payment: %w", err)
	}
	if !valid {
		return nil, ErrVerificationFailed
	}

	// Re-fetch the project so the recorded amount and returned link come from
	// our own store. Sold projects may have gone inactive since checkout; the
	// grant is still honored.
	project, err := s.projectRepo.GetByID(in.ProjectID)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:        userID,
		ProjectID:     project.ID,
		Amount:        project.Price,
		PaymentID:     in.PaymentID,
		PaymentStatus: models.PaymentStatusCompleted,
		PaymentMethod: in.PaymentMethod,
	}
	grant := &models.UserDownload{
		UserID:    userID,
		ProjectID: project.ID,
	}
	if err := s.purchaseRepo.CreateWithGrant(order, grant); err != nil {
		if errors.Is(err, repositories.ErrDuplicateGrant) {
			return nil, ErrAlreadyOwned
		}
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	if s.events != nil {
		event := rabbitmq.PurchaseEvent{
			OrderID:       order.ID,
			UserID:        userID,
			ProjectID:     project.ID,
			ProjectTitle:  project.Title,
			Amount:        order.Amount,
			PaymentMethod: in.PaymentMethod,
		}
		if err := s.events.PublishPurchaseCompleted(event); err != nil {
			log.Printf("Warning: failed to publish purchase event for order %s: %v", order.ID, err)
		}
	}

	return &VerifyResult{
		DownloadLink: project.DownloadLink,
		OrderID:      order.ID,
	}, nil
}

// DownloadResult carries the externally hosted asset link for a download.
type DownloadResult struct {
	DownloadLink string `json:"downloadLink"`
	ProjectTitle string `json:"projectTitle"`
}

// Download authorizes a download by grant existence alone, bumps the counter,
// and returns the live download link.
func (s *OrderService) Download(userID, projectID string) (*DownloadResult, error) {
	if _, err := s.purchaseRepo.GetGrant(userID, projectID); err != nil {
		if errors.Is(err, repositories.ErrGrantNotFound) {
			return nil, ErrNoAccess
		}
		return nil, fmt.Errorf("failed to check access: %w", err)
	}

	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.RecordDownload(userID, projectID); err != nil {
		return nil, fmt.Errorf("failed to record download: %w", err)
	}

	return &DownloadResult{
		DownloadLink: project.DownloadLink,
		ProjectTitle: project.Title,
	}, nil
}

// ListPurchases returns the user's purchase history, newest first.
func (s *OrderService) ListPurchases(userID string) ([]models.PurchaseSummary, error) {
	return s.purchaseRepo.ListPurchases(userID)
}

// AdminOrders returns all orders joined with buyer and project info.
func (s *OrderService) AdminOrders() ([]models.AdminOrderSummary, error) {
	return s.purchaseRepo.GetAllOrders()
}
