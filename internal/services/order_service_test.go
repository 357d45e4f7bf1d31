package services_test

import (
	"fmt"
	"testing"

	"zipmyproject/internal/models"
	"zipmyproject/internal/payments"
	"zipmyproject/internal/repositories"
	"zipmyproject/internal/services"
	"zipmyproject/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPurchaseRepository is a mock implementation of repositories.PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) CreateWithGrant(order *models.Order, grant *models.UserDownload) error {
	args := m.Called(order, grant)
	return args.Error(0)
}

func (m *MockPurchaseRepository) GetGrant(userID, projectID string) (*models.UserDownload, error) {
	args := m.Called(userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserDownload), args.Error(1)
}

func (m *MockPurchaseRepository) RecordDownload(userID, projectID string) error {
	args := m.Called(userID, projectID)
	return args.Error(0)
}

func (m *MockPurchaseRepository) ListPurchases(userID string) ([]models.PurchaseSummary, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.PurchaseSummary), args.Error(1)
}

func (m *MockPurchaseRepository) GetAllOrders() ([]models.AdminOrderSummary, error) {
	args := m.Called()
	return args.Get(0).([]models.AdminOrderSummary), args.Error(1)
}

// MockPublisher is a mock implementation of services.PurchaseEventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishPurchaseCompleted(event rabbitmq.PurchaseEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func grantNotFound() error {
	return fmt.Errorf("grant for user: %w", repositories.ErrGrantNotFound)
}

func testProject() *models.Project {
	return &models.Project{
		ID:           "proj-1",
		Title:        "Library Management System",
		Price:        2999,
		DownloadLink: "https://cdn.example.com/lms.zip",
		IsActive:     true,
	}
}

func TestOrderService_CreateCheckout(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	projectRepo := new(MockProjectRepository)
	gateway := payments.NewMockGateway("razorpay")
	service := services.NewOrderService(purchaseRepo, projectRepo, []payments.Gateway{gateway}, nil)

	// Successful checkout: amount sent to the gateway is paise, the echoed
	// price is rupees.
	projectRepo.On("GetActiveByID", "proj-1").Return(testProject(), nil).Once()
	purchaseRepo.On("GetGrant", "user-1", "proj-1").Return(nil, grantNotFound()).Once()

	result, err := service.CreateCheckout("user-1", "proj-1", "razorpay")
	assert.NoError(t, err)
	assert.Equal(t, "proj-1", result.Project.ID)
	assert.Equal(t, 2999.0, result.Project.Price)
	assert.NotEmpty(t, result.Payment.OrderID)
	assert.Equal(t, 2999.0, result.Payment.Amount)
	assert.Equal(t, "INR", result.Payment.Currency)
	purchaseRepo.AssertExpectations(t)
	projectRepo.AssertExpectations(t)

	// Unknown payment method: no repo calls at all.
	_, err = service.CreateCheckout("user-1", "proj-1", "paypal")
	assert.ErrorIs(t, err, services.ErrUnknownPaymentMethod)

	// Inactive or missing project.
	projectRepo.On("GetActiveByID", "proj-99").Return(nil, fmt.Errorf("project %w", repositories.ErrNotFound)).Once()
	_, err = service.CreateCheckout("user-1", "proj-99", "razorpay")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	projectRepo.AssertExpectations(t)

	// Already owned: checkout refused before any gateway call.
	projectRepo.On("GetActiveByID", "proj-1").Return(testProject(), nil).Once()
	purchaseRepo.On("GetGrant", "user-1", "proj-1").Return(&models.UserDownload{UserID: "user-1", ProjectID: "proj-1"}, nil).Once()
	_, err = service.CreateCheckout("user-1", "proj-1", "razorpay")
	assert.ErrorIs(t, err, services.ErrAlreadyOwned)
	purchaseRepo.AssertExpectations(t)

	// Gateway failure is propagated.
	gateway.FailCreate = true
	projectRepo.On("GetActiveByID", "proj-1").Return(testProject(), nil).Once()
	purchaseRepo.On("GetGrant", "user-1", "proj-1").Return(nil, grantNotFound()).Once()
	_, err = service.CreateCheckout("user-1", "proj-1", "razorpay")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create payment intent")
}

func TestOrderService_CreateCheckout_FractionalPrice(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	projectRepo := new(MockProjectRepository)
	gateway := payments.NewMockGateway("razorpay")
	service := services.NewOrderService(purchaseRepo, projectRepo, []payments.Gateway{gateway}, nil)

	project := testProject()
	project.Price = 1999.99
	projectRepo.On("GetActiveByID", "proj-1").Return(project, nil).Once()
	purchaseRepo.On("GetGrant", "user-1", "proj-1").Return(nil, grantNotFound()).Once()

	result, err := service.CreateCheckout("user-1", "proj-1", "razorpay")
	assert.NoError(t, err)
	// 1999.99 rupees rounds to exactly 199999 paise; the mock echoes
	// minor-units/100 and the service overwrites it with the catalog price.
	assert.Equal(t, 1999.99, result.Payment.Amount)
}

func TestOrderService_VerifyPayment(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	projectRepo := new(MockProjectRepository)
	gateway := payments.NewMockGateway("razorpay")
	publisher := new(MockPublisher)
	service := services.NewOrderService(purchaseRepo, projectRepo, []payments.Gateway{gateway}, publisher)

	input := services.VerifyInput{
		PaymentID:     "pay_1",
		OrderID:       "order_1",
		Signature:     "sig",
		ProjectID:     "proj-1",
		PaymentMethod: "razorpay",
	}

	// Successful verification writes order and grant together and publishes
	// an event carrying the catalog price.
	projectRepo.On("GetByID", "proj-1").Return(testProject(), nil).Once()
	purchaseRepo.On("CreateWithGrant", mock.AnythingOfType("*models.Order"), mock.AnythingOfType("*models.UserDownload")).
		Run(func(args mock.Arguments) {
			order := args.Get(0).(*models.Order)
			grant := args.Get(1).(*models.UserDownload)
			order.ID = "order-row-1"
			assert.Equal(t, "user-1", order.UserID)
			assert.Equal(t, 2999.0, order.Amount)
			assert.Equal(t, models.PaymentStatusCompleted, order.PaymentStatus)
			assert.Equal(t, "pay_1", order.PaymentID)
			assert.Equal(t, "user-1", grant.UserID)
			assert.Equal(t, "proj-1", grant.ProjectID)
		}).Return(nil).Once()
	publisher.On("PublishPurchaseCompleted", mock.AnythingOfType("rabbitmq.PurchaseEvent")).
		Run(func(args mock.Arguments) {
			event := args.Get(0).(rabbitmq.PurchaseEvent)
			assert.Equal(t, "order-row-1", event.OrderID)
			assert.Equal(t, 2999.0, event.Amount)
		}).Return(nil).Once()

	result, err := service.VerifyPayment("user-1", input)
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/lms.zip", result.DownloadLink)
	assert.Equal(t, "order-row-1", result.OrderID)
	purchaseRepo.AssertExpectations(t)
	projectRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)

	// Failed verification: the service bails before touching the repos, which
	// would otherwise panic on an unexpected mock call.
	gateway.Valid = false
	_, err = service.VerifyPayment("user-1", input)
	assert.ErrorIs(t, err, services.ErrVerificationFailed)
	gateway.Valid = true

	// Unknown payment method.
	badMethod := input
	badMethod.PaymentMethod = "paypal"
	_, err = service.VerifyPayment("user-1", badMethod)
	assert.ErrorIs(t, err, services.ErrUnknownPaymentMethod)

	// Concurrent duplicate: the unique-index violation surfaces as
	// ErrAlreadyOwned.
	projectRepo.On("GetByID", "proj-1").Return(testProject(), nil).Once()
	purchaseRepo.On("CreateWithGrant", mock.Anything, mock.Anything).
		Return(fmt.Errorf("grant: %w", repositories.ErrDuplicateGrant)).Once()
	_, err = service.VerifyPayment("user-1", input)
	assert.ErrorIs(t, err, services.ErrAlreadyOwned)
	purchaseRepo.AssertExpectations(t)
}

func TestOrderService_VerifyPayment_PublisherFailureTolerated(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	projectRepo := new(MockProjectRepository)
	gateway := payments.NewMockGateway("razorpay")
	publisher := new(MockPublisher)
	service := services.NewOrderService(purchaseRepo, projectRepo, []payments.Gateway{gateway}, publisher)

	projectRepo.On("GetByID", "proj-1").Return(testProject(), nil).Once()
	purchaseRepo.On("CreateWithGrant", mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("PublishPurchaseCompleted", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	// A dead broker must not fail a paid purchase.
	result, err := service.VerifyPayment("user-1", services.VerifyInput{
		PaymentID:     "pay_1",
		ProjectID:     "proj-1",
		PaymentMethod: "razorpay",
	})
	assert.NoError(t, err)
	assert.NotNil(t, result)
	publisher.AssertExpectations(t)
}

func TestOrderService_Download(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	projectRepo := new(MockProjectRepository)
	service := services.NewOrderService(purchaseRepo, projectRepo, nil, nil)

	// Granted download returns the live link and bumps the counter.
	purchaseRepo.On("GetGrant", "user-1", "proj-1").Return(&models.UserDownload{UserID: "user-1", ProjectID: "proj-1"}, nil).Once()
	projectRepo.On("GetByID", "proj-1").Return(testProject(), nil).Once()
	purchaseRepo.On("RecordDownload", "user-1", "proj-1").Return(nil).Once()

	result, err := service.Download("user-1", "proj-1")
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/lms.zip", result.DownloadLink)
	assert.Equal(t, "Library Management System", result.ProjectTitle)
	purchaseRepo.AssertExpectations(t)
	projectRepo.AssertExpectations(t)

	// No grant: access denied, no counter bump.
	purchaseRepo.On("GetGrant", "user-2", "proj-1").Return(nil, grantNotFound()).Once()
	_, err = service.Download("user-2", "proj-1")
	assert.ErrorIs(t, err, services.ErrNoAccess)
	purchaseRepo.AssertNotCalled(t, "RecordDownload", "user-2", "proj-1")
	purchaseRepo.AssertExpectations(t)
}

func TestOrderService_ListPurchases(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	projectRepo := new(MockProjectRepository)
	service := services.NewOrderService(purchaseRepo, projectRepo, nil, nil)

	expected := []models.PurchaseSummary{
		{ID: "proj-1", Title: "Library Management System", DownloadCount: 2},
	}
	purchaseRepo.On("ListPurchases", "user-1").Return(expected, nil).Once()

	purchases, err := service.ListPurchases("user-1")
	assert.NoError(t, err)
	assert.Equal(t, expected, purchases)
	purchaseRepo.AssertExpectations(t)
}

func TestOrderService_AdminOrders(t *testing.T) {
	purchaseRepo := new(MockPurchaseRepository)
	projectRepo := new(MockProjectRepository)
	service := services.NewOrderService(purchaseRepo, projectRepo, nil, nil)

	expected := []models.AdminOrderSummary{
		{ID: "order-1", Amount: 2999, PaymentMethod: "razorpay"},
	}
	purchaseRepo.On("GetAllOrders").Return(expected, nil).Once()

	orders, err := service.AdminOrders()
	assert.NoError(t, err)
	assert.Equal(t, expected, orders)
	purchaseRepo.AssertExpectations(t)
}
