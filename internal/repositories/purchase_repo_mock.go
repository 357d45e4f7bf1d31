package repositories

import (
	"sort"
	"sync"
	"time"

	"zipmyproject/internal/models"

	"github.com/google/uuid"
)

// MockPurchaseRepository is an in-memory implementation of PurchaseRepository.
// It resolves join data through the project and user repositories it is
// constructed with, mirroring the SQL joins of the GORM implementation.
type MockPurchaseRepository struct {
	orders      map[string]models.Order
	grants      map[string]models.UserDownload // keyed by userID + "|" + projectID
	projectRepo ProjectRepository
	userRepo    UserRepository
	mu          sync.RWMutex
}

// NewMockPurchaseRepository creates a new instance of MockPurchaseRepository.
func NewMockPurchaseRepository(projectRepo ProjectRepository, userRepo UserRepository) *MockPurchaseRepository {
	return &MockPurchaseRepository{
		orders:      make(map[string]models.Order),
		grants:      make(map[string]models.UserDownload),
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

func grantKey(userID, projectID string) string {
	return userID + "|" + projectID
}

// CreateWithGrant stores the order and its grant together. The grant map key
// doubles as the unique (user, project) constraint.
func (r *MockPurchaseRepository) CreateWithGrant(order *models.Order, grant *models.UserDownload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := grantKey(grant.UserID, grant.ProjectID)
	if _, exists := r.grants[key]; exists {
		return ErrDuplicateGrant
	}

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if grant.ID == "" {
		grant.ID = uuid.New().String()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	grant.OrderID = order.ID
	grant.CreatedAt = now

	r.orders[order.ID] = *order
	r.grants[key] = *grant
	return nil
}

// GetGrant returns the grant for a (user, project) pair.
func (r *MockPurchaseRepository) GetGrant(userID, projectID string) (*models.UserDownload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	grant, ok := r.grants[grantKey(userID, projectID)]
	if !ok {
		return nil, ErrGrantNotFound
	}
	return &grant, nil
}

// RecordDownload increments the download counter on an existing grant.
func (r *MockPurchaseRepository) RecordDownload(userID, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := grantKey(userID, projectID)
	grant, ok := r.grants[key]
	if !ok {
		return ErrGrantNotFound
	}
	now := time.Now()
	grant.DownloadCount++
	grant.LastDownloadedAt = &now
	r.grants[key] = grant
	return nil
}

// ListPurchases returns a user's purchase history, newest first.
func (r *MockPurchaseRepository) ListPurchases(userID string) ([]models.PurchaseSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	purchases := make([]models.PurchaseSummary, 0)
	for _, grant := range r.grants {
		if grant.UserID != userID {
			continue
		}
		order, ok := r.orders[grant.OrderID]
		if !ok {
			continue
		}
		project, err := r.projectRepo.GetByID(grant.ProjectID)
		if err != nil {
			continue
		}
		purchases = append(purchases, models.PurchaseSummary{
			ID:             project.ID,
			Title:          project.Title,
			Thumbnail:      project.ThumbnailURL,
			DownloadLink:   project.DownloadLink,
			PurchaseDate:   order.CreatedAt,
			Amount:         order.Amount,
			DownloadCount:  grant.DownloadCount,
			LastDownloaded: grant.LastDownloadedAt,
		})
	}
	sort.Slice(purchases, func(i, j int) bool {
		return purchases[i].PurchaseDate.After(purchases[j].PurchaseDate)
	})
	return purchases, nil
}

// GetAllOrders returns every order joined with buyer and project info,
// newest first.
func (r *MockPurchaseRepository) GetAllOrders() ([]models.AdminOrderSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]models.AdminOrderSummary, 0, len(r.orders))
	for _, order := range r.orders {
		summary := models.AdminOrderSummary{
			ID:            order.ID,
			Amount:        order.Amount,
			PaymentStatus: order.PaymentStatus,
			PaymentMethod: order.PaymentMethod,
			CreatedAt:     order.CreatedAt,
		}
		if user, err := r.userRepo.GetByID(order.UserID); err == nil {
			summary.User = models.OrderUser{Name: user.Name, Email: user.Email}
		}
		if project, err := r.projectRepo.GetByID(order.ProjectID); err == nil {
			summary.Project = models.OrderProject{Title: project.Title}
		}
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}
