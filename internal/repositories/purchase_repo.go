package repositories

import (
	"errors"

	"zipmyproject/internal/models"
)

// ErrGrantNotFound is returned when no ownership grant exists for a
// (user, project) pair.
var ErrGrantNotFound = errors.New("ownership grant not found")

// ErrDuplicateGrant is returned when a grant for the same (user, project)
// pair already exists. The storage layer enforces this with a unique index,
// so two concurrent verifications cannot both succeed.
var ErrDuplicateGrant = errors.New("ownership grant already exists")

// PurchaseRepository defines the interface for order and ownership-grant data
// access. Orders and grants are written together: CreateWithGrant persists
// both rows in a single transaction, so a crash can never leave a paid user
// without their grant.
type PurchaseRepository interface {
	CreateWithGrant(order *models.Order, grant *models.UserDownload) error
	GetGrant(userID, projectID string) (*models.UserDownload, error)
	RecordDownload(userID, projectID string) error
	ListPurchases(userID string) ([]models.PurchaseSummary, error)
	GetAllOrders() ([]models.AdminOrderSummary, error)
}
