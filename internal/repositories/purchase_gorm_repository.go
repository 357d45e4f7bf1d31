package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"zipmyproject/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPurchaseRepository is a GORM implementation of PurchaseRepository.
type GORMPurchaseRepository struct {
	db *gorm.DB
}

// NewGORMPurchaseRepository creates a new instance of GORMPurchaseRepository.
func NewGORMPurchaseRepository(db *gorm.DB) *GORMPurchaseRepository {
	return &GORMPurchaseRepository{
		db: db,
	}
}

// CreateWithGrant inserts the order row and its ownership grant in one
// transaction. Either both rows land or neither does. A concurrent grant for
// the same (user, project) pair trips the unique index and rolls the whole
// transaction back, surfaced as ErrDuplicateGrant.
func (r *GORMPurchaseRepository) CreateWithGrant(order *models.Order, grant *models.UserDownload) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if grant.ID == "" {
		grant.ID = uuid.New().String()
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		grant.OrderID = order.ID
		if err := tx.Create(grant).Error; err != nil {
			return fmt.Errorf("failed to create ownership grant: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return ErrDuplicateGrant
		}
		return err
	}
	return nil
}

// GetGrant retrieves the ownership grant for a (user, project) pair.
func (r *GORMPurchaseRepository) GetGrant(userID, projectID string) (*models.UserDownload, error) {
	var grant models.UserDownload
	err := r.db.First(&grant, "user_id = ? AND project_id = ?", userID, projectID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGrantNotFound
		}
		return nil, fmt.Errorf("failed to get grant for user %s project %s: %w", userID, projectID, err)
	}
	return &grant, nil
}

// RecordDownload bumps the download counter and stamps the download time on
// an existing grant.
func (r *GORMPurchaseRepository) RecordDownload(userID, projectID string) error {
	res := r.db.Model(&models.UserDownload{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Updates(map[string]interface{}{
			"download_count":     gorm.Expr("download_count + 1"),
			"last_downloaded_at": time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to record download: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrGrantNotFound
	}
	return nil
}

// ListPurchases returns a user's purchase history, newest purchase first.
// The download link is resolved from the live project row.
func (r *GORMPurchaseRepository) ListPurchases(userID string) ([]models.PurchaseSummary, error) {
	var purchases []models.PurchaseSummary
	err := r.db.Table("user_downloads AS ud").
		Select("p.id AS id, p.title AS title, p.thumbnail_url AS thumbnail, p.download_link AS download_link, " +
			"o.created_at AS purchase_date, o.amount AS amount, " +
			"ud.download_count AS download_count, ud.last_downloaded_at AS last_downloaded").
		Joins("JOIN projects p ON ud.project_id = p.id").
		Joins("JOIN orders o ON ud.order_id = o.id").
		Where("ud.user_id = ?", userID).
		Order("o.created_at DESC").
		Scan(&purchases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases for user %s: %w", userID, err)
	}
	return purchases, nil
}

// GetAllOrders returns every order joined with buyer and project info,
// newest first.
func (r *GORMPurchaseRepository) GetAllOrders() ([]models.AdminOrderSummary, error) {
	var orders []models.AdminOrderSummary
	err := r.db.Table("orders AS o").
		Select("o.id AS id, o.amount AS amount, o.payment_status AS payment_status, " +
			"o.payment_method AS payment_method, o.created_at AS created_at, " +
			"u.name AS name, u.email AS email, p.title AS title").
		Joins("JOIN users u ON o.user_id = u.id").
		Joins("JOIN projects p ON o.project_id = p.id").
		Order("o.created_at DESC").
		Scan(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list all orders: %w", err)
	}
	return orders, nil
}

// isUniqueViolation sniffs driver-specific unique constraint errors that GORM
// does not translate to ErrDuplicatedKey (sqlite in tests, older postgres
// driver paths).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
