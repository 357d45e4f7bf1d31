package repositories

import (
	"fmt"

	"zipmyproject/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{
		db: db,
	}
}

// Create stores a new contact message.
func (r *GORMContactRepository) Create(message *models.ContactMessage) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

// GetAll retrieves all contact messages, newest first.
func (r *GORMContactRepository) GetAll() ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := r.db.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to get contact messages: %w", err)
	}
	return messages, nil
}

// MarkRead flags a contact message as read.
func (r *GORMContactRepository) MarkRead(id string) error {
	res := r.db.Model(&models.ContactMessage{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark message as read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact message with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
