package services

import (
	"zipmyproject/internal/models"
	"zipmyproject/internal/repositories"
)

// ContactService handles contact-form submissions and the admin inbox.
type ContactService struct {
	repo repositories.ContactRepository
}

// NewContactService creates a new ContactService.
func NewContactService(repo repositories.ContactRepository) *ContactService {
	return &ContactService{
		repo: repo,
	}
}

// Submit stores a new contact message.
func (s *ContactService) Submit(message *models.ContactMessage) error {
	return s.repo.Create(message)
}

// ListAll returns all contact messages, newest first.
func (s *ContactService) ListAll() ([]models.ContactMessage, error) {
	return s.repo.GetAll()
}

// MarkRead flags a message as read.
func (s *ContactService) MarkRead(id string) error {
	return s.repo.MarkRead(id)
}
