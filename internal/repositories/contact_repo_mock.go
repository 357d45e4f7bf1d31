package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"zipmyproject/internal/models"

	"github.com/google/uuid"
)

// MockContactRepository is an in-memory implementation of ContactRepository.
type MockContactRepository struct {
	messages map[string]models.ContactMessage
	mu       sync.RWMutex
}

// NewMockContactRepository creates a new instance of MockContactRepository.
func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{
		messages: make(map[string]models.ContactMessage),
	}
}

// Create stores a new contact message.
func (r *MockContactRepository) Create(message *models.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	r.messages[message.ID] = *message
	return nil
}

// GetAll returns all contact messages, newest first.
func (r *MockContactRepository) GetAll() ([]models.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	messageList := make([]models.ContactMessage, 0, len(r.messages))
	for _, m := range r.messages {
		messageList = append(messageList, m)
	}
	sort.Slice(messageList, func(i, j int) bool {
		return messageList[i].CreatedAt.After(messageList[j].CreatedAt)
	})
	return messageList, nil
}

// MarkRead flags a contact message as read.
func (r *MockContactRepository) MarkRead(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	message, ok := r.messages[id]
	if !ok {
		return fmt.Errorf("contact message with ID %s: %w", id, ErrNotFound)
	}
	message.IsRead = true
	r.messages[id] = message
	return nil
}
