package services_test

import (
	"fmt"
	"testing"

	"zipmyproject/internal/models"
	"zipmyproject/internal/repositories"
	"zipmyproject/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockContactRepository is a mock implementation of repositories.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(message *models.ContactMessage) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockContactRepository) GetAll() ([]models.ContactMessage, error) {
	args := m.Called()
	return args.Get(0).([]models.ContactMessage), args.Error(1)
}

func (m *MockContactRepository) MarkRead(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestContactService_Submit(t *testing.T) {
	mockRepo := new(MockContactRepository)
	service := services.NewContactService(mockRepo)

	message := &models.ContactMessage{
		Name:    "Asha",
		Email:   "asha@example.com",
		Subject: "Custom project request",
		Message: "Can you build a hostel management system?",
	}

	mockRepo.On("Create", message).Return(nil).Once()
	err := service.Submit(message)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestContactService_ListAll(t *testing.T) {
	mockRepo := new(MockContactRepository)
	service := services.NewContactService(mockRepo)

	expected := []models.ContactMessage{
		{ID: "1", Name: "Asha", Subject: "Hi"},
		{ID: "2", Name: "Ravi", Subject: "Question", IsRead: true},
	}
	mockRepo.On("GetAll").Return(expected, nil).Once()

	messages, err := service.ListAll()
	assert.NoError(t, err)
	assert.Equal(t, expected, messages)
	mockRepo.AssertExpectations(t)
}

func TestContactService_MarkRead(t *testing.T) {
	mockRepo := new(MockContactRepository)
	service := services.NewContactService(mockRepo)

	mockRepo.On("MarkRead", "1").Return(nil).Once()
	assert.NoError(t, service.MarkRead("1"))

	mockRepo.On("MarkRead", "99").Return(fmt.Errorf("message %w", repositories.ErrNotFound)).Once()
	err := service.MarkRead("99")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
