package repositories

import (
	"fmt"
	"sort"
	"sync"

	"zipmyproject/internal/models"

	"github.com/google/uuid"
)

// MockProjectRepository is an in-memory implementation of ProjectRepository.
type MockProjectRepository struct {
	projects map[string]models.Project
	mu       sync.RWMutex
}

// NewMockProjectRepository creates a new instance of MockProjectRepository.
func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{
		projects: make(map[string]models.Project),
	}
}

// GetAllActive returns all active projects, newest first.
func (r *MockProjectRepository) GetAllActive() ([]models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projectList := make([]models.Project, 0, len(r.projects))
	for _, p := range r.projects {
		if p.IsActive {
			projectList = append(projectList, p)
		}
	}
	sort.Slice(projectList, func(i, j int) bool {
		return projectList[i].CreatedAt.After(projectList[j].CreatedAt)
	})
	return projectList, nil
}

// GetActiveByID returns an active project by its ID.
func (r *MockProjectRepository) GetActiveByID(id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[id]
	if !ok || !project.IsActive {
		return nil, fmt.Errorf("project with ID %s: %w", id, ErrNotFound)
	}
	return &project, nil
}

// GetByID returns a project by its ID regardless of the active flag.
func (r *MockProjectRepository) GetByID(id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project with ID %s: %w", id, ErrNotFound)
	}
	return &project, nil
}

// Create adds a new project.
func (r *MockProjectRepository) Create(project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	project.IsActive = true
	r.projects[project.ID] = *project
	return nil
}

// Update modifies an existing project.
func (r *MockProjectRepository) Update(project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.projects[project.ID]
	if !ok {
		return fmt.Errorf("project with ID %s not found for update: %w", project.ID, ErrNotFound)
	}
	project.IsActive = existing.IsActive
	project.CreatedAt = existing.CreatedAt
	r.projects[project.ID] = *project
	return nil
}

// SoftDelete marks a project inactive.
func (r *MockProjectRepository) SoftDelete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	project, ok := r.projects[id]
	if !ok {
		return fmt.Errorf("project with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	project.IsActive = false
	r.projects[id] = project
	return nil
}
