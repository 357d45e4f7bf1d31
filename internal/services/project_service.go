package services

import (
	"zipmyproject/internal/models"
	"zipmyproject/internal/repositories"
)

// ProjectService handles business logic for the project catalog.
type ProjectService struct {
	repo repositories.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo repositories.ProjectRepository) *ProjectService {
	return &ProjectService{
		repo: repo,
	}
}

// ListActive retrieves all active projects for the public catalog.
func (s *ProjectService) ListActive() ([]models.Project, error) {
	return s.repo.GetAllActive()
}

// GetActive retrieves a single active project. Inactive and missing projects
// are both not found.
func (s *ProjectService) GetActive(id string) (*models.Project, error) {
	return s.repo.GetActiveByID(id)
}

// Create adds a new project to the catalog.
func (s *ProjectService) Create(project *models.Project) error {
	return s.repo.Create(project)
}

// Update replaces an existing project's fields.
func (s *ProjectService) Update(project *models.Project) error {
	return s.repo.Update(project)
}

// Delete soft-deletes a project so existing ownership grants stay valid.
func (s *ProjectService) Delete(id string) error {
	return s.repo.SoftDelete(id)
}
