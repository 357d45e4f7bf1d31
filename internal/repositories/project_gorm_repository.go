package repositories

import (
	"fmt"

	"zipmyproject/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProjectRepository is a GORM implementation of ProjectRepository.
type GORMProjectRepository struct {
	db *gorm.DB
}

// NewGORMProjectRepository creates a new instance of GORMProjectRepository.
func NewGORMProjectRepository(db *gorm.DB) *GORMProjectRepository {
	return &GORMProjectRepository{
		db: db,
	}
}

// GetAllActive retrieves all active projects, newest first.
func (r *GORMProjectRepository) GetAllActive() ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to get active projects: %w", err)
	}
	return projects, nil
}

// GetActiveByID retrieves a single active project by its ID. Inactive projects
// are reported as not found, same as missing ones.
func (r *GORMProjectRepository) GetActiveByID(id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ? AND is_active = ?", id, true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("project with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project by ID %s: %w", id, err)
	}
	return &project, nil
}

// GetByID retrieves a project regardless of its active flag. Used by the
// payment verification path, which re-reads the project it is granting.
func (r *GORMProjectRepository) GetByID(id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("project with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project by ID %s: %w", id, err)
	}
	return &project, nil
}

// Create creates a new project in the database.
func (r *GORMProjectRepository) Create(project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	project.IsActive = true
	if err := r.db.Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Update updates an existing project in the database.
func (r *GORMProjectRepository) Update(project *models.Project) error {
	res := r.db.Model(&models.Project{}).Where("id = ?", project.ID).Updates(map[string]interface{}{
		"title":             project.Title,
		"description":       project.Description,
		"short_description": project.ShortDescription,
		"price":             project.Price,
		"category":          project.Category,
		"tech_stack":        project.TechStack,
		"difficulty":        project.Difficulty,
		"features":          project.Features,
		"demo_url":          project.DemoURL,
		"thumbnail_url":     project.ThumbnailURL,
		"screenshots":       project.Screenshots,
		"download_link":     project.DownloadLink,
		"is_popular":        project.IsPopular,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("project with ID %s not found for update: %w", project.ID, ErrNotFound)
	}
	return nil
}

// SoftDelete marks a project inactive without removing its row. Existing
// ownership grants keep working against the row.
func (r *GORMProjectRepository) SoftDelete(id string) error {
	res := r.db.Model(&models.Project{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to delete project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("project with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
