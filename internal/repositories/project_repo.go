package repositories

import (
	"errors"

	"zipmyproject/internal/models"
)

// ErrNotFound is wrapped into every "no such row" error returned by the
// repositories, so callers can branch with errors.Is instead of matching
// message text.
var ErrNotFound = errors.New("not found")

// ProjectRepository defines the interface for project catalog data access.
// Deletion is a soft delete: the row stays, is_active flips to false, and the
// active-only readers stop returning it.
type ProjectRepository interface {
	GetAllActive() ([]models.Project, error)
	GetActiveByID(id string) (*models.Project, error)
	GetByID(id string) (*models.Project, error)
	Create(project *models.Project) error
	Update(project *models.Project) error
	SoftDelete(id string) error
}
