package client

import (
	"fmt"

	"zipmyproject/internal/models"
)

// Catalog is the project-list state holder: it fetches the catalog once and
// applies optimistic local updates after each admin CRUD call, so the UI
// never refetches the whole list. Not safe for concurrent use.
type Catalog struct {
	client   *Client
	projects []models.Project
	loaded   bool
}

// NewCatalog creates a catalog cache over an API client.
func NewCatalog(apiClient *Client) *Catalog {
	return &Catalog{
		client: apiClient,
	}
}

// Refresh refetches the catalog from the API.
func (cat *Catalog) Refresh() error {
	projects, err := cat.client.ListProjects()
	if err != nil {
		return err
	}
	cat.projects = projects
	cat.loaded = true
	return nil
}

// Projects returns the cached catalog, fetching it on first use.
func (cat *Catalog) Projects() ([]models.Project, error) {
	if !cat.loaded {
		if err := cat.Refresh(); err != nil {
			return nil, err
		}
	}
	projects := make([]models.Project, len(cat.projects))
	copy(projects, cat.projects)
	return projects, nil
}

// Get returns one project from the cache.
func (cat *Catalog) Get(id string) (*models.Project, error) {
	if !cat.loaded {
		if err := cat.Refresh(); err != nil {
			return nil, err
		}
	}
	for i := range cat.projects {
		if cat.projects[i].ID == id {
			project := cat.projects[i]
			return &project, nil
		}
	}
	return nil, fmt.Errorf("project %s not in catalog", id)
}

// Add creates a project through the API and prepends it to the local cache.
func (cat *Catalog) Add(project *models.Project) error {
	created, err := cat.client.CreateProject(project)
	if err != nil {
		return err
	}
	cat.projects = append([]models.Project{*created}, cat.projects...)
	return nil
}

// Update replaces a project through the API and patches the local cache.
func (cat *Catalog) Update(project *models.Project) error {
	updated, err := cat.client.UpdateProject(project)
	if err != nil {
		return err
	}
	for i := range cat.projects {
		if cat.projects[i].ID == updated.ID {
			cat.projects[i] = *updated
			break
		}
	}
	return nil
}

// Remove soft-deletes a project through the API and drops it from the local
// cache.
func (cat *Catalog) Remove(id string) error {
	if err := cat.client.DeleteProject(id); err != nil {
		return err
	}
	kept := cat.projects[:0]
	for _, p := range cat.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	cat.projects = kept
	return nil
}
