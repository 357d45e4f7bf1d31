package handlers

import (
	"errors"
	"log"

	"zipmyproject/internal/models"
	"zipmyproject/internal/repositories"
	"zipmyproject/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles HTTP requests for the project catalog.
type ProjectHandler struct {
	service  *services.ProjectService
	validate *validator.Validate
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the public catalog routes.
func (h *ProjectHandler) RegisterPublicRoutes(router fiber.Router) {
	projectRoutes := router.Group("/projects")
	projectRoutes.Get("/", h.HandleList)
	projectRoutes.Get("/:id", h.HandleGet)
}

// RegisterAdminRoutes registers the admin catalog management routes.
func (h *ProjectHandler) RegisterAdminRoutes(router fiber.Router) {
	projectRoutes := router.Group("/projects")
	projectRoutes.Post("/", h.HandleCreate)
	projectRoutes.Put("/:id", h.HandleUpdate)
	projectRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns all active projects without their download links.
func (h *ProjectHandler) HandleList(c *fiber.Ctx) error {
	projects, err := h.service.ListActive()
	if err != nil {
		log.Printf("Error fetching projects: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	views := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		views = append(views, p.ListView())
	}
	return c.JSON(views)
}

// HandleGet returns a single active project, download link included.
func (h *ProjectHandler) HandleGet(c *fiber.Ctx) error {
	id := c.Params("id")
	project, err := h.service.GetActive(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		log.Printf("Error fetching project %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(project)
}

// HandleCreate creates a new project.
func (h *ProjectHandler) HandleCreate(c *fiber.Ctx) error {
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		log.Printf("Error parsing project body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(project); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Required fields missing",
		})
	}

	if err := h.service.Create(&project); err != nil {
		log.Printf("Error creating project: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// HandleUpdate replaces a project's fields.
func (h *ProjectHandler) HandleUpdate(c *fiber.Ctx) error {
	id := c.Params("id")

	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		log.Printf("Error parsing project body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	project.ID = id

	if err := h.validate.Struct(project); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Required fields missing",
		})
	}

	if err := h.service.Update(&project); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		log.Printf("Error updating project %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(project)
}

// HandleDelete soft-deletes a project.
func (h *ProjectHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		log.Printf("Error deleting project %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Project deleted successfully",
	})
}
