package handlers

import (
	"errors"

	"companyhub/internal/core/domain"
	"companyhub/internal/core/services"
	"companyhub/internal/pkg/pagination"
	"companyhub/internal/pkg/response"
	"companyhub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles project endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List handles project listing with search, sorting and pagination
// @Summary List projects
// @Description Filter with searchTerm, sort with sortBy (title|id) and sortDir (asc|desc)
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param searchTerm query string false "Substring match on title"
// @Param sortBy query string false "Sort column"
// @Param sortDir query string false "Sort direction"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} pagination.Response
// @Router /projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	query := &services.ProjectQuery{
		SearchTerm: c.Query("searchTerm"),
		SortBy:     c.Query("sortBy", "title"),
		SortDir:    c.Query("sortDir", "asc"),
		Offset:     params.Offset,
		Limit:      params.Limit,
	}

	projects, total, err := h.projectService.List(c.Context(), query)
	if err != nil {
		return response.InternalServerError(c, "Failed to list projects")
	}

	return c.JSON(pagination.NewResponse(projects, params, total))
}

// Get handles fetching a single project
// @Summary Get project by ID
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}

	project, err := h.projectService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to get project")
	}

	return response.Success(c, "Project retrieved successfully", project)
}

// Create handles project creation
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ProjectInput true "Project data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req services.ProjectInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msgs := validation.Check(&req); msgs != nil {
		return response.ValidationFailed(c, msgs)
	}

	project, err := h.projectService.Create(c.Context(), &req)
	if err != nil {
		return response.InternalServerError(c, "Failed to create project")
	}

	return response.Created(c, "Project created successfully", project)
}

// Update handles project updates
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param body body services.ProjectInput true "Project data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}

	var req services.ProjectInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msgs := validation.Check(&req); msgs != nil {
		return response.ValidationFailed(c, msgs)
	}

	project, err := h.projectService.Update(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to update project")
	}

	return response.Success(c, "Project updated successfully", project)
}

// Delete handles project deletion
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}

	if err := h.projectService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to delete project")
	}

	return response.Success(c, "Project deleted successfully", nil)
}
