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

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// List handles employee listing with search, sorting and pagination
// @Summary List employees
// @Description Filter with searchTerm, sort with sortBy (fullname|id|position) and sortDir (asc|desc)
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param searchTerm query string false "Substring match on full name"
// @Param sortBy query string false "Sort column"
// @Param sortDir query string false "Sort direction"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} pagination.Response
// @Router /employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	query := &services.EmployeeQuery{
		SearchTerm: c.Query("searchTerm"),
		SortBy:     c.Query("sortBy", "fullname"),
		SortDir:    c.Query("sortDir", "asc"),
		Offset:     params.Offset,
		Limit:      params.Limit,
	}

	employees, total, err := h.employeeService.List(c.Context(), query)
	if err != nil {
		return response.InternalServerError(c, "Failed to list employees")
	}

	return c.JSON(pagination.NewResponse(employees, params, total))
}

// Get handles fetching a single employee
// @Summary Get employee by ID
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	employee, err := h.employeeService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to get employee")
	}

	return response.Success(c, "Employee retrieved successfully", employee)
}

// Create handles employee creation with company/project assignments
// @Summary Create employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.EmployeeInput true "Employee data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req services.EmployeeInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msgs := validation.Check(&req); msgs != nil {
		return response.ValidationFailed(c, msgs)
	}

	employee, err := h.employeeService.Create(c.Context(), &req)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Messages)
		}
		return response.InternalServerError(c, "Failed to create employee")
	}

	return response.Created(c, "Employee created successfully", employee)
}

// Update handles employee updates
// @Summary Update employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param body body services.EmployeeInput true "Employee data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var req services.EmployeeInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msgs := validation.Check(&req); msgs != nil {
		return response.ValidationFailed(c, msgs)
	}

	employee, err := h.employeeService.Update(c.Context(), id, &req)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Messages)
		}
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to update employee")
	}

	return response.Success(c, "Employee updated successfully", employee)
}

// Delete handles employee deletion
// @Summary Delete employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	if err := h.employeeService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to delete employee")
	}

	return response.Success(c, "Employee deleted successfully", nil)
}

// AssignProject handles linking a project to an employee
// @Summary Assign project to employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param projectId path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id}/projects/{projectId} [post]
func (h *EmployeeHandler) AssignProject(c *fiber.Ctx) error {
	employeeID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}

	if err := h.employeeService.AssignProject(c.Context(), employeeID, projectID); err != nil {
		switch {
		case errors.Is(err, domain.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, domain.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		default:
			return response.InternalServerError(c, "Failed to assign project")
		}
	}

	return response.Success(c, "Project assigned successfully", nil)
}

// RemoveProject handles unlinking a project from an employee
// @Summary Remove project from employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param projectId path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id}/projects/{projectId} [delete]
func (h *EmployeeHandler) RemoveProject(c *fiber.Ctx) error {
	employeeID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}

	if err := h.employeeService.RemoveProject(c.Context(), employeeID, projectID); err != nil {
		switch {
		case errors.Is(err, domain.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, domain.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, domain.ErrAssignmentNotFound):
			return response.NotFound(c, "Employee-project assignment not found")
		default:
			return response.InternalServerError(c, "Failed to remove project")
		}
	}

	return response.Success(c, "Project removed successfully", nil)
}
