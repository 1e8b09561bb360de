package handlers

import (
	"errors"
	"strconv"

	"companyhub/internal/core/domain"
	"companyhub/internal/core/services"
	"companyhub/internal/pkg/pagination"
	"companyhub/internal/pkg/response"
	"companyhub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// CompanyHandler handles company endpoints
type CompanyHandler struct {
	companyService *services.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// List handles company listing with search, sorting and pagination
// @Summary List companies
// @Description Filter with searchTerm, sort with sortBy (name|id) and sortDir (asc|desc)
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param searchTerm query string false "Substring match on name"
// @Param sortBy query string false "Sort column"
// @Param sortDir query string false "Sort direction"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} pagination.Response
// @Router /companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	query := &services.CompanyQuery{
		SearchTerm: c.Query("searchTerm"),
		SortBy:     c.Query("sortBy", "name"),
		SortDir:    c.Query("sortDir", "asc"),
		Offset:     params.Offset,
		Limit:      params.Limit,
	}

	companies, total, err := h.companyService.List(c.Context(), query)
	if err != nil {
		return response.InternalServerError(c, "Failed to list companies")
	}

	return c.JSON(pagination.NewResponse(companies, params, total))
}

// Get handles fetching a single company
// @Summary Get company by ID
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /companies/{id} [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid company ID")
	}

	company, err := h.companyService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return response.NotFound(c, "Company not found")
		}
		return response.InternalServerError(c, "Failed to get company")
	}

	return response.Success(c, "Company retrieved successfully", company)
}

// Create handles company creation
// @Summary Create company
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CompanyInput true "Company data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var req services.CompanyInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msgs := validation.Check(&req); msgs != nil {
		return response.ValidationFailed(c, msgs)
	}

	company, err := h.companyService.Create(c.Context(), &req)
	if err != nil {
		return response.InternalServerError(c, "Failed to create company")
	}

	return response.Created(c, "Company created successfully", company)
}

// Update handles company updates
// @Summary Update company
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Param body body services.CompanyInput true "Company data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /companies/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid company ID")
	}

	var req services.CompanyInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msgs := validation.Check(&req); msgs != nil {
		return response.ValidationFailed(c, msgs)
	}

	company, err := h.companyService.Update(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return response.NotFound(c, "Company not found")
		}
		return response.InternalServerError(c, "Failed to update company")
	}

	return response.Success(c, "Company updated successfully", company)
}

// Delete handles company deletion
// @Summary Delete company
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /companies/{id} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid company ID")
	}

	if err := h.companyService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return response.NotFound(c, "Company not found")
		}
		return response.InternalServerError(c, "Failed to delete company")
	}

	return response.Success(c, "Company deleted successfully", nil)
}

// parseID parses a positive uint path parameter
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
