package handlers

import (
	"errors"

	"companyhub/internal/core/domain"
	"companyhub/internal/core/services"
	"companyhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler handles employee image uploads
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadEmployeeImage handles an image upload for an employee
// @Summary Upload employee image
// @Description Accepts a .jpg file up to the configured size limit
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param file formData file true "Image file"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id}/images [post]
func (h *UploadHandler) UploadEmployeeImage(c *fiber.Ctx) error {
	employeeID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}

	image, err := h.uploadService.SaveEmployeeImage(c.Context(), employeeID, file)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Messages)
		}
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to upload image")
	}

	return response.Created(c, "Image uploaded successfully", image)
}

// ListEmployeeImages handles listing an employee's images
// @Summary List employee images
// @Tags Uploads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id}/images [get]
func (h *UploadHandler) ListEmployeeImages(c *fiber.Ctx) error {
	employeeID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	images, err := h.uploadService.ListEmployeeImages(c.Context(), employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to list images")
	}

	return response.Success(c, "Images retrieved successfully", images)
}

// DeleteEmployeeImage handles image deletion
// @Summary Delete employee image
// @Tags Uploads
// @Produce json
// @Security BearerAuth
// @Param imageId path int true "Image ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /images/{imageId} [delete]
func (h *UploadHandler) DeleteEmployeeImage(c *fiber.Ctx) error {
	imageID, err := parseID(c, "imageId")
	if err != nil {
		return response.BadRequest(c, "Invalid image ID")
	}

	if err := h.uploadService.DeleteEmployeeImage(c.Context(), imageID); err != nil {
		if errors.Is(err, domain.ErrImageNotFound) {
			return response.NotFound(c, "Image not found")
		}
		return response.InternalServerError(c, "Failed to delete image")
	}

	return response.Success(c, "Image deleted successfully", nil)
}
