package handlers

import (
	"companyhub/internal/core/services"
	"companyhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles report generation endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// EmployeePDF streams the employee report as PDF
// @Summary Employee report (PDF)
// @Tags Reports
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /reports/employees/pdf [get]
func (h *ReportHandler) EmployeePDF(c *fiber.Ctx) error {
	data, err := h.reportService.EmployeePDF(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to generate report")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="employee-report.pdf"`)
	return c.Send(data)
}

// EmployeeExcel streams the employee report as an xlsx workbook
// @Summary Employee report (Excel)
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /reports/employees/excel [get]
func (h *ReportHandler) EmployeeExcel(c *fiber.Ctx) error {
	data, err := h.reportService.EmployeeExcel(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to generate report")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="employee-report.xlsx"`)
	return c.Send(data)
}
