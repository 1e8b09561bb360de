package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"companyhub/internal/adapters/persistence/models"
	"companyhub/internal/adapters/persistence/repositories"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// ReportService renders the company-grouped employee report as PDF or
// Excel.
type ReportService struct {
	companyRepo repositories.CompanyRepository
}

// NewReportService creates a new report service
func NewReportService(companyRepo repositories.CompanyRepository) *ReportService {
	return &ReportService{companyRepo: companyRepo}
}

// projectList joins an employee's project titles for the report column
func projectList(employee *models.Employee) string {
	if len(employee.Projects) == 0 {
		return "No projects assigned"
	}
	titles := make([]string, 0, len(employee.Projects))
	for _, p := range employee.Projects {
		titles = append(titles, p.Title)
	}
	return strings.Join(titles, ", ")
}

// EmployeePDF renders the employee report as a PDF document
func (s *ReportService) EmployeePDF(ctx context.Context) ([]byte, error) {
	companies, err := s.companyRepo.ListWithEmployees(ctx)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(33, 86, 166)
	pdf.CellFormat(0, 12, "Employee Report", "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)

	colWidths := []float64{60, 40, 90}
	headers := []string{"Employee Name", "Position", "Projects"}

	for _, company := range companies {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 9, "Company: "+company.Name, "B", 1, "L", false, 0, "")
		pdf.Ln(2)

		if len(company.Employees) == 0 {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.CellFormat(0, 7, "No employees assigned.", "", 1, "L", false, 0, "")
			pdf.Ln(6)
			continue
		}

		pdf.SetFont("Helvetica", "B", 10)
		for i, h := range headers {
			pdf.CellFormat(colWidths[i], 7, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 10)
		for i := range company.Employees {
			employee := &company.Employees[i]
			pdf.CellFormat(colWidths[0], 7, employee.FullName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(colWidths[1], 7, employee.Position, "1", 0, "L", false, 0, "")
			pdf.CellFormat(colWidths[2], 7, projectList(employee), "1", 0, "L", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EmployeeExcel renders the employee report as an xlsx workbook
func (s *ReportService) EmployeeExcel(ctx context.Context) ([]byte, error) {
	companies, err := s.companyRepo.ListWithEmployees(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Employee Report"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
	})
	if err != nil {
		return nil, err
	}

	row := 1
	f.SetCellValue(sheet, cell(1, row), "Company Employee Report")
	f.SetCellStyle(sheet, cell(1, row), cell(3, row), boldStyle)
	row += 2

	for _, company := range companies {
		f.SetCellValue(sheet, cell(1, row), "Company: "+company.Name)
		f.SetCellStyle(sheet, cell(1, row), cell(3, row), boldStyle)
		row++

		if len(company.Employees) == 0 {
			f.SetCellValue(sheet, cell(1, row), "No employees assigned.")
			row += 2
			continue
		}

		f.SetCellValue(sheet, cell(1, row), "Employee Name")
		f.SetCellValue(sheet, cell(2, row), "Position")
		f.SetCellValue(sheet, cell(3, row), "Projects")
		f.SetCellStyle(sheet, cell(1, row), cell(3, row), headerStyle)
		row++

		for i := range company.Employees {
			employee := &company.Employees[i]
			f.SetCellValue(sheet, cell(1, row), employee.FullName)
			f.SetCellValue(sheet, cell(2, row), employee.Position)
			f.SetCellValue(sheet, cell(3, row), projectList(employee))
			row++
		}
		row++
	}

	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "B", 20)
	f.SetColWidth(sheet, "C", "C", 50)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// cell builds an A1-style reference from 1-based column and row
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	if name == "" {
		name = fmt.Sprintf("A%d", row)
	}
	return name
}
