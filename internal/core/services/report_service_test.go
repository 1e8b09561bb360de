package services

import (
	"bytes"
	"context"
	"testing"

	"companyhub/internal/adapters/persistence/models"
	"companyhub/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

type stubCompanyRepo struct {
	companies  []*models.Company
	lastFilter *repositories.CompanyFilter
}

func (r *stubCompanyRepo) Create(_ context.Context, company *models.Company) error {
	r.companies = append(r.companies, company)
	return nil
}

func (r *stubCompanyRepo) GetByID(_ context.Context, id uint) (*models.Company, error) {
	for _, c := range r.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCompanyRepo) Update(_ context.Context, company *models.Company) error { return nil }

func (r *stubCompanyRepo) Delete(_ context.Context, id uint) error { return nil }

func (r *stubCompanyRepo) List(_ context.Context, filter *repositories.CompanyFilter) ([]*models.Company, int64, error) {
	r.lastFilter = filter
	return r.companies, int64(len(r.companies)), nil
}

func (r *stubCompanyRepo) ListWithEmployees(_ context.Context) ([]*models.Company, error) {
	return r.companies, nil
}

func reportFixture() *stubCompanyRepo {
	return &stubCompanyRepo{companies: []*models.Company{
		{
			ID:   1,
			Name: "Acme Corp",
			Employees: []models.Employee{
				{
					ID:       1,
					FullName: "John Smith",
					Position: "Engineer",
					Projects: []models.Project{{ID: 10, Title: "Website Redesign"}},
				},
				{ID: 2, FullName: "Jane Doe", Position: "Designer"},
			},
		},
		{ID: 2, Name: "Empty Inc"},
	}}
}

func TestEmployeePDF(t *testing.T) {
	svc := NewReportService(reportFixture())

	data, err := svc.EmployeePDF(context.Background())
	if err != nil {
		t.Fatalf("EmployeePDF failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not look like a PDF document")
	}
}

func TestEmployeeExcel(t *testing.T) {
	svc := NewReportService(reportFixture())

	data, err := svc.EmployeeExcel(context.Background())
	if err != nil {
		t.Fatalf("EmployeeExcel failed: %v", err)
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("output does not look like an xlsx workbook")
	}
}

func TestProjectList(t *testing.T) {
	employee := &models.Employee{Projects: []models.Project{
		{Title: "Website Redesign"},
		{Title: "Mobile App"},
	}}
	if got := projectList(employee); got != "Website Redesign, Mobile App" {
		t.Errorf("projectList = %q", got)
	}
	if got := projectList(&models.Employee{}); got != "No projects assigned" {
		t.Errorf("projectList (empty) = %q", got)
	}
}
