package services

import (
	"context"
	"errors"

	"companyhub/internal/adapters/persistence/models"
	"companyhub/internal/adapters/persistence/repositories"
	"companyhub/internal/core/domain"

	"gorm.io/gorm"
)

// EmployeeService handles employee CRUD and project assignments
type EmployeeService struct {
	employeeRepo repositories.EmployeeRepository
	projectRepo  repositories.ProjectRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repositories.EmployeeRepository, projectRepo repositories.ProjectRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		projectRepo:  projectRepo,
	}
}

// EmployeeInput represents employee create/update input
type EmployeeInput struct {
	FullName   string `json:"fullName" validate:"required,max=150"`
	Position   string `json:"position" validate:"max=100"`
	CompanyIDs []uint `json:"companyIds"`
	ProjectIDs []uint `json:"projectIds"`
}

// EmployeeQuery represents list query parameters
type EmployeeQuery struct {
	SearchTerm string
	SortBy     string
	SortDir    string
	Offset     int
	Limit      int
}

// List lists employees with search, sorting and pagination
func (s *EmployeeService) List(ctx context.Context, query *EmployeeQuery) ([]*models.Employee, int64, error) {
	return s.employeeRepo.List(ctx, &repositories.EmployeeFilter{
		SearchTerm: query.SearchTerm,
		SortBy:     query.SortBy,
		SortDir:    query.SortDir,
		Offset:     query.Offset,
		Limit:      query.Limit,
	})
}

// GetByID gets an employee with companies and projects loaded
func (s *EmployeeService) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

// Create creates an employee together with its company and project
// assignments. The whole mutation is one transaction.
func (s *EmployeeService) Create(ctx context.Context, input *EmployeeInput) (*models.Employee, error) {
	exists, err := s.employeeRepo.ExistsByName(ctx, input.FullName, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewValidationError("An employee with this name already exists.")
	}

	employee := &models.Employee{
		FullName: input.FullName,
		Position: input.Position,
	}

	if err := s.employeeRepo.Create(ctx, employee, input.CompanyIDs, input.ProjectIDs); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, employee.ID)
}

// Update updates an employee and rewrites both junction sets atomically
func (s *EmployeeService) Update(ctx context.Context, id uint, input *EmployeeInput) (*models.Employee, error) {
	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.employeeRepo.ExistsByName(ctx, input.FullName, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewValidationError("An employee with this name already exists.")
	}

	employee.FullName = input.FullName
	employee.Position = input.Position

	if err := s.employeeRepo.Update(ctx, employee, input.CompanyIDs, input.ProjectIDs); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete deletes an employee
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.employeeRepo.Delete(ctx, id)
}

// AssignProject links a project to an employee. Assigning a project the
// employee already has is a no-op success.
func (s *EmployeeService) AssignProject(ctx context.Context, employeeID, projectID uint) error {
	employee, err := s.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProjectNotFound
		}
		return err
	}

	has, err := s.employeeRepo.HasProject(ctx, employeeID, projectID)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	return s.employeeRepo.AssignProject(ctx, employee, project)
}

// RemoveProject unlinks a project from an employee
func (s *EmployeeService) RemoveProject(ctx context.Context, employeeID, projectID uint) error {
	employee, err := s.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProjectNotFound
		}
		return err
	}

	has, err := s.employeeRepo.HasProject(ctx, employeeID, projectID)
	if err != nil {
		return err
	}
	if !has {
		return domain.ErrAssignmentNotFound
	}

	return s.employeeRepo.RemoveProject(ctx, employee, project)
}
