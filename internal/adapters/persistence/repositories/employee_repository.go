package repositories

import (
	"context"
	"strings"

	"companyhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// employeeRepository implements EmployeeRepository interface
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create creates an employee and its company/project assignments in a
// single transaction, so a failing junction insert rolls back the row.
func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee, companyIDs, projectIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(employee).Error; err != nil {
			return err
		}
		return replaceAssociations(tx, employee, companyIDs, projectIDs)
	})
}

// GetByID gets an employee with companies, projects and images preloaded
func (r *employeeRepository) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Preload("Companies").
		Preload("Projects").
		Preload("Images").
		Where("id = ?", id).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// Update saves the employee row and rewrites both junction sets atomically
func (r *employeeRepository) Update(ctx context.Context, employee *models.Employee, companyIDs, projectIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(employee).Error; err != nil {
			return err
		}
		return replaceAssociations(tx, employee, companyIDs, projectIDs)
	})
}

// replaceAssociations rewrites the company and project junction rows
func replaceAssociations(tx *gorm.DB, employee *models.Employee, companyIDs, projectIDs []uint) error {
	companies := make([]models.Company, len(companyIDs))
	for i, id := range companyIDs {
		companies[i] = models.Company{ID: id}
	}
	if err := tx.Model(employee).Association("Companies").Replace(companies); err != nil {
		return err
	}

	projects := make([]models.Project, len(projectIDs))
	for i, id := range projectIDs {
		projects[i] = models.Project{ID: id}
	}
	return tx.Model(employee).Association("Projects").Replace(projects)
}

// Delete soft deletes an employee
func (r *employeeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Employee{}, id).Error
}

// List lists employees with search, sorting and pagination
func (r *employeeRepository) List(ctx context.Context, filter *EmployeeFilter) ([]*models.Employee, int64, error) {
	var employees []*models.Employee
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Employee{})

	if filter.SearchTerm != "" {
		query = query.Where("full_name LIKE ?", "%"+filter.SearchTerm+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(filter.SortBy, filter.SortDir))

	if err := query.Offset(filter.Offset).Limit(filter.Limit).Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// orderClause maps the public sort parameters onto columns. Unknown
// values fall back to full_name ascending.
func orderClause(sortBy, sortDir string) string {
	column := "full_name"
	switch strings.ToLower(sortBy) {
	case "id":
		column = "id"
	case "position":
		column = "position"
	case "fullname", "full_name", "":
		column = "full_name"
	}

	if strings.EqualFold(sortDir, "desc") {
		return column + " DESC"
	}
	return column + " ASC"
}

// ExistsByName checks if another employee already uses this full name
func (r *employeeRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("full_name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

// AssignProject adds a single employee-project junction row
func (r *employeeRepository) AssignProject(ctx context.Context, employee *models.Employee, project *models.Project) error {
	return r.db.WithContext(ctx).Model(employee).Association("Projects").Append(project)
}

// RemoveProject removes a single employee-project junction row
func (r *employeeRepository) RemoveProject(ctx context.Context, employee *models.Employee, project *models.Project) error {
	return r.db.WithContext(ctx).Model(employee).Association("Projects").Delete(project)
}

// HasProject checks whether the junction row exists
func (r *employeeRepository) HasProject(ctx context.Context, employeeID, projectID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employee_projects").
		Where("employee_id = ? AND project_id = ?", employeeID, projectID).
		Count(&count).Error
	return count > 0, err
}
