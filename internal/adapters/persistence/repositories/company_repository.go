package repositories

import (
	"context"
	"strings"

	"companyhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// companyRepository implements CompanyRepository interface
type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// Create creates a new company
func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// GetByID gets a company by ID with employees preloaded
func (r *companyRepository) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).Preload("Employees").Where("id = ?", id).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Update updates a company
func (r *companyRepository) Update(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// Delete soft deletes a company
func (r *companyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Company{}, id).Error
}

// List lists companies with search, sorting and pagination
func (r *companyRepository) List(ctx context.Context, filter *CompanyFilter) ([]*models.Company, int64, error) {
	var companies []*models.Company
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Company{})

	if filter.SearchTerm != "" {
		query = query.Where("name LIKE ?", "%"+filter.SearchTerm+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(companyOrderClause(filter.SortBy, filter.SortDir))

	if err := query.Offset(filter.Offset).Limit(filter.Limit).Find(&companies).Error; err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

// companyOrderClause maps the public sort parameters onto columns.
// Unknown values fall back to name ascending.
func companyOrderClause(sortBy, sortDir string) string {
	column := "name"
	if strings.EqualFold(sortBy, "id") {
		column = "id"
	}

	if strings.EqualFold(sortDir, "desc") {
		return column + " DESC"
	}
	return column + " ASC"
}

// ListWithEmployees loads every company with its employees and their
// projects, for report generation.
func (r *companyRepository) ListWithEmployees(ctx context.Context) ([]*models.Company, error) {
	var companies []*models.Company
	err := r.db.WithContext(ctx).
		Preload("Employees").
		Preload("Employees.Projects").
		Order("name").
		Find(&companies).Error
	return companies, err
}
