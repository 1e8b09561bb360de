package repositories

import (
	"context"
	"strings"

	"companyhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// projectRepository implements ProjectRepository interface
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project
func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByID gets a project by ID with employees preloaded
func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Preload("Employees").Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Update updates a project
func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete soft deletes a project
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, id).Error
}

// List lists projects with search, sorting and pagination
func (r *projectRepository) List(ctx context.Context, filter *ProjectFilter) ([]*models.Project, int64, error) {
	var projects []*models.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Project{})

	if filter.SearchTerm != "" {
		query = query.Where("title LIKE ?", "%"+filter.SearchTerm+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(projectOrderClause(filter.SortBy, filter.SortDir))

	if err := query.Offset(filter.Offset).Limit(filter.Limit).Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// projectOrderClause maps the public sort parameters onto columns.
// Unknown values fall back to title ascending.
func projectOrderClause(sortBy, sortDir string) string {
	column := "title"
	if strings.EqualFold(sortBy, "id") {
		column = "id"
	}

	if strings.EqualFold(sortDir, "desc") {
		return column + " DESC"
	}
	return column + " ASC"
}
