package services

import (
	"context"
	"errors"

	"companyhub/internal/adapters/persistence/models"
	"companyhub/internal/adapters/persistence/repositories"
	"companyhub/internal/core/domain"

	"gorm.io/gorm"
)

// ProjectService handles project CRUD
type ProjectService struct {
	projectRepo repositories.ProjectRepository
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo repositories.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// ProjectInput represents project create/update input
type ProjectInput struct {
	Title           string `json:"title" validate:"required,max=200"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,gt=0"`
}

// ProjectQuery represents list query parameters
type ProjectQuery struct {
	SearchTerm string
	SortBy     string
	SortDir    string
	Offset     int
	Limit      int
}

// List lists projects with search, sorting and pagination
func (s *ProjectService) List(ctx context.Context, query *ProjectQuery) ([]*models.Project, int64, error) {
	return s.projectRepo.List(ctx, &repositories.ProjectFilter{
		SearchTerm: query.SearchTerm,
		SortBy:     query.SortBy,
		SortDir:    query.SortDir,
		Offset:     query.Offset,
		Limit:      query.Limit,
	})
}

// GetByID gets a project by ID
func (s *ProjectService) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// Create creates a new project
func (s *ProjectService) Create(ctx context.Context, input *ProjectInput) (*models.Project, error) {
	project := &models.Project{
		Title:           input.Title,
		DurationMinutes: input.DurationMinutes,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Update updates an existing project
func (s *ProjectService) Update(ctx context.Context, id uint, input *ProjectInput) (*models.Project, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Title = input.Title
	project.DurationMinutes = input.DurationMinutes
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete deletes a project
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, id)
}
