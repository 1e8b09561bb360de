package services

import (
	"context"
	"errors"

	"companyhub/internal/adapters/persistence/models"
	"companyhub/internal/adapters/persistence/repositories"
	"companyhub/internal/core/domain"

	"gorm.io/gorm"
)

// CompanyService handles company CRUD
type CompanyService struct {
	companyRepo repositories.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repositories.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CompanyInput represents company create/update input
type CompanyInput struct {
	Name string `json:"name" validate:"required,max=150"`
}

// CompanyQuery represents list query parameters
type CompanyQuery struct {
	SearchTerm string
	SortBy     string
	SortDir    string
	Offset     int
	Limit      int
}

// List lists companies with search, sorting and pagination
func (s *CompanyService) List(ctx context.Context, query *CompanyQuery) ([]*models.Company, int64, error) {
	return s.companyRepo.List(ctx, &repositories.CompanyFilter{
		SearchTerm: query.SearchTerm,
		SortBy:     query.SortBy,
		SortDir:    query.SortDir,
		Offset:     query.Offset,
		Limit:      query.Limit,
	})
}

// GetByID gets a company by ID
func (s *CompanyService) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

// Create creates a new company
func (s *CompanyService) Create(ctx context.Context, input *CompanyInput) (*models.Company, error) {
	company := &models.Company{Name: input.Name}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Update updates an existing company
func (s *CompanyService) Update(ctx context.Context, id uint, input *CompanyInput) (*models.Company, error) {
	company, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	company.Name = input.Name
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete deletes a company
func (s *CompanyService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.companyRepo.Delete(ctx, id)
}
