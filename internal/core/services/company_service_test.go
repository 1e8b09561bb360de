package services

import (
	"context"
	"errors"
	"testing"

	"companyhub/internal/adapters/persistence/models"
	"companyhub/internal/core/domain"
)

func TestCompanyListForwardsQuery(t *testing.T) {
	repo := &stubCompanyRepo{companies: []*models.Company{{ID: 1, Name: "Acme Corp"}}}
	svc := NewCompanyService(repo)

	companies, total, err := svc.List(context.Background(), &CompanyQuery{
		SearchTerm: "acme",
		SortBy:     "id",
		SortDir:    "desc",
		Offset:     20,
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(companies) != 1 || total != 1 {
		t.Fatalf("expected 1 company, got %d (total %d)", len(companies), total)
	}

	filter := repo.lastFilter
	if filter == nil {
		t.Fatal("repository did not receive a filter")
	}
	if filter.SearchTerm != "acme" {
		t.Errorf("expected search term %q, got %q", "acme", filter.SearchTerm)
	}
	if filter.SortBy != "id" || filter.SortDir != "desc" {
		t.Errorf("expected sort id/desc, got %s/%s", filter.SortBy, filter.SortDir)
	}
	if filter.Offset != 20 || filter.Limit != 10 {
		t.Errorf("expected offset 20 limit 10, got %d/%d", filter.Offset, filter.Limit)
	}
}

func TestCompanyGetByIDNotFound(t *testing.T) {
	svc := NewCompanyService(&stubCompanyRepo{})

	if _, err := svc.GetByID(context.Background(), 42); !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestCompanyCreateAndUpdate(t *testing.T) {
	repo := &stubCompanyRepo{}
	svc := NewCompanyService(repo)

	company, err := svc.Create(context.Background(), &CompanyInput{Name: "Acme Corp"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if company.Name != "Acme Corp" {
		t.Errorf("expected name %q, got %q", "Acme Corp", company.Name)
	}

	updated, err := svc.Update(context.Background(), company.ID, &CompanyInput{Name: "Acme Inc"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Acme Inc" {
		t.Errorf("expected name %q, got %q", "Acme Inc", updated.Name)
	}
}
