package services

import (
	"context"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
	"github.com/caixadigital/cashbook_app/internal/dto"
)

// CompanySvcFacade defines operations for company management.
type CompanySvcFacade interface {
	// CreateCompany persists a new company in a project.
	CreateCompany(ctx context.Context, projectID string, req dto.CreateCompanyRequest, userID string) (*domain.Company, error)

	// GetCompanyByID retrieves a specific company.
	GetCompanyByID(ctx context.Context, projectID string, companyID string, userID string) (*domain.Company, error)

	// ListCompanies retrieves all companies of a project.
	ListCompanies(ctx context.Context, projectID string, userID string) ([]domain.Company, error)

	// UpdateCompany updates name/active state of a company.
	UpdateCompany(ctx context.Context, projectID string, companyID string, req dto.UpdateCompanyRequest, userID string) (*domain.Company, error)
}
