package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/caixadigital/cashbook_app/internal/apperrors"
	"github.com/caixadigital/cashbook_app/internal/core/domain"
	portsrepo "github.com/caixadigital/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/cashbook_app/internal/core/ports/services"
	"github.com/caixadigital/cashbook_app/internal/dto"
	"github.com/google/uuid"
)

// companyService implements the CompanySvcFacade interface
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
}

// CompanyServiceOption is a functional option for configuring the company service
type CompanyServiceOption func(*companyService)

// WithCompanyProjectAuthorizer sets the project authorizer for the company service.
func WithCompanyProjectAuthorizer(authorizer portssvc.ProjectAuthorizerSvc) CompanyServiceOption {
	return func(s *companyService) {
		s.ProjectAuthorizer = authorizer
	}
}

// NewCompanyService creates a new company service with the provided options
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, options ...CompanyServiceOption) portssvc.CompanySvcFacade {
	svc := &companyService{
		companyRepo: companyRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure companyService implements the CompanySvcFacade interface
var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany creates a new company in a project; requires MEMBER.
func (s *companyService) CreateCompany(ctx context.Context, projectID string, req dto.CreateCompanyRequest, userID string) (*domain.Company, error) {
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now()
	company := domain.Company{
		CompanyID: uuid.NewString(),
		ProjectID: projectID,
		Name:      req.Name,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company",
			slog.String("company_id", company.CompanyID),
			slog.String("project_id", projectID))
		return nil, err
	}

	s.LogInfo(ctx, "Company created successfully",
		slog.String("company_id", company.CompanyID),
		slog.String("project_id", projectID))
	return &company, nil
}

// GetCompanyByID retrieves a specific company; requires READ_ONLY.
func (s *companyService) GetCompanyByID(ctx context.Context, projectID string, companyID string, userID string) (*domain.Company, error) {
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company by ID",
				slog.String("company_id", companyID))
		}
		return nil, err
	}

	// A company from another project must look like it doesn't exist.
	if company.ProjectID != projectID {
		return nil, apperrors.ErrNotFound
	}

	return company, nil
}

// ListCompanies retrieves all companies of a project; requires READ_ONLY.
func (s *companyService) ListCompanies(ctx context.Context, projectID string, userID string) ([]domain.Company, error) {
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	companies, err := s.companyRepo.ListCompanies(ctx, projectID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies",
			slog.String("project_id", projectID))
		return nil, err
	}

	if companies == nil {
		return []domain.Company{}, nil
	}
	return companies, nil
}

// UpdateCompany updates name/active state of a company; requires MEMBER.
func (s *companyService) UpdateCompany(ctx context.Context, projectID string, companyID string, req dto.UpdateCompanyRequest, userID string) (*domain.Company, error) {
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleMember); err != nil {
		return nil, err
	}

	company, err := s.GetCompanyByID(ctx, projectID, companyID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}
	company.LastUpdatedAt = time.Now()
	company.LastUpdatedBy = userID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to update company",
			slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Company updated successfully",
		slog.String("company_id", companyID))
	return company, nil
}
