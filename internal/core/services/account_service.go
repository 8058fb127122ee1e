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
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	companyRepo portsrepo.CompanyReader
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountProjectAuthorizer sets the project authorizer for the account service.
func WithAccountProjectAuthorizer(authorizer portssvc.ProjectAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.ProjectAuthorizer = authorizer
	}
}

// WithCompanyRepository sets the company reader used to validate account ownership.
func WithCompanyRepository(companyRepo portsrepo.CompanyReader) AccountServiceOption {
	return func(s *accountService) {
		s.companyRepo = companyRepo
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: accountRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account with a zero opening balance; requires MEMBER.
func (s *accountService) CreateAccount(ctx context.Context, projectID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleMember); err != nil {
		return nil, err
	}

	// The company must exist and belong to the same project.
	if s.companyRepo != nil {
		company, err := s.companyRepo.FindCompanyByID(ctx, req.CompanyID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationFailedError("company " + req.CompanyID + " does not exist")
			}
			return nil, err
		}
		if company.ProjectID != projectID {
			return nil, apperrors.NewValidationFailedError("company " + req.CompanyID + " does not belong to this project")
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		ProjectID:   projectID,
		CompanyID:   req.CompanyID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("project_id", projectID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("project_id", projectID))
	return &account, nil
}

// GetAccountByID retrieves a specific account; requires READ_ONLY.
func (s *accountService) GetAccountByID(ctx context.Context, projectID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}

	// An account from another project must look like it doesn't exist.
	if account.ProjectID != projectID {
		return nil, apperrors.ErrNotFound
	}

	return account, nil
}

// GetAccountByIDs retrieves multiple accounts, all scoped to the project; requires READ_ONLY.
func (s *accountService) GetAccountByIDs(ctx context.Context, projectID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs",
			slog.String("project_id", projectID))
		return nil, err
	}

	for id, acc := range accounts {
		if acc.ProjectID != projectID {
			delete(accounts, id)
		}
	}

	return accounts, nil
}

// ListAccounts retrieves a paginated list of accounts; requires READ_ONLY.
func (s *accountService) ListAccounts(ctx context.Context, projectID string, userID string, limit int, offset int) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, projectID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.String("project_id", projectID))
		return nil, err
	}

	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount updates an existing account's details; requires MEMBER.
func (s *accountService) UpdateAccount(ctx context.Context, projectID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, projectID, accountID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account as inactive; requires MEMBER.
func (s *accountService) DeactivateAccount(ctx context.Context, projectID string, accountID string, userID string) error {
	if _, err := s.GetAccountByID(ctx, projectID, accountID, userID); err != nil {
		return err
	}
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleMember); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated",
		slog.String("account_id", accountID),
		slog.String("user_id", userID))
	return nil
}
