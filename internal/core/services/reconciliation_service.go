package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/caixadigital/cashbook_app/internal/apperrors"
	"github.com/caixadigital/cashbook_app/internal/core/domain"
	portsrepo "github.com/caixadigital/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/cashbook_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reconciliationService implements the ReconciliationService interface: the
// drift detector of the balance engine. It compares stored running balances
// against balances recomputed from the full realized history and reports any
// difference beyond the tolerated epsilon. It never corrects the stored
// values; repair stays a deliberate operator action.
type reconciliationService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// ReconciliationServiceOption is a functional option for configuring the reconciliation service
type ReconciliationServiceOption func(*reconciliationService)

// WithReconciliationProjectAuthorizer sets the project authorizer for the reconciliation service.
func WithReconciliationProjectAuthorizer(authorizer portssvc.ProjectAuthorizerSvc) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.ProjectAuthorizer = authorizer
	}
}

// NewReconciliationService creates a new reconciliation service with the provided options
func NewReconciliationService(reportingRepo portsrepo.ReportingRepository, options ...ReconciliationServiceOption) portssvc.ReconciliationService {
	svc := &reconciliationService{
		reportingRepo: reportingRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reconciliationService implements the ReconciliationService interface
var _ portssvc.ReconciliationService = (*reconciliationService)(nil)

// reconcile compares one account's stored balance with its recomputed balance.
func reconcile(accountID string, stored, recomputed decimal.Decimal) domain.AccountReconciliation {
	difference := stored.Sub(recomputed)
	return domain.AccountReconciliation{
		AccountID:  accountID,
		Stored:     stored,
		Recomputed: recomputed,
		Difference: difference,
		InBalance:  difference.Abs().LessThanOrEqual(domain.ReconciliationEpsilon),
	}
}

// VerifyProject checks every account of the project, deactivated ones
// included; requires READ_ONLY.
func (s *reconciliationService) VerifyProject(ctx context.Context, projectID string, userID string) (*domain.ReconciliationReport, error) {
	if projectID == "" {
		return nil, apperrors.ErrTenantScopeRequired
	}

	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	stored, err := s.reportingRepo.GetStoredBalances(ctx, projectID)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve stored balances",
			slog.String("project_id", projectID))
		return nil, err
	}

	recomputed, err := s.reportingRepo.GetRecomputedBalances(ctx, projectID)
	if err != nil {
		s.LogError(ctx, err, "Failed to recompute balances",
			slog.String("project_id", projectID))
		return nil, err
	}

	// Cover the union of both sides: an account with history but no stored
	// balance (or the reverse) is exactly the drift we are hunting.
	accountIDs := make([]string, 0, len(stored))
	seen := make(map[string]bool, len(stored))
	for id := range stored {
		accountIDs = append(accountIDs, id)
		seen[id] = true
	}
	for id := range recomputed {
		if !seen[id] {
			accountIDs = append(accountIDs, id)
		}
	}
	sort.Strings(accountIDs)

	report := &domain.ReconciliationReport{
		ProjectID: projectID,
		Accounts:  make([]domain.AccountReconciliation, 0, len(accountIDs)),
	}
	for _, id := range accountIDs {
		result := reconcile(id, stored[id], recomputed[id])
		if !result.InBalance {
			report.Mismatches++
		}
		report.Accounts = append(report.Accounts, result)
	}

	if report.Mismatches > 0 {
		s.LogError(ctx, apperrors.ErrReconciliationMismatch, "Reconciliation found drifted accounts",
			slog.String("project_id", projectID),
			slog.Int("mismatches", report.Mismatches))
	} else {
		s.LogInfo(ctx, "Reconciliation clean",
			slog.String("project_id", projectID),
			slog.Int("account_count", len(report.Accounts)))
	}

	return report, nil
}

// VerifyAccount checks a single account; requires READ_ONLY.
func (s *reconciliationService) VerifyAccount(ctx context.Context, projectID string, accountID string, userID string) (*domain.AccountReconciliation, error) {
	report, err := s.VerifyProject(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	for _, acc := range report.Accounts {
		if acc.AccountID == accountID {
			return &acc, nil
		}
	}

	return nil, apperrors.NewNotFoundError("account " + accountID + " has no balances to reconcile")
}
