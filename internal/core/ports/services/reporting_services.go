package services

import (
	"context"
	"time"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
)

// BalanceService is the read path of the balance engine.
type BalanceService interface {
	// ComputeBalances produces, per account of the project, the opening
	// balance strictly before asOf and the signed movement per calendar month
	// of [rangeStart, rangeEnd]. Accounts with no matching rows are absent
	// from the result; callers treat missing entries as zero.
	ComputeBalances(ctx context.Context, projectID string, asOf time.Time, rangeStart, rangeEnd time.Time, userID string) (map[string]domain.AccountBalanceReport, error)
}

// ReconciliationService is the drift detector: it recomputes balances from
// full history and compares them to the stored running balances. It reports,
// it never corrects.
type ReconciliationService interface {
	// VerifyProject checks every active account of the project.
	VerifyProject(ctx context.Context, projectID string, userID string) (*domain.ReconciliationReport, error)

	// VerifyAccount checks a single account.
	VerifyAccount(ctx context.Context, projectID string, accountID string, userID string) (*domain.AccountReconciliation, error)
}

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account        AccountSvcFacade
	Company        CompanySvcFacade
	Project        ProjectSvcFacade
	Transaction    TransactionSvcFacade
	User           UserSvcFacade
	Balance        BalanceService
	Reconciliation ReconciliationService
}
