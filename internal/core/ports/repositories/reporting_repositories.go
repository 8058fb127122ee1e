package repositories

import (
	"context"
	"time"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the read-model queries of the balance engine.
// All queries require a project scope; implementations must not accept an
// empty projectID.
type ReportingRepository interface {
	// GetOpeningBalances returns, per account, the signed sum of all active,
	// settled transactions with settlement date strictly before asOf.
	GetOpeningBalances(ctx context.Context, projectID string, asOf time.Time) ([]domain.OpeningRow, error)

	// GetMonthlyMovement returns, per account and calendar month of the
	// settlement date, the signed sum over the half-open range
	// [from, toExclusive).
	GetMonthlyMovement(ctx context.Context, projectID string, from, toExclusive time.Time) ([]domain.MovementRow, error)

	// GetStoredBalances returns the persisted running balance of every account
	// in the project, deactivated ones included, keyed by account ID.
	GetStoredBalances(ctx context.Context, projectID string) (map[string]decimal.Decimal, error)

	// GetRecomputedBalances returns, per account, the signed sum over the full
	// realized history of the project, keyed by account ID. This is the ground
	// truth the reconciliation harness compares stored balances against.
	GetRecomputedBalances(ctx context.Context, projectID string) (map[string]decimal.Decimal, error)
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	CompanyRepo     CompanyRepositoryFacade
	ProjectRepo     ProjectRepositoryFacade
	TransactionRepo TransactionRepositoryWithTx
	UserRepo        UserRepositoryFacade
	ReportingRepo   ReportingRepository
}
