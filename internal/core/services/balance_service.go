package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/caixadigital/cashbook_app/internal/apperrors"
	"github.com/caixadigital/cashbook_app/internal/core/domain"
	portsrepo "github.com/caixadigital/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/cashbook_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// balanceService implements the BalanceService interface: the read path of
// the balance engine.
type balanceService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// BalanceServiceOption is a functional option for configuring the balance service
type BalanceServiceOption func(*balanceService)

// WithBalanceProjectAuthorizer sets the project authorizer for the balance service.
func WithBalanceProjectAuthorizer(authorizer portssvc.ProjectAuthorizerSvc) BalanceServiceOption {
	return func(s *balanceService) {
		s.ProjectAuthorizer = authorizer
	}
}

// NewBalanceService creates a new balance service with the provided options
func NewBalanceService(reportingRepo portsrepo.ReportingRepository, options ...BalanceServiceOption) portssvc.BalanceService {
	svc := &balanceService{
		reportingRepo: reportingRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure balanceService implements the BalanceService interface
var _ portssvc.BalanceService = (*balanceService)(nil)

// ComputeBalances produces the opening balance strictly before asOf and the
// signed movement per calendar month over [rangeStart, rangeEnd] for every
// account of the project with matching rows.
//
// An empty projectID aborts before any storage access: an unscoped
// aggregation would mix tenants.
func (s *balanceService) ComputeBalances(ctx context.Context, projectID string, asOf time.Time, rangeStart, rangeEnd time.Time, userID string) (map[string]domain.AccountBalanceReport, error) {
	if projectID == "" {
		return nil, apperrors.ErrTenantScopeRequired
	}

	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view balance report",
			slog.String("user_id", userID),
			slog.String("project_id", projectID))
		return nil, err
	}

	openingRows, err := s.reportingRepo.GetOpeningBalances(ctx, projectID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve opening balances",
			slog.String("project_id", projectID),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, err
	}

	// rangeEnd names a day, not an instant. Settlements at any time of that
	// day belong to the range, so the storage bound is midnight of the next.
	rangeEndExclusive := rangeEnd.AddDate(0, 0, 1)
	movementRows, err := s.reportingRepo.GetMonthlyMovement(ctx, projectID, rangeStart, rangeEndExclusive)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve monthly movement",
			slog.String("project_id", projectID),
			slog.String("from", rangeStart.Format(time.RFC3339)),
			slog.String("to", rangeEnd.Format(time.RFC3339)))
		return nil, err
	}

	reports := make(map[string]domain.AccountBalanceReport)
	for _, row := range openingRows {
		reports[row.AccountID] = domain.AccountBalanceReport{
			AccountID: row.AccountID,
			Opening:   row.Opening,
			Monthly:   make(map[string]decimal.Decimal),
		}
	}
	for _, row := range movementRows {
		report, ok := reports[row.AccountID]
		if !ok {
			report = domain.AccountBalanceReport{
				AccountID: row.AccountID,
				Opening:   decimal.Zero,
				Monthly:   make(map[string]decimal.Decimal),
			}
		}
		report.Monthly[row.Month] = report.Monthly[row.Month].Add(row.Net)
		reports[row.AccountID] = report
	}

	s.LogInfo(ctx, "Balance report generated successfully",
		slog.String("project_id", projectID),
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("account_count", len(reports)))
	return reports, nil
}
