package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/caixadigital/cashbook_app/internal/apperrors"
	"github.com/caixadigital/cashbook_app/internal/core/domain"
	portsrepo "github.com/caixadigital/cashbook_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// signedEffectsQuery expands realized transactions (active with a settlement
// date) into one signed row per affected account. Transfers contribute two
// rows: negative on the source, positive on the destination. This mirrors
// domain.SignedEffects in SQL.
const signedEffectsQuery = `
	SELECT account_id, settled_date,
	       CASE WHEN kind IN ('INCOME', 'CONTRIBUTION') THEN amount ELSE -amount END AS signed_amount
	FROM transactions
	WHERE project_id = $1 AND is_active = TRUE AND settled_date IS NOT NULL
		AND kind != 'TRANSFER' AND account_id IS NOT NULL
	UNION ALL
	SELECT source_account_id, settled_date, -amount
	FROM transactions
	WHERE project_id = $1 AND is_active = TRUE AND settled_date IS NOT NULL
		AND kind = 'TRANSFER'
	UNION ALL
	SELECT destination_account_id, settled_date, amount
	FROM transactions
	WHERE project_id = $1 AND is_active = TRUE AND settled_date IS NOT NULL
		AND kind = 'TRANSFER'
`

// GetOpeningBalances returns the signed sum per account of every realized
// transaction settled strictly before asOf.
func (r *reportingRepository) GetOpeningBalances(ctx context.Context, projectID string, asOf time.Time) ([]domain.OpeningRow, error) {
	if projectID == "" {
		return nil, apperrors.ErrTenantScopeRequired
	}

	query := `
		SELECT e.account_id, SUM(e.signed_amount) AS opening
		FROM (` + signedEffectsQuery + `) e
		WHERE e.settled_date < $2
		GROUP BY e.account_id
	`

	rows, err := r.Pool.Query(ctx, query, projectID, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying opening balances: %w", err)
	}
	defer rows.Close()

	result := []domain.OpeningRow{}
	for rows.Next() {
		var row domain.OpeningRow
		if err := rows.Scan(&row.AccountID, &row.Opening); err != nil {
			return nil, fmt.Errorf("error scanning opening balance row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opening balance rows: %w", err)
	}

	return result, nil
}

// GetMonthlyMovement returns the signed sum per account and calendar month of
// the settlement date over [from, toExclusive).
func (r *reportingRepository) GetMonthlyMovement(ctx context.Context, projectID string, from, toExclusive time.Time) ([]domain.MovementRow, error) {
	if projectID == "" {
		return nil, apperrors.ErrTenantScopeRequired
	}

	query := `
		SELECT e.account_id, to_char(e.settled_date, 'YYYY-MM') AS month, SUM(e.signed_amount) AS net
		FROM (` + signedEffectsQuery + `) e
		WHERE e.settled_date >= $2 AND e.settled_date < $3
		GROUP BY e.account_id, to_char(e.settled_date, 'YYYY-MM')
		ORDER BY e.account_id, month
	`

	rows, err := r.Pool.Query(ctx, query, projectID, from, toExclusive)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly movement: %w", err)
	}
	defer rows.Close()

	result := []domain.MovementRow{}
	for rows.Next() {
		var row domain.MovementRow
		if err := rows.Scan(&row.AccountID, &row.Month, &row.Net); err != nil {
			return nil, fmt.Errorf("error scanning monthly movement row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly movement rows: %w", err)
	}

	return result, nil
}

// GetRecomputedBalances returns the signed sum per account over the full
// realized history of the project.
func (r *reportingRepository) GetRecomputedBalances(ctx context.Context, projectID string) (map[string]decimal.Decimal, error) {
	if projectID == "" {
		return nil, apperrors.ErrTenantScopeRequired
	}

	query := `
		SELECT e.account_id, SUM(e.signed_amount)
		FROM (` + signedEffectsQuery + `) e
		GROUP BY e.account_id
	`

	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("error querying recomputed balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[string]decimal.Decimal)
	for rows.Next() {
		var accountID string
		var balance decimal.Decimal
		if err := rows.Scan(&accountID, &balance); err != nil {
			return nil, fmt.Errorf("error scanning recomputed balance row: %w", err)
		}
		balances[accountID] = balance
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recomputed balance rows: %w", err)
	}

	return balances, nil
}

// GetStoredBalances returns the persisted running balance of every account in
// the project. Deactivated accounts are included: their realized transactions
// still contribute to the recomputed side, so both sides must cover the same
// account set.
func (r *reportingRepository) GetStoredBalances(ctx context.Context, projectID string) (map[string]decimal.Decimal, error) {
	if projectID == "" {
		return nil, apperrors.ErrTenantScopeRequired
	}

	query := `
		SELECT account_id, COALESCE(current_balance, 0)
		FROM accounts
		WHERE project_id = $1
	`

	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("error querying stored balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[string]decimal.Decimal)
	for rows.Next() {
		var accountID string
		var balance decimal.Decimal
		if err := rows.Scan(&accountID, &balance); err != nil {
			return nil, fmt.Errorf("error scanning stored balance row: %w", err)
		}
		balances[accountID] = balance
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stored balance rows: %w", err)
	}

	return balances, nil
}
