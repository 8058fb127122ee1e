package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/caixadigital/cashbook_app/internal/apperrors"
	"github.com/caixadigital/cashbook_app/internal/core/domain"
	portsrepo "github.com/caixadigital/cashbook_app/internal/core/ports/repositories"
	"github.com/caixadigital/cashbook_app/internal/models"
	"github.com/caixadigital/cashbook_app/internal/utils/mapping"
	"github.com/caixadigital/cashbook_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// balanceRetryAttempts bounds retries when concurrent writers trip Postgres
// serialization (40001) or deadlock (40P01) detection.
const balanceRetryAttempts = 3

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, project_id, kind, account_id, source_account_id, destination_account_id, amount, event_date, expected_date, settled_date, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanTransactionRow(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.ProjectID,
		&m.Kind,
		&m.AccountID,
		&m.SourceAccountID,
		&m.DestinationAccountID,
		&m.Amount,
		&m.EventDate,
		&m.ExpectedDate,
		&m.SettledDate,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func isRetryablePgError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// runWithBalanceRetry executes op inside a fresh database transaction, locking
// the accounts named in balanceDeltas and applying the deltas after op
// succeeds. The whole unit retries on serialization failures; when the retry
// budget is exhausted it returns ErrBalanceConflict.
func (r *PgxTransactionRepository) runWithBalanceRetry(ctx context.Context, balanceDeltas map[string]decimal.Decimal, userID string, now time.Time, op func(tx pgx.Tx) error) error {
	accountIDs := make([]string, 0, len(balanceDeltas))
	for accID := range balanceDeltas {
		accountIDs = append(accountIDs, accID)
	}

	var lastErr error
	for attempt := 1; attempt <= balanceRetryAttempts; attempt++ {
		err := func() error {
			tx, err := r.Begin(ctx)
			if err != nil {
				return err
			}
			defer r.Rollback(ctx, tx) // Ignored if the transaction commits

			if err := op(tx); err != nil {
				return err
			}

			if len(accountIDs) > 0 {
				if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
					return fmt.Errorf("failed to lock accounts for balance update: %w", err)
				}
				if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, balanceDeltas, userID, now); err != nil {
					return fmt.Errorf("failed to apply balance deltas: %w", err)
				}
			}

			return r.Commit(ctx, tx)
		}()

		if err == nil {
			return nil
		}
		if !isRetryablePgError(err) {
			return err
		}

		lastErr = err
		slog.WarnContext(ctx, "Retrying balance update after serialization failure", "attempt", attempt)
	}

	return fmt.Errorf("%w: %v", apperrors.ErrBalanceConflict, lastErr)
}

// SaveTransaction inserts a transaction row and applies its balance deltas to
// the affected accounts within one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceDeltas map[string]decimal.Decimal) error {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`

	return r.runWithBalanceRetry(ctx, balanceDeltas, txn.CreatedBy, txn.CreatedAt, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			modelTxn.TransactionID,
			modelTxn.ProjectID,
			modelTxn.Kind,
			modelTxn.AccountID,
			modelTxn.SourceAccountID,
			modelTxn.DestinationAccountID,
			modelTxn.Amount,
			modelTxn.EventDate,
			modelTxn.ExpectedDate,
			modelTxn.SettledDate,
			modelTxn.Description,
			modelTxn.IsActive,
			modelTxn.CreatedAt,
			modelTxn.CreatedBy,
			modelTxn.LastUpdatedAt,
			modelTxn.LastUpdatedBy,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, modelTxn.TransactionID)
			}
			return fmt.Errorf("failed to insert transaction %s: %w", modelTxn.TransactionID, err)
		}
		return nil
	})
}

// UpdateTransaction persists the changed fields of an existing transaction and
// applies the balance deltas (new contribution minus old) atomically.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceDeltas map[string]decimal.Decimal) error {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET kind = $2, account_id = $3, source_account_id = $4, destination_account_id = $5,
		    amount = $6, event_date = $7, expected_date = $8, settled_date = $9,
		    description = $10, is_active = $11, last_updated_at = $12, last_updated_by = $13
		WHERE transaction_id = $1;
	`

	return r.runWithBalanceRetry(ctx, balanceDeltas, txn.LastUpdatedBy, txn.LastUpdatedAt, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, query,
			modelTxn.TransactionID,
			modelTxn.Kind,
			modelTxn.AccountID,
			modelTxn.SourceAccountID,
			modelTxn.DestinationAccountID,
			modelTxn.Amount,
			modelTxn.EventDate,
			modelTxn.ExpectedDate,
			modelTxn.SettledDate,
			modelTxn.Description,
			modelTxn.IsActive,
			modelTxn.LastUpdatedAt,
			modelTxn.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to update transaction %s: %w", modelTxn.TransactionID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// DeleteTransaction removes the row entirely and applies the reversing deltas
// atomically. Soft delete goes through UpdateTransaction instead.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, updatedByUserID string, updatedAt time.Time, balanceDeltas map[string]decimal.Decimal) error {
	query := `DELETE FROM transactions WHERE transaction_id = $1;`

	return r.runWithBalanceRetry(ctx, balanceDeltas, updatedByUserID, updatedAt, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, query, transactionID)
		if err != nil {
			return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	modelTxn, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// ListTransactionsByProject retrieves a paginated list of transactions for a
// project using token-based pagination.
func (r *PgxTransactionRepository) ListTransactionsByProject(ctx context.Context, projectID string, limit int, nextToken *string, includeInactive bool) ([]domain.Transaction, *string, error) {
	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
	`
	filterClause := `WHERE project_id = $1`
	if !includeInactive {
		filterClause += ` AND is_active = TRUE`
	}

	return r.listWithCursor(ctx, baseQuery, filterClause, []interface{}{projectID}, limit, nextToken)
}

// ListTransactionsByAccountID retrieves a paginated statement for a specific
// account: every active transaction touching it as account, source or
// destination.
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, projectID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
	`
	filterClause := `WHERE project_id = $1 AND is_active = TRUE AND (account_id = $2 OR source_account_id = $2 OR destination_account_id = $2)`

	return r.listWithCursor(ctx, baseQuery, filterClause, []interface{}{projectID, accountID}, limit, nextToken)
}

// listWithCursor runs a transaction listing query with stable
// (event_date, created_at) descending ordering and token-based pagination.
func (r *PgxTransactionRepository) listWithCursor(ctx context.Context, baseQuery, filterClause string, args []interface{}, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	orderByClause := `ORDER BY event_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastEventDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison is concise and efficient in Postgres
		cursorClause := `AND (event_date, created_at) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`
		args = append(args, lastEventDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanTransactionRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", scanErr)
		}
		modelTxns = append(modelTxns, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	// Determine the next token
	var nextTokenVal *string
	if len(modelTxns) > limit {
		lastTxn := modelTxns[limit-1] // The last item included in this page
		token := pagination.EncodeToken(lastTxn.EventDate, lastTxn.CreatedAt)
		nextTokenVal = &token
		modelTxns = modelTxns[:limit]
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nextTokenVal, nil
}
