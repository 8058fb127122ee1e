package repositories

import (
	"context"
	"time"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByProject retrieves a paginated list of transactions for a
	// project using token-based pagination. It returns the transactions, a token
	// for the next page, and an error.
	ListTransactionsByProject(ctx context.Context, projectID string, limit int, nextToken *string, includeInactive bool) ([]domain.Transaction, *string, error)

	// ListTransactionsByAccountID retrieves a paginated statement for a specific
	// account (transactions touching it as account, source or destination).
	ListTransactionsByAccountID(ctx context.Context, projectID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data. Every
// write that changes a transaction's contribution carries the per-account
// balance deltas to apply in the same database transaction.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction and applies the balance
	// deltas to the affected accounts atomically.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceDeltas map[string]decimal.Decimal) error

	// UpdateTransaction persists changed fields of an existing transaction and
	// applies the balance deltas (new contribution minus previous) atomically.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceDeltas map[string]decimal.Decimal) error

	// DeleteTransaction removes the row entirely and applies the reversing
	// balance deltas atomically. Soft delete is an UpdateTransaction with
	// IsActive=false; hard delete exists for operator cleanup only.
	DeleteTransaction(ctx context.Context, transactionID string, updatedByUserID string, updatedAt time.Time, balanceDeltas map[string]decimal.Decimal) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
