package services

import (
	"context"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
	"github.com/caixadigital/cashbook_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction.
	GetTransactionByID(ctx context.Context, projectID string, transactionID string, userID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of transactions for a project.
	ListTransactions(ctx context.Context, projectID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListTransactionsByAccount retrieves a paginated statement for one account.
	ListTransactionsByAccount(ctx context.Context, projectID string, accountID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines the mutation operations of the balance delta
// applier: every call atomically persists the record change and adjusts the
// affected accounts' running balances.
type TransactionWriterSvc interface {
	// CreateTransaction records a new transaction of any kind.
	CreateTransaction(ctx context.Context, projectID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// UpdateTransaction applies field changes (amount, account, dates, ...).
	UpdateTransaction(ctx context.Context, projectID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// SoftDeleteTransaction marks the transaction inactive, reversing its
	// contribution while keeping the row.
	SoftDeleteTransaction(ctx context.Context, projectID string, transactionID string, userID string) error

	// ReinstateTransaction reactivates a soft-deleted transaction,
	// re-applying its contribution.
	ReinstateTransaction(ctx context.Context, projectID string, transactionID string, userID string) (*domain.Transaction, error)

	// HardDeleteTransaction removes the row entirely (operator cleanup).
	HardDeleteTransaction(ctx context.Context, projectID string, transactionID string, userID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
