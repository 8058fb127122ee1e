package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caixadigital/cashbook_app/internal/apperrors"
	"github.com/caixadigital/cashbook_app/internal/core/domain"
	portsrepo "github.com/caixadigital/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/cashbook_app/internal/core/ports/services"
	"github.com/caixadigital/cashbook_app/internal/dto"
	"github.com/google/uuid"
)

// transactionService implements the TransactionSvcFacade interface. It is the
// balance delta applier: every mutation derives the per-account deltas from
// the transaction's contribution before and after the change, and hands them
// to the repository to persist atomically with the record.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryWithTx
	accountRepo     portsrepo.AccountReader
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionProjectAuthorizer sets the project authorizer for the transaction service.
func WithTransactionProjectAuthorizer(authorizer portssvc.ProjectAuthorizerSvc) TransactionServiceOption {
	return func(s *transactionService) {
		s.ProjectAuthorizer = authorizer
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryWithTx, accountRepo portsrepo.AccountReader, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// referencedAccountIDs collects the non-empty account references of a transaction.
func referencedAccountIDs(t domain.Transaction) []string {
	ids := make([]string, 0, 2)
	if t.AccountID != "" {
		ids = append(ids, t.AccountID)
	}
	if t.SourceAccountID != "" {
		ids = append(ids, t.SourceAccountID)
	}
	if t.DestinationAccountID != "" {
		ids = append(ids, t.DestinationAccountID)
	}
	return ids
}

// validateTransaction checks structural validity and that every referenced
// account exists, is active and belongs to the transaction's project.
func (s *transactionService) validateTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	ids := referencedAccountIDs(txn)
	if len(ids) == 0 {
		return nil
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok || acc.ProjectID != txn.ProjectID {
			return fmt.Errorf("%w: account %s does not exist in this project", apperrors.ErrValidation, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return nil
}

// CreateTransaction records a new transaction of any kind; requires MEMBER.
func (s *transactionService) CreateTransaction(ctx context.Context, projectID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		ProjectID:     projectID,
		Kind:          req.Kind,
		Amount:        req.Amount,
		EventDate:     req.EventDate,
		ExpectedDate:  req.ExpectedDate,
		SettledDate:   req.SettledDate,
		Description:   req.Description,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.AccountID != nil {
		txn.AccountID = *req.AccountID
	}
	if req.SourceAccountID != nil {
		txn.SourceAccountID = *req.SourceAccountID
	}
	if req.DestinationAccountID != nil {
		txn.DestinationAccountID = *req.DestinationAccountID
	}

	if err := s.validateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	balanceDeltas := domain.BalanceDeltas(domain.Transaction{}, txn)
	if err := s.transactionRepo.SaveTransaction(ctx, txn, balanceDeltas); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("project_id", projectID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("kind", string(txn.Kind)),
		slog.String("project_id", projectID))
	return &txn, nil
}

// GetTransactionByID retrieves a specific transaction; requires READ_ONLY.
func (s *transactionService) GetTransactionByID(ctx context.Context, projectID string, transactionID string, userID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	// A transaction from another project must look like it doesn't exist.
	if txn.ProjectID != projectID {
		return nil, apperrors.ErrNotFound
	}

	return txn, nil
}

// ListTransactions retrieves a paginated list of transactions; requires READ_ONLY.
func (s *transactionService) ListTransactions(ctx context.Context, projectID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	txns, nextToken, err := s.transactionRepo.ListTransactionsByProject(ctx, projectID, params.Limit, params.NextToken, params.IncludeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions",
			slog.String("project_id", projectID))
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// ListTransactionsByAccount retrieves a paginated statement for one account; requires READ_ONLY.
func (s *transactionService) ListTransactionsByAccount(ctx context.Context, projectID string, accountID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	txns, nextToken, err := s.transactionRepo.ListTransactionsByAccountID(ctx, projectID, accountID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for account",
			slog.String("project_id", projectID),
			slog.String("account_id", accountID))
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// applyUpdateRequest returns a copy of prev with the requested field changes applied.
func applyUpdateRequest(prev domain.Transaction, req dto.UpdateTransactionRequest, userID string, now time.Time) domain.Transaction {
	next := prev
	if req.AccountID != nil {
		next.AccountID = *req.AccountID
	}
	if req.SourceAccountID != nil {
		next.SourceAccountID = *req.SourceAccountID
	}
	if req.DestinationAccountID != nil {
		next.DestinationAccountID = *req.DestinationAccountID
	}
	if req.Amount != nil {
		next.Amount = *req.Amount
	}
	if req.EventDate != nil {
		next.EventDate = *req.EventDate
	}
	if req.ExpectedDate != nil {
		next.ExpectedDate = req.ExpectedDate
	}
	if req.SettledDate != nil {
		next.SettledDate = req.SettledDate
	}
	if req.SetSettledDateNull {
		next.SettledDate = nil
	}
	if req.Description != nil {
		next.Description = *req.Description
	}
	next.LastUpdatedAt = now
	next.LastUpdatedBy = userID
	return next
}

// UpdateTransaction applies field changes and adjusts the affected account
// balances by the difference between the old and new contribution; requires MEMBER.
func (s *transactionService) UpdateTransaction(ctx context.Context, projectID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	prev, err := s.GetTransactionByID(ctx, projectID, transactionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleMember); err != nil {
		return nil, err
	}

	next := applyUpdateRequest(*prev, req, userID, time.Now())

	if err := s.validateTransaction(ctx, next); err != nil {
		return nil, err
	}

	balanceDeltas := domain.BalanceDeltas(*prev, next)
	if err := s.transactionRepo.UpdateTransaction(ctx, next, balanceDeltas); err != nil {
		s.LogError(ctx, err, "Failed to update transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated successfully",
		slog.String("transaction_id", transactionID))
	return &next, nil
}

// SoftDeleteTransaction marks the transaction inactive, reversing its
// contribution while keeping the row; requires MEMBER. Deleting an already
// inactive transaction is a no-op.
func (s *transactionService) SoftDeleteTransaction(ctx context.Context, projectID string, transactionID string, userID string) error {
	prev, err := s.GetTransactionByID(ctx, projectID, transactionID, userID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleMember); err != nil {
		return err
	}

	if !prev.IsActive {
		return nil
	}

	next := *prev
	next.IsActive = false
	next.LastUpdatedAt = time.Now()
	next.LastUpdatedBy = userID

	balanceDeltas := domain.BalanceDeltas(*prev, next)
	if err := s.transactionRepo.UpdateTransaction(ctx, next, balanceDeltas); err != nil {
		s.LogError(ctx, err, "Failed to soft delete transaction",
			slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction soft deleted",
		slog.String("transaction_id", transactionID))
	return nil
}

// ReinstateTransaction reactivates a soft-deleted transaction, re-applying
// its contribution; requires MEMBER.
func (s *transactionService) ReinstateTransaction(ctx context.Context, projectID string, transactionID string, userID string) (*domain.Transaction, error) {
	prev, err := s.GetTransactionByID(ctx, projectID, transactionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleMember); err != nil {
		return nil, err
	}

	if prev.IsActive {
		return prev, nil
	}

	next := *prev
	next.IsActive = true
	next.LastUpdatedAt = time.Now()
	next.LastUpdatedBy = userID

	// The accounts must still be usable before the contribution comes back.
	if err := s.validateTransaction(ctx, next); err != nil {
		return nil, err
	}

	balanceDeltas := domain.BalanceDeltas(*prev, next)
	if err := s.transactionRepo.UpdateTransaction(ctx, next, balanceDeltas); err != nil {
		s.LogError(ctx, err, "Failed to reinstate transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction reinstated",
		slog.String("transaction_id", transactionID))
	return &next, nil
}

// HardDeleteTransaction removes the row entirely, reversing any remaining
// contribution; requires ADMIN.
func (s *transactionService) HardDeleteTransaction(ctx context.Context, projectID string, transactionID string, userID string) error {
	prev, err := s.GetTransactionByID(ctx, projectID, transactionID, userID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeUser(ctx, userID, projectID, domain.RoleAdmin); err != nil {
		return err
	}

	now := time.Now()
	balanceDeltas := domain.BalanceDeltas(*prev, domain.Transaction{})
	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID, userID, now, balanceDeltas); err != nil {
		s.LogError(ctx, err, "Failed to hard delete transaction",
			slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction hard deleted",
		slog.String("transaction_id", transactionID))
	return nil
}
