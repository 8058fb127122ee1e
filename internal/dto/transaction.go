package dto

import (
	"time"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// TRANSFER takes source and destination accounts; every other kind uses
// AccountID, which may be omitted while the transaction is still a forecast.
type CreateTransactionRequest struct {
	Kind                 domain.TransactionKind `json:"kind" binding:"required,oneof=INCOME EXPENSE TRANSFER WITHDRAWAL CONTRIBUTION PRODUCTION_RESALE"`
	AccountID            *string                `json:"accountID"`
	SourceAccountID      *string                `json:"sourceAccountID"`
	DestinationAccountID *string                `json:"destinationAccountID"`
	Amount               decimal.Decimal        `json:"amount" binding:"required"`
	EventDate            time.Time              `json:"eventDate" binding:"required"`
	ExpectedDate         *time.Time             `json:"expectedDate"`
	SettledDate          *time.Time             `json:"settledDate"` // nil means forecast
	Description          string                 `json:"description"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
// SetSettledDateNull moves a settled transaction back to forecast; it wins over
// SettledDate when both are set.
type UpdateTransactionRequest struct {
	AccountID            *string          `json:"accountID"`
	SourceAccountID      *string          `json:"sourceAccountID"`
	DestinationAccountID *string          `json:"destinationAccountID"`
	Amount               *decimal.Decimal `json:"amount"`
	EventDate            *time.Time       `json:"eventDate"`
	ExpectedDate         *time.Time       `json:"expectedDate"`
	SettledDate          *time.Time       `json:"settledDate"`
	SetSettledDateNull   bool             `json:"setSettledDateNull"`
	Description          *string          `json:"description"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID        string                 `json:"transactionID"`
	ProjectID            string                 `json:"projectID"`
	Kind                 domain.TransactionKind `json:"kind"`
	AccountID            *string                `json:"accountID,omitempty"`
	SourceAccountID      *string                `json:"sourceAccountID,omitempty"`
	DestinationAccountID *string                `json:"destinationAccountID,omitempty"`
	Amount               decimal.Decimal        `json:"amount"`
	EventDate            time.Time              `json:"eventDate"`
	ExpectedDate         *time.Time             `json:"expectedDate,omitempty"`
	SettledDate          *time.Time             `json:"settledDate,omitempty"`
	Description          string                 `json:"description"`
	IsActive             bool                   `json:"isActive"`
	CreatedAt            time.Time              `json:"createdAt"`
	CreatedBy            string                 `json:"createdBy"`
	LastUpdatedAt        time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy        string                 `json:"lastUpdatedBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: txn.TransactionID,
		ProjectID:     txn.ProjectID,
		Kind:          txn.Kind,
		Amount:        txn.Amount,
		EventDate:     txn.EventDate,
		ExpectedDate:  txn.ExpectedDate,
		SettledDate:   txn.SettledDate,
		Description:   txn.Description,
		IsActive:      txn.IsActive,
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
		LastUpdatedAt: txn.LastUpdatedAt,
		LastUpdatedBy: txn.LastUpdatedBy,
	}
	if txn.AccountID != "" {
		resp.AccountID = &txn.AccountID
	}
	if txn.SourceAccountID != "" {
		resp.SourceAccountID = &txn.SourceAccountID
	}
	if txn.DestinationAccountID != "" {
		resp.DestinationAccountID = &txn.DestinationAccountID
	}
	return resp
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit           int     `form:"limit,default=20"`
	NextToken       *string `form:"nextToken"`
	IncludeInactive bool    `form:"includeInactive,default=false"`
}

// ListTransactionsResponse wraps a page of transactions with the cursor for
// the next page. NextToken is nil on the last page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
