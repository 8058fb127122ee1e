package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind tags the variant of a cash-flow transaction. All six kinds
// share one record shape; kind-specific behavior (which accounts are touched
// and with what sign) lives in SignedEffects.
type TransactionKind string

const (
	KindIncome           TransactionKind = "INCOME"
	KindExpense          TransactionKind = "EXPENSE"
	KindTransfer         TransactionKind = "TRANSFER"
	KindWithdrawal       TransactionKind = "WITHDRAWAL"
	KindContribution     TransactionKind = "CONTRIBUTION"
	KindProductionResale TransactionKind = "PRODUCTION_RESALE"
)

// TransactionKinds lists every valid kind, in display order.
var TransactionKinds = []TransactionKind{
	KindIncome,
	KindExpense,
	KindTransfer,
	KindWithdrawal,
	KindContribution,
	KindProductionResale,
}

// IsValid reports whether k is one of the known kinds.
func (k TransactionKind) IsValid() bool {
	switch k {
	case KindIncome, KindExpense, KindTransfer, KindWithdrawal, KindContribution, KindProductionResale:
		return true
	}
	return false
}

// Transaction represents a single cash-flow event within a project.
//
// Amount is always a positive magnitude; the sign applied to each affected
// account is derived from Kind. A transaction with a nil SettledDate is a
// forecast and contributes nothing to any balance. Soft delete clears
// IsActive, reversing the contribution while keeping the row for audit.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (e.g., UUID)
	ProjectID     string          `json:"projectID"`     // FK -> projects.project_id (Not Null)
	Kind          TransactionKind `json:"kind"`
	// AccountID is the single affected account for non-transfer kinds. It may
	// be empty while the transaction is still a forecast.
	AccountID string `json:"accountID,omitempty"`
	// SourceAccountID and DestinationAccountID are set for transfers only.
	SourceAccountID      string          `json:"sourceAccountID,omitempty"`
	DestinationAccountID string          `json:"destinationAccountID,omitempty"`
	Amount               decimal.Decimal `json:"amount"`                 // Positive magnitude
	EventDate            time.Time       `json:"eventDate"`              // When the underlying fact happened
	ExpectedDate         *time.Time      `json:"expectedDate,omitempty"` // Planned settlement date
	SettledDate          *time.Time      `json:"settledDate,omitempty"`  // Actual settlement; nil means forecast
	Description          string          `json:"description"`
	IsActive             bool            `json:"isActive"`
	AuditFields
}

// IsTransfer reports whether the transaction moves money between two accounts.
func (t Transaction) IsTransfer() bool {
	return t.Kind == KindTransfer
}

// IsSettled reports whether the transaction has a recorded settlement date.
func (t Transaction) IsSettled() bool {
	return t.SettledDate != nil
}

// Validate checks structural consistency of the record: a valid kind, a
// positive amount, transfer kinds carrying two distinct accounts and nothing
// else, and settled non-transfers carrying an account.
func (t Transaction) Validate() error {
	if !t.Kind.IsValid() {
		return NewFieldError("kind", "unknown transaction kind "+string(t.Kind))
	}
	if t.ProjectID == "" {
		return NewFieldError("projectID", "transaction must belong to a project")
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return NewFieldError("amount", "amount must be positive")
	}
	if t.IsTransfer() {
		if t.AccountID != "" {
			return NewFieldError("accountID", "transfers use source and destination accounts")
		}
		if t.SourceAccountID == "" || t.DestinationAccountID == "" {
			return NewFieldError("sourceAccountID", "transfer requires both source and destination accounts")
		}
		if t.SourceAccountID == t.DestinationAccountID {
			return NewFieldError("destinationAccountID", "transfer accounts must differ")
		}
		return nil
	}
	if t.SourceAccountID != "" || t.DestinationAccountID != "" {
		return NewFieldError("sourceAccountID", "only transfers carry source/destination accounts")
	}
	if t.IsSettled() && t.AccountID == "" {
		return NewFieldError("accountID", "a settled transaction requires an account")
	}
	return nil
}
