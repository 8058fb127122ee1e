package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a row of the single transactions table. Nullable
// account columns use pointers: non-transfer kinds fill account_id, transfers
// fill source_account_id and destination_account_id.
type Transaction struct {
	TransactionID        string          `db:"transaction_id"`
	ProjectID            string          `db:"project_id"`
	Kind                 string          `db:"kind"`
	AccountID            *string         `db:"account_id"`
	SourceAccountID      *string         `db:"source_account_id"`
	DestinationAccountID *string         `db:"destination_account_id"`
	Amount               decimal.Decimal `db:"amount"`
	EventDate            time.Time       `db:"event_date"`
	ExpectedDate         *time.Time      `db:"expected_date"`
	SettledDate          *time.Time      `db:"settled_date"`
	Description          string          `db:"description"`
	IsActive             bool            `db:"is_active"`
	AuditFields
}
