package domain

import "github.com/shopspring/decimal"

// ReconciliationEpsilon is the tolerance when comparing a stored running
// balance against the balance recomputed from history, absorbing decimal
// rounding accumulated by legacy data (0.01 currency units).
var ReconciliationEpsilon = decimal.New(1, -2)

// AccountReconciliation compares one account's stored running balance with
// the balance recomputed from its full transaction history.
type AccountReconciliation struct {
	AccountID  string          `json:"accountID"`
	Stored     decimal.Decimal `json:"stored"`
	Recomputed decimal.Decimal `json:"recomputed"`
	Difference decimal.Decimal `json:"difference"`
	InBalance  bool            `json:"inBalance"`
}

// ReconciliationReport is the result of verifying a project (or a single
// account within it). Mismatches are reported, never auto-corrected.
type ReconciliationReport struct {
	ProjectID  string                  `json:"projectID"`
	Accounts   []AccountReconciliation `json:"accounts"`
	Mismatches int                     `json:"mismatches"`
}
