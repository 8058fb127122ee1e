package domain

import "github.com/shopspring/decimal"

// MonthKey formats are "YYYY-MM" calendar months of the settlement date.

// AccountBalanceReport holds the aggregation result for one account: the
// opening balance strictly before the asOf cutoff plus the signed movement
// per calendar month inside the requested range.
type AccountBalanceReport struct {
	AccountID string                     `json:"accountID"`
	Opening   decimal.Decimal            `json:"opening"`
	Monthly   map[string]decimal.Decimal `json:"monthly"`
}

// MovementRow is one raw aggregation row produced by the reporting
// repository: the signed sum for an account in a single month bucket.
type MovementRow struct {
	AccountID string
	Month     string // "YYYY-MM"
	Net       decimal.Decimal
}

// OpeningRow is one raw opening-balance row per account.
type OpeningRow struct {
	AccountID string
	Opening   decimal.Decimal
}
