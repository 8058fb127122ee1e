package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a cash account (bank account, cash box, wallet) within
// the core domain. Balance is the persisted running total maintained by the
// transaction write path; it must always equal the signed sum of all active,
// settled transaction effects against the account.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary Key (e.g., UUID)
	ProjectID   string          `json:"projectID"`   // FK -> projects.project_id (NON-NULL)
	CompanyID   string          `json:"companyID"`   // FK -> companies.company_id (NON-NULL)
	Name        string          `json:"name"`        // User-defined name
	Description string          `json:"description"` // Nullable user description
	IsActive    bool            `json:"isActive"`    // Soft delete or status flag
	AuditFields                 // Embed CreatedAt, CreatedBy, etc.
	Balance     decimal.Decimal `json:"balance"` // Persisted running balance
}
