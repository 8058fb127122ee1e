package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a cash account (bank account, till, card) within a
// company. Balance is the denormalized running balance maintained by the
// balance delta applier.
type Account struct {
	AccountID   string `db:"account_id"`
	ProjectID   string `db:"project_id"`
	CompanyID   string `db:"company_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
	Balance decimal.Decimal `db:"current_balance"`
}
