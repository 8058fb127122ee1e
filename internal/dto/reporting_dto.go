package dto

import (
	"sort"
	"time"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlyMovementResponse represents one month's net movement for an account.
type MonthlyMovementResponse struct {
	Month string          `json:"month"` // YYYY-MM
	Net   decimal.Decimal `json:"net"`
}

// AccountBalanceReportResponse represents one account in the balance report.
type AccountBalanceReportResponse struct {
	AccountID string                    `json:"accountID"`
	Opening   decimal.Decimal           `json:"opening"`
	Monthly   []MonthlyMovementResponse `json:"monthly"`
}

// BalanceReportResponse represents the balance report for a project.
type BalanceReportResponse struct {
	AsOf      string                         `json:"asOf"`
	FromMonth string                         `json:"fromMonth"`
	ToMonth   string                         `json:"toMonth"`
	Accounts  []AccountBalanceReportResponse `json:"accounts"`
}

// BalanceReportParams defines query parameters for the balance report.
// Dates are parsed as YYYY-MM-DD.
type BalanceReportParams struct {
	AsOf string `form:"asOf" binding:"required"`
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// ToBalanceReportResponse converts the balance engine output to a DTO response
// with accounts and months in deterministic order.
func ToBalanceReportResponse(reports map[string]domain.AccountBalanceReport, asOf, from, to time.Time) BalanceReportResponse {
	response := BalanceReportResponse{
		AsOf:      asOf.Format("2006-01-02"),
		FromMonth: from.Format("2006-01"),
		ToMonth:   to.Format("2006-01"),
		Accounts:  make([]AccountBalanceReportResponse, 0, len(reports)),
	}

	accountIDs := make([]string, 0, len(reports))
	for id := range reports {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	for _, id := range accountIDs {
		report := reports[id]
		months := make([]string, 0, len(report.Monthly))
		for m := range report.Monthly {
			months = append(months, m)
		}
		sort.Strings(months)

		entry := AccountBalanceReportResponse{
			AccountID: id,
			Opening:   report.Opening,
			Monthly:   make([]MonthlyMovementResponse, len(months)),
		}
		for i, m := range months {
			entry.Monthly[i] = MonthlyMovementResponse{Month: m, Net: report.Monthly[m]}
		}
		response.Accounts = append(response.Accounts, entry)
	}

	return response
}

// AccountReconciliationResponse represents one account's reconciliation result.
type AccountReconciliationResponse struct {
	AccountID  string          `json:"accountID"`
	Stored     decimal.Decimal `json:"stored"`
	Recomputed decimal.Decimal `json:"recomputed"`
	Difference decimal.Decimal `json:"difference"`
	InBalance  bool            `json:"inBalance"`
}

// ReconciliationReportResponse represents the reconciliation report response.
type ReconciliationReportResponse struct {
	ProjectID  string                          `json:"projectID"`
	Accounts   []AccountReconciliationResponse `json:"accounts"`
	Mismatches int                             `json:"mismatches"`
}

// ToAccountReconciliationResponse converts a domain result to DTO.
func ToAccountReconciliationResponse(r *domain.AccountReconciliation) AccountReconciliationResponse {
	return AccountReconciliationResponse{
		AccountID:  r.AccountID,
		Stored:     r.Stored,
		Recomputed: r.Recomputed,
		Difference: r.Difference,
		InBalance:  r.InBalance,
	}
}

// ToReconciliationReportResponse converts a domain report to DTO.
func ToReconciliationReportResponse(report *domain.ReconciliationReport) ReconciliationReportResponse {
	response := ReconciliationReportResponse{
		ProjectID:  report.ProjectID,
		Accounts:   make([]AccountReconciliationResponse, len(report.Accounts)),
		Mismatches: report.Mismatches,
	}
	for i, acc := range report.Accounts {
		response.Accounts[i] = ToAccountReconciliationResponse(&acc)
	}
	return response
}
