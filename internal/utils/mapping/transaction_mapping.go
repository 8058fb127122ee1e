package mapping

import (
	"github.com/caixadigital/cashbook_app/internal/core/domain"
	"github.com/caixadigital/cashbook_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Empty account IDs become NULL columns.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:        d.TransactionID,
		ProjectID:            d.ProjectID,
		Kind:                 string(d.Kind),
		AccountID:            nilIfEmpty(d.AccountID),
		SourceAccountID:      nilIfEmpty(d.SourceAccountID),
		DestinationAccountID: nilIfEmpty(d.DestinationAccountID),
		Amount:               d.Amount,
		EventDate:            d.EventDate,
		ExpectedDate:         d.ExpectedDate,
		SettledDate:          d.SettledDate,
		Description:          d.Description,
		IsActive:             d.IsActive,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:        m.TransactionID,
		ProjectID:            m.ProjectID,
		Kind:                 domain.TransactionKind(m.Kind),
		AccountID:            emptyIfNil(m.AccountID),
		SourceAccountID:      emptyIfNil(m.SourceAccountID),
		DestinationAccountID: emptyIfNil(m.DestinationAccountID),
		Amount:               m.Amount,
		EventDate:            m.EventDate,
		ExpectedDate:         m.ExpectedDate,
		SettledDate:          m.SettledDate,
		Description:          m.Description,
		IsActive:             m.IsActive,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func emptyIfNil(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
