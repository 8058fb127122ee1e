package domain_test

import (
	"testing"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionKind_IsValid(t *testing.T) {
	for _, kind := range domain.TransactionKinds {
		assert.True(t, kind.IsValid(), "kind %s should be valid", kind)
	}
	assert.False(t, domain.TransactionKind("LOAN").IsValid())
	assert.False(t, domain.TransactionKind("").IsValid())
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.Transaction)
		wantErr   bool
		wantField string
	}{
		{
			name:   "valid settled income",
			mutate: func(txn *domain.Transaction) {},
		},
		{
			name: "valid forecast without account",
			mutate: func(txn *domain.Transaction) {
				txn.AccountID = ""
				txn.SettledDate = nil
			},
		},
		{
			name: "valid transfer",
			mutate: func(txn *domain.Transaction) {
				txn.Kind = domain.KindTransfer
				txn.AccountID = ""
				txn.SourceAccountID = "acc-src"
				txn.DestinationAccountID = "acc-dst"
			},
		},
		{
			name: "unknown kind",
			mutate: func(txn *domain.Transaction) {
				txn.Kind = "LOAN"
			},
			wantErr:   true,
			wantField: "kind",
		},
		{
			name: "missing project",
			mutate: func(txn *domain.Transaction) {
				txn.ProjectID = ""
			},
			wantErr:   true,
			wantField: "projectID",
		},
		{
			name: "zero amount",
			mutate: func(txn *domain.Transaction) {
				txn.Amount = decimal.Zero
			},
			wantErr:   true,
			wantField: "amount",
		},
		{
			name: "negative amount",
			mutate: func(txn *domain.Transaction) {
				txn.Amount = decimal.NewFromInt(-5)
			},
			wantErr:   true,
			wantField: "amount",
		},
		{
			name: "transfer with same accounts",
			mutate: func(txn *domain.Transaction) {
				txn.Kind = domain.KindTransfer
				txn.AccountID = ""
				txn.SourceAccountID = "acc-same"
				txn.DestinationAccountID = "acc-same"
			},
			wantErr:   true,
			wantField: "destinationAccountID",
		},
		{
			name: "transfer missing destination",
			mutate: func(txn *domain.Transaction) {
				txn.Kind = domain.KindTransfer
				txn.AccountID = ""
				txn.SourceAccountID = "acc-src"
			},
			wantErr:   true,
			wantField: "sourceAccountID",
		},
		{
			name: "transfer with single-account field set",
			mutate: func(txn *domain.Transaction) {
				txn.Kind = domain.KindTransfer
				txn.SourceAccountID = "acc-src"
				txn.DestinationAccountID = "acc-dst"
			},
			wantErr:   true,
			wantField: "accountID",
		},
		{
			name: "non-transfer with source account",
			mutate: func(txn *domain.Transaction) {
				txn.SourceAccountID = "acc-src"
			},
			wantErr:   true,
			wantField: "sourceAccountID",
		},
		{
			name: "settled without account",
			mutate: func(txn *domain.Transaction) {
				txn.AccountID = ""
			},
			wantErr:   true,
			wantField: "accountID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := settledTxn(domain.KindIncome, 100)
			tt.mutate(&txn)

			err := txn.Validate()

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			var fieldErr *domain.FieldError
			if assert.ErrorAs(t, err, &fieldErr) {
				assert.Equal(t, tt.wantField, fieldErr.Field)
			}
		})
	}
}
