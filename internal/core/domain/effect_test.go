package domain_test

import (
	"testing"
	"time"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

var settledDate = time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)

func settledTxn(kind domain.TransactionKind, amount int64) domain.Transaction {
	return domain.Transaction{
		TransactionID: "txn-1",
		ProjectID:     "proj-1",
		Kind:          kind,
		AccountID:     "acc-1",
		Amount:        decimal.NewFromInt(amount),
		EventDate:     settledDate,
		SettledDate:   timePtr(settledDate),
		IsActive:      true,
	}
}

func settledTransfer(amount int64) domain.Transaction {
	return domain.Transaction{
		TransactionID:        "txn-1",
		ProjectID:            "proj-1",
		Kind:                 domain.KindTransfer,
		SourceAccountID:      "acc-src",
		DestinationAccountID: "acc-dst",
		Amount:               decimal.NewFromInt(amount),
		EventDate:            settledDate,
		SettledDate:          timePtr(settledDate),
		IsActive:             true,
	}
}

func TestSignedEffects_SignPerKind(t *testing.T) {
	tests := []struct {
		name string
		kind domain.TransactionKind
		want decimal.Decimal
	}{
		{name: "income is positive", kind: domain.KindIncome, want: decimal.NewFromInt(100)},
		{name: "contribution is positive", kind: domain.KindContribution, want: decimal.NewFromInt(100)},
		{name: "expense is negative", kind: domain.KindExpense, want: decimal.NewFromInt(-100)},
		{name: "withdrawal is negative", kind: domain.KindWithdrawal, want: decimal.NewFromInt(-100)},
		{name: "production resale is negative", kind: domain.KindProductionResale, want: decimal.NewFromInt(-100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			effects := domain.SignedEffects(settledTxn(tt.kind, 100))

			require.Len(t, effects, 1)
			assert.Equal(t, "acc-1", effects[0].AccountID)
			assert.True(t, effects[0].Delta.Equal(tt.want), "got %s", effects[0].Delta)
		})
	}
}

func TestSignedEffects_TransferIsSymmetric(t *testing.T) {
	effects := domain.SignedEffects(settledTransfer(250))

	require.Len(t, effects, 2)
	assert.Equal(t, "acc-src", effects[0].AccountID)
	assert.True(t, effects[0].Delta.Equal(decimal.NewFromInt(-250)))
	assert.Equal(t, "acc-dst", effects[1].AccountID)
	assert.True(t, effects[1].Delta.Equal(decimal.NewFromInt(250)))

	// Net movement across both accounts is zero.
	assert.True(t, effects[0].Delta.Add(effects[1].Delta).IsZero())
}

func TestSignedEffects_ForecastContributesNothing(t *testing.T) {
	txn := settledTxn(domain.KindIncome, 100)
	txn.SettledDate = nil

	assert.Nil(t, domain.SignedEffects(txn))
}

func TestSignedEffects_InactiveContributesNothing(t *testing.T) {
	txn := settledTxn(domain.KindIncome, 100)
	txn.IsActive = false

	assert.Nil(t, domain.SignedEffects(txn))
}

func TestSignedEffects_SettledWithoutAccountContributesNothing(t *testing.T) {
	txn := settledTxn(domain.KindIncome, 100)
	txn.AccountID = ""

	assert.Nil(t, domain.SignedEffects(txn))
}

func TestContributionByAccount_FoldsTransferIntoMap(t *testing.T) {
	contribution := domain.ContributionByAccount(settledTransfer(80))

	require.Len(t, contribution, 2)
	assert.True(t, contribution["acc-src"].Equal(decimal.NewFromInt(-80)))
	assert.True(t, contribution["acc-dst"].Equal(decimal.NewFromInt(80)))
}

func TestContributionByAccount_NilWhenNothingContributes(t *testing.T) {
	txn := settledTxn(domain.KindExpense, 50)
	txn.IsActive = false

	assert.Nil(t, domain.ContributionByAccount(txn))
}

func TestBalanceDeltas_CreationAppliesFullContribution(t *testing.T) {
	next := settledTxn(domain.KindExpense, 60)

	deltas := domain.BalanceDeltas(domain.Transaction{}, next)

	require.Len(t, deltas, 1)
	assert.True(t, deltas["acc-1"].Equal(decimal.NewFromInt(-60)))
}

func TestBalanceDeltas_SoftDeleteReverses(t *testing.T) {
	prev := settledTxn(domain.KindIncome, 120)
	next := prev
	next.IsActive = false

	deltas := domain.BalanceDeltas(prev, next)

	require.Len(t, deltas, 1)
	assert.True(t, deltas["acc-1"].Equal(decimal.NewFromInt(-120)))
}

func TestBalanceDeltas_AccountMoveShiftsBalance(t *testing.T) {
	prev := settledTxn(domain.KindIncome, 120)
	next := prev
	next.AccountID = "acc-2"

	deltas := domain.BalanceDeltas(prev, next)

	require.Len(t, deltas, 2)
	assert.True(t, deltas["acc-1"].Equal(decimal.NewFromInt(-120)))
	assert.True(t, deltas["acc-2"].Equal(decimal.NewFromInt(120)))
}

func TestBalanceDeltas_AmountChangeAppliesDifference(t *testing.T) {
	prev := settledTxn(domain.KindExpense, 100)
	next := prev
	next.Amount = decimal.NewFromInt(130)

	deltas := domain.BalanceDeltas(prev, next)

	require.Len(t, deltas, 1)
	assert.True(t, deltas["acc-1"].Equal(decimal.NewFromInt(-30)))
}

func TestBalanceDeltas_NoChangeIsNil(t *testing.T) {
	prev := settledTxn(domain.KindIncome, 100)

	assert.Nil(t, domain.BalanceDeltas(prev, prev))
}

func TestBalanceDeltas_ForecastEditIsNil(t *testing.T) {
	prev := settledTxn(domain.KindIncome, 100)
	prev.SettledDate = nil
	next := prev
	next.Amount = decimal.NewFromInt(999)

	assert.Nil(t, domain.BalanceDeltas(prev, next))
}

func TestBalanceDeltas_TransferDestinationChange(t *testing.T) {
	prev := settledTransfer(40)
	next := prev
	next.DestinationAccountID = "acc-other"

	deltas := domain.BalanceDeltas(prev, next)

	// Source leg cancels out; only the destination shifts.
	require.Len(t, deltas, 2)
	assert.True(t, deltas["acc-dst"].Equal(decimal.NewFromInt(-40)))
	assert.True(t, deltas["acc-other"].Equal(decimal.NewFromInt(40)))
}
