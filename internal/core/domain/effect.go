package domain

import "github.com/shopspring/decimal"

// AccountEffect is the signed contribution of a transaction to one account's
// running balance.
type AccountEffect struct {
	AccountID string
	Delta     decimal.Decimal
}

// SignedEffects returns the balance contributions of a transaction, one entry
// per affected account. This is the single place encoding both the sign
// convention and the realization rule:
//
//	INCOME, CONTRIBUTION              -> +amount on AccountID
//	EXPENSE, WITHDRAWAL,
//	PRODUCTION_RESALE                 -> -amount on AccountID
//	TRANSFER                          -> -amount on source, +amount on destination
//
// A transaction contributes iff it is active AND settled (SettledDate set).
// Forecasts, inactive rows and records without an account contribute nothing
// and yield an empty slice.
func SignedEffects(t Transaction) []AccountEffect {
	if !t.IsActive || !t.IsSettled() {
		return nil
	}

	if t.IsTransfer() {
		if t.SourceAccountID == "" || t.DestinationAccountID == "" {
			return nil
		}
		return []AccountEffect{
			{AccountID: t.SourceAccountID, Delta: t.Amount.Neg()},
			{AccountID: t.DestinationAccountID, Delta: t.Amount},
		}
	}

	if t.AccountID == "" {
		return nil
	}

	switch t.Kind {
	case KindIncome, KindContribution:
		return []AccountEffect{{AccountID: t.AccountID, Delta: t.Amount}}
	case KindExpense, KindWithdrawal, KindProductionResale:
		return []AccountEffect{{AccountID: t.AccountID, Delta: t.Amount.Neg()}}
	}
	return nil
}

// ContributionByAccount folds SignedEffects into a per-account map, the form
// consumed by the balance delta applier.
func ContributionByAccount(t Transaction) map[string]decimal.Decimal {
	effects := SignedEffects(t)
	if len(effects) == 0 {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(effects))
	for _, e := range effects {
		out[e.AccountID] = out[e.AccountID].Add(e.Delta)
	}
	return out
}

// BalanceDeltas computes the per-account adjustments needed to move the
// stored balances from the contribution of prev to the contribution of next.
// Either side may be the zero Transaction (e.g., prev for a creation), which
// contributes nothing. Zero deltas are omitted.
func BalanceDeltas(prev, next Transaction) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal)
	for accID, d := range ContributionByAccount(prev) {
		deltas[accID] = deltas[accID].Sub(d)
	}
	for accID, d := range ContributionByAccount(next) {
		deltas[accID] = deltas[accID].Add(d)
	}
	for accID, d := range deltas {
		if d.IsZero() {
			delete(deltas, accID)
		}
	}
	if len(deltas) == 0 {
		return nil
	}
	return deltas
}
