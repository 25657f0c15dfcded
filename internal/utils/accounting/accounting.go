package accounting

import (
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the tolerance under which debit and credit totals are
// considered equal. Amounts are decimals so postings produced by the engine
// balance exactly; the epsilon exists for caller-supplied manual entries and
// ledger-wide report checks.
var BalanceEpsilon = decimal.RequireFromString("0.01")

// BalanceOf folds a set of journal entries into a signed balance:
// the sum of (debit - credit) over every entry.
func BalanceOf(entries []domain.JournalEntry) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		balance = balance.Add(e.Debit.Sub(e.Credit))
	}
	return balance
}

// EntryTotals sums the debit and credit columns of a set of journal entries.
func EntryTotals(entries []domain.JournalEntry) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, e := range entries {
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	return debits, credits
}

// IsBalanced reports whether the entries satisfy the double-entry law:
// |sum(debit) - sum(credit)| within BalanceEpsilon.
func IsBalanced(entries []domain.JournalEntry) bool {
	debits, credits := EntryTotals(entries)
	return WithinEpsilon(debits, credits)
}

// WithinEpsilon reports whether two amounts differ by less than BalanceEpsilon.
func WithinEpsilon(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(BalanceEpsilon)
}
