package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one line of a posting: one account, one amount, debit or
// credit. Entries are append-only facts; they are never updated or deleted.
// Corrections are made with new offsetting entries. Across any TransactionID
// group the sum of debits must equal the sum of credits.
type JournalEntry struct {
	EntryID       string          `json:"entryID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
}
