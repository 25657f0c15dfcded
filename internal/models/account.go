package models

import "github.com/shopspring/decimal"

// AccountType mirrors the domain account type for storage.
type AccountType string

// AccountDetailType mirrors the domain detail type for storage.
type AccountDetailType string

// Account is the storage representation of a chart-of-accounts entry.
type Account struct {
	AccountID       string            `db:"account_id"`
	Name            string            `db:"name"`
	AccountType     AccountType       `db:"account_type"`
	DetailType      AccountDetailType `db:"detail_type"`
	AccountNumber   string            `db:"account_number"`
	ParentAccountID string            `db:"parent_account_id"` // Nullable
	OpeningBalance  decimal.Decimal   `db:"opening_balance"`
	Balance         decimal.Decimal   `db:"balance"`
	IsActive        bool              `db:"is_active"`
	AuditFields
}
