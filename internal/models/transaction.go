package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is embedded in the transaction row as JSONB.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   string          `json:"account_id"`
	ClassID     string          `json:"class_id,omitempty"`
	LocationID  string          `json:"location_id,omitempty"`
}

// Transaction is the storage representation of a business document.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	TransactionType   string          `db:"transaction_type"`
	TransactionNumber string          `db:"transaction_number"`
	CustomerID        string          `db:"customer_id"` // Nullable
	VendorID          string          `db:"vendor_id"`   // Nullable
	Date              time.Time       `db:"date"`
	DueDate           *time.Time      `db:"due_date"`
	LineItems         []LineItem      `db:"line_items"` // JSONB
	Subtotal          decimal.Decimal `db:"subtotal"`
	TaxRate           decimal.Decimal `db:"tax_rate"`
	TaxAmount         decimal.Decimal `db:"tax_amount"`
	Total             decimal.Decimal `db:"total"`
	Balance           decimal.Decimal `db:"balance"`
	Status            string          `db:"status"`
	DepositToAccount  string          `db:"deposit_to_account_id"` // Nullable
	TransferFrom      string          `db:"transfer_from_account_id"`
	TransferTo        string          `db:"transfer_to_account_id"`
	DepositID         string          `db:"deposit_id"` // Nullable
	PaymentMethod     string          `db:"payment_method"`
	Memo              string          `db:"memo"`
	AuditFields
}

// JournalEntry is the storage representation of one posted ledger line.
type JournalEntry struct {
	EntryID       string          `db:"entry_id"`
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	Description   string          `db:"description"`
	Date          time.Time       `db:"date"`
	CreatedAt     time.Time       `db:"created_at"`
}
