package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentApplication applies part of a received payment to one open invoice.
type PaymentApplication struct {
	InvoiceID string          `json:"invoiceID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// ReceivePaymentRequest defines the payload for receiving a customer payment.
// DepositToAccountID is optional; omitted, the payment is held in Undeposited
// Funds until swept by a deposit.
type ReceivePaymentRequest struct {
	CustomerID         string               `json:"customerID" binding:"required"`
	Amount             decimal.Decimal      `json:"amount" binding:"required"`
	Method             string               `json:"method"`
	Date               time.Time            `json:"date" binding:"required"`
	DepositToAccountID string               `json:"depositToAccountID"`
	Applications       []PaymentApplication `json:"applications" binding:"required,min=1,dive"`
}

// ReceivePaymentResponse returns the created payment transaction.
type ReceivePaymentResponse struct {
	PaymentID string `json:"paymentID"`
}

// BillPayment applies part of a bill payment to one open bill.
type BillPayment struct {
	BillID string          `json:"billID" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// PayBillsRequest defines the payload for paying vendor bills.
type PayBillsRequest struct {
	VendorID         string          `json:"vendorID" binding:"required"`
	Date             time.Time       `json:"date" binding:"required"`
	PaymentAccountID string          `json:"paymentAccountID" binding:"required"`
	Method           string          `json:"method"`
	BillPayments     []BillPayment   `json:"billPayments" binding:"required,min=1,dive"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
}

// PayBillsResponse returns the created payment transaction.
type PayBillsResponse struct {
	PaymentID string `json:"paymentID"`
}

// MakeDepositRequest moves undeposited payments into a bank account.
type MakeDepositRequest struct {
	Date               time.Time `json:"date" binding:"required"`
	DepositToAccountID string    `json:"depositToAccountID" binding:"required"`
	PaymentIDs         []string  `json:"paymentIDs" binding:"required,min=1"`
}

// MakeDepositResponse returns the created deposit transaction.
type MakeDepositResponse struct {
	DepositID string `json:"depositID"`
}

// TransferFundsRequest moves an amount between two accounts.
type TransferFundsRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Date          time.Time       `json:"date" binding:"required"`
	Memo          string          `json:"memo"`
}

// TransferFundsResponse returns the created transfer transaction.
type TransferFundsResponse struct {
	TransferID string `json:"transferID"`
}

// ManualJournalLine is one caller-supplied debit/credit row.
type ManualJournalLine struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// PostManualJournalRequest defines the payload for a manual journal entry.
type PostManualJournalRequest struct {
	Date    time.Time           `json:"date" binding:"required"`
	Memo    string              `json:"memo"`
	Entries []ManualJournalLine `json:"entries" binding:"required,min=1,dive"`
}

// PostManualJournalResponse returns the persisted entry group.
type PostManualJournalResponse struct {
	TransactionID  string `json:"transactionID"`
	EntriesCreated int    `json:"entriesCreated"`
}
