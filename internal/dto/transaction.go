package dto

import (
	"time"

	"github.com/qbclone/qbclone_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one document line. Amount may be supplied directly or
// derived as quantity x rate when zero.
type LineItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   string          `json:"accountID" binding:"required"`
	ClassID     string          `json:"classID"`
	LocationID  string          `json:"locationID"`
}

// CreateTransactionRequest defines the payload for creating a business document.
type CreateTransactionRequest struct {
	TransactionType    string            `json:"transactionType" binding:"required,oneof=Invoice Bill SalesReceipt Check"`
	CustomerID         string            `json:"customerID"`
	VendorID           string            `json:"vendorID"`
	Date               time.Time         `json:"date" binding:"required"`
	DueDate            *time.Time        `json:"dueDate"`
	LineItems          []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
	TaxRate            decimal.Decimal   `json:"taxRate"`
	DepositToAccountID string            `json:"depositToAccountID"`
	Memo               string            `json:"memo"`
}

// UpdateTransactionRequest carries the only fields editable on a posted
// document. Structural edits (line items, amounts) require voiding and
// re-creating the document.
type UpdateTransactionRequest struct {
	DueDate *time.Time `json:"dueDate"`
	Memo    *string    `json:"memo"`
}

// LineItemResponse mirrors a document line.
type LineItemResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   string          `json:"accountID"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     string             `json:"transactionID"`
	TransactionType   string             `json:"transactionType"`
	TransactionNumber string             `json:"transactionNumber"`
	CustomerID        string             `json:"customerID,omitempty"`
	VendorID          string             `json:"vendorID,omitempty"`
	Date              time.Time          `json:"date"`
	DueDate           *time.Time         `json:"dueDate,omitempty"`
	LineItems         []LineItemResponse `json:"lineItems"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	TaxRate           decimal.Decimal    `json:"taxRate"`
	TaxAmount         decimal.Decimal    `json:"taxAmount"`
	Total             decimal.Decimal    `json:"total"`
	Balance           decimal.Decimal    `json:"balance"`
	Status            string             `json:"status"`
	DepositID         string             `json:"depositID,omitempty"`
	Memo              string             `json:"memo,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID       string          `json:"entryID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	lines := make([]LineItemResponse, len(t.LineItems))
	for i, li := range t.LineItems {
		lines[i] = LineItemResponse{
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
			Amount:      li.Amount,
			AccountID:   li.AccountID,
		}
	}
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		TransactionType:   string(t.TransactionType),
		TransactionNumber: t.TransactionNumber,
		CustomerID:        t.CustomerID,
		VendorID:          t.VendorID,
		Date:              t.Date,
		DueDate:           t.DueDate,
		LineItems:         lines,
		Subtotal:          t.Subtotal,
		TaxRate:           t.TaxRate,
		TaxAmount:         t.TaxAmount,
		Total:             t.Total,
		Balance:           t.Balance,
		Status:            string(t.Status),
		DepositID:         t.DepositID,
		Memo:              t.Memo,
		CreatedAt:         t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ToJournalEntryResponses converts a slice of domain journal entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = JournalEntryResponse{
			EntryID:       e.EntryID,
			TransactionID: e.TransactionID,
			AccountID:     e.AccountID,
			Debit:         e.Debit,
			Credit:        e.Credit,
			Description:   e.Description,
			Date:          e.Date,
		}
	}
	return responses
}
