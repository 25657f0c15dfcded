package services

import (
	"context"

	"github.com/qbclone/qbclone_backend/internal/core/domain"
	"github.com/qbclone/qbclone_backend/internal/dto"
)

// LedgerSvcFacade is the transaction lifecycle manager: it turns business
// documents into balanced journal entries and maintains settlement state.
type LedgerSvcFacade interface {
	// CreateTransaction validates a document, computes its totals, posts its
	// journal entries, and recomputes touched account balances atomically.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, txnType domain.TransactionType) ([]domain.Transaction, error)

	// UpdateTransaction edits the non-structural fields of a posted document.
	// Structural edits are rejected; use VoidTransaction and re-create.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// VoidTransaction posts offsetting entries for the document's original
	// posting and marks it Voided. Journal entries are never deleted.
	// Payments and deposits are rejected; their settlement side effects are
	// corrected with offsetting documents.
	VoidTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListOpenInvoices retrieves a customer's unsettled invoices, the
	// candidates for payment application.
	ListOpenInvoices(ctx context.Context, customerID string) ([]domain.Transaction, error)

	// ListOpenBills retrieves a vendor's unsettled bills.
	ListOpenBills(ctx context.Context, vendorID string) ([]domain.Transaction, error)

	// ListUndepositedPayments retrieves payments held in Undeposited Funds,
	// the candidates for a deposit.
	ListUndepositedPayments(ctx context.Context) ([]domain.Transaction, error)

	ReceivePayment(ctx context.Context, req dto.ReceivePaymentRequest) (*dto.ReceivePaymentResponse, error)
	PayBills(ctx context.Context, req dto.PayBillsRequest) (*dto.PayBillsResponse, error)
	MakeDeposit(ctx context.Context, req dto.MakeDepositRequest) (*dto.MakeDepositResponse, error)
	TransferFunds(ctx context.Context, req dto.TransferFundsRequest) (*dto.TransferFundsResponse, error)
	PostManualJournal(ctx context.Context, req dto.PostManualJournalRequest) (*dto.PostManualJournalResponse, error)

	ListEntriesByTransaction(ctx context.Context, transactionID string) ([]domain.JournalEntry, error)
	ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error)
}
