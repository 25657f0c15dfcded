package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for business documents.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions, optionally filtered by type.
	// An empty txnType means no filter.
	ListTransactions(ctx context.Context, txnType domain.TransactionType) ([]domain.Transaction, error)

	// ListOpenTransactions retrieves one party's unsettled documents of the
	// given type (Open or Partial with an outstanding balance), oldest first.
	// Payment application works off this list.
	ListOpenTransactions(ctx context.Context, txnType domain.TransactionType, partyID string) ([]domain.Transaction, error)

	// ListUndepositedPayments retrieves payments and sales receipts held in
	// the given account and not yet swept by a deposit, oldest first.
	ListUndepositedPayments(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for business documents. All of
// them take a database transaction: document writes are only ever part of an
// atomic posting sequence.
type TransactionWriter interface {
	// SaveTransactionInTx persists a new transaction document.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// FindTransactionsByIDsForUpdate selects documents and locks them for
	// update, serializing concurrent payment application per document.
	FindTransactionsByIDsForUpdate(ctx context.Context, tx pgx.Tx, transactionIDs []string) (map[string]domain.Transaction, error)

	// UpdateSettlementInTx writes the fields the ledger owns on a posted
	// document: remaining balance, status, and deposit linkage. Structural
	// fields are never touched once journal entries exist.
	UpdateSettlementInTx(ctx context.Context, tx pgx.Tx, transactionID string, balance decimal.Decimal, status domain.TransactionStatus, depositID string) error

	// UpdateDocumentFieldsInTx writes the non-structural, non-monetary fields
	// a caller may edit after posting: due date and memo.
	UpdateDocumentFieldsInTx(ctx context.Context, tx pgx.Tx, transactionID string, dueDate *time.Time, memo string) error
}

// TransactionRepositoryFacade combines all document repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
