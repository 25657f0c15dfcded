package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entries.
type JournalEntryReader interface {
	// FindEntriesByTransactionID retrieves all entries posted for one document.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error)

	// FindEntriesByAccountID retrieves all entries touching one account,
	// oldest first. Balance derivation folds these.
	FindEntriesByAccountID(ctx context.Context, accountID string) ([]domain.JournalEntry, error)

	// ListEntries retrieves every journal entry, oldest first.
	ListEntries(ctx context.Context) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations for journal entries.
// Entries are append-only: there is no update or delete.
type JournalEntryWriter interface {
	// SaveEntriesInTx persists a batch of entries within a posting transaction.
	SaveEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error
}

// JournalEntryRepositoryFacade combines the journal entry interfaces.
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// LedgerRepositoryWithTx is the combined surface the lifecycle manager posts
// through: documents, entries, and the transaction manager that makes the
// sequence atomic.
type LedgerRepositoryWithTx interface {
	TransactionRepositoryFacade
	JournalEntryRepositoryFacade
	TransactionManager
}
