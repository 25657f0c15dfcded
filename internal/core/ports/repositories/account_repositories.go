package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByDetailType retrieves the first active account with the given
	// detail type. Used to resolve system-account roles (AR, AP, Undeposited
	// Funds) by attribute rather than by hardcoded ID.
	FindAccountByDetailType(ctx context.Context, detailType domain.AccountDetailType) (*domain.Account, error)

	// ListAccounts retrieves all active accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's descriptive fields.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive (soft delete).
	DeactivateAccount(ctx context.Context, accountID string, now time.Time) error
}

// AccountTransactionSupport defines operations used inside a posting transaction.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update
	// within a transaction, serializing concurrent postings per account.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// RecomputeBalancesInTx rebuilds the cached balance of each account from
	// its journal entries (sum of debit - credit) within the transaction.
	// The balance is a materialized view of the entry log, never incremented.
	RecomputeBalancesInTx(ctx context.Context, tx pgx.Tx, accountIDs []string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
