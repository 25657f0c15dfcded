package repositories

import (
	"context"

	"github.com/qbclone/qbclone_backend/internal/core/domain"
)

// ReportingRepository provides the raw rows the report projector folds.
// It is read-only; all report math lives in the service layer.
type ReportingRepository interface {
	// ActiveAccountBalances retrieves every active account with its cached
	// balance, which by invariant equals the fold of its journal entries.
	ActiveAccountBalances(ctx context.Context) ([]domain.Account, error)

	// OpenDocuments retrieves unsettled documents of the given type (invoices
	// for receivable aging, bills for payable aging) with party names joined
	// in. Voided and fully settled documents are excluded.
	OpenDocuments(ctx context.Context, txnType domain.TransactionType) ([]domain.OpenDocument, error)
}
