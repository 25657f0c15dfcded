package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qbclone/qbclone_backend/internal/apperrors"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	portsrepo "github.com/qbclone/qbclone_backend/internal/core/ports/repositories"
)

// PgxReportingRepository serves the read-only rows reports are folded from.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// ActiveAccountBalances retrieves every active account with its cached balance.
func (r *PgxReportingRepository) ActiveAccountBalances(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT account_id, name, account_type, detail_type, balance
		FROM accounts
		WHERE is_active = TRUE
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account balances", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.AccountID, &a.Name, &a.AccountType, &a.DetailType, &a.Balance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account balance row", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account balance rows", err)
	}
	return accounts, nil
}

// OpenDocuments retrieves unsettled invoices or bills with party names joined
// in, oldest first so aging rows come out in a stable order.
func (r *PgxReportingRepository) OpenDocuments(ctx context.Context, txnType domain.TransactionType) ([]domain.OpenDocument, error) {
	partyTable, partyColumn := "customers", "customer_id"
	if txnType == domain.TypeBill {
		partyTable, partyColumn = "vendors", "vendor_id"
	}
	query := `
		SELECT t.transaction_id, t.` + partyColumn + `, p.name, t.date, t.due_date, t.total, t.balance
		FROM transactions t
		JOIN ` + partyTable + ` p ON p.` + partyColumn + ` = t.` + partyColumn + `
		WHERE t.transaction_type = $1
		  AND t.status IN ($2, $3)
		  AND t.balance > 0
		ORDER BY t.date, t.transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, string(txnType), string(domain.StatusOpen), string(domain.StatusPartial))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open documents", err)
	}
	defer rows.Close()

	docs := []domain.OpenDocument{}
	for rows.Next() {
		var d domain.OpenDocument
		if err := rows.Scan(&d.TransactionID, &d.PartyID, &d.PartyName, &d.Date, &d.DueDate, &d.Total, &d.Balance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan open document row", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating open document rows", err)
	}
	return docs, nil
}
