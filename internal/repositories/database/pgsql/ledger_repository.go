package pgsql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qbclone/qbclone_backend/internal/apperrors"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	portsrepo "github.com/qbclone/qbclone_backend/internal/core/ports/repositories"
	"github.com/qbclone/qbclone_backend/internal/models"
	"github.com/qbclone/qbclone_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository stores business documents and their journal entries.
// Documents and entries are written together inside one transaction.
type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the repository for documents and entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const transactionColumns = `transaction_id, transaction_type, transaction_number, customer_id, vendor_id, date, due_date, line_items, subtotal, tax_rate, tax_amount, total, balance, status, deposit_to_account_id, transfer_from_account_id, transfer_to_account_id, deposit_id, payment_method, memo, created_at, updated_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	var customerID, vendorID, depositTo, transferFrom, transferTo, depositID, method, memo sql.NullString
	var lineItems []byte
	err := row.Scan(
		&m.TransactionID,
		&m.TransactionType,
		&m.TransactionNumber,
		&customerID,
		&vendorID,
		&m.Date,
		&m.DueDate,
		&lineItems,
		&m.Subtotal,
		&m.TaxRate,
		&m.TaxAmount,
		&m.Total,
		&m.Balance,
		&m.Status,
		&depositTo,
		&transferFrom,
		&transferTo,
		&depositID,
		&method,
		&memo,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(lineItems) > 0 {
		if err := json.Unmarshal(lineItems, &m.LineItems); err != nil {
			return nil, err
		}
	}
	m.CustomerID = customerID.String
	m.VendorID = vendorID.String
	m.DepositToAccount = depositTo.String
	m.TransferFrom = transferFrom.String
	m.TransferTo = transferTo.String
	m.DepositID = depositID.String
	m.PaymentMethod = method.String
	m.Memo = memo.String
	return &m, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// SaveTransactionInTx inserts a new document row inside a posting transaction.
func (r *PgxLedgerRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	lineItems, err := json.Marshal(m.LineItems)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode line items for "+m.TransactionID, err)
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.TransactionType,
		m.TransactionNumber,
		nullable(m.CustomerID),
		nullable(m.VendorID),
		m.Date,
		m.DueDate,
		lineItems,
		m.Subtotal,
		m.TaxRate,
		m.TaxAmount,
		m.Total,
		m.Balance,
		m.Status,
		nullable(m.DepositToAccount),
		nullable(m.TransferFrom),
		nullable(m.TransferTo),
		nullable(m.DepositID),
		nullable(m.PaymentMethod),
		nullable(m.Memo),
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // transaction_number collision
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a document by its ID.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	d := mapping.ToDomainTransaction(*m)
	return &d, nil
}

// ListTransactions retrieves documents newest first, optionally by type.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, txnType domain.TransactionType) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	args := []any{}
	if txnType != "" {
		query += ` WHERE transaction_type = $1`
		args = append(args, string(txnType))
	}
	query += ` ORDER BY date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		transactions = append(transactions, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return mapping.ToDomainTransactionSlice(transactions), nil
}

// ListOpenTransactions retrieves one party's unsettled documents, oldest first.
func (r *PgxLedgerRepository) ListOpenTransactions(ctx context.Context, txnType domain.TransactionType, partyID string) ([]domain.Transaction, error) {
	partyColumn := "customer_id"
	if txnType == domain.TypeBill {
		partyColumn = "vendor_id"
	}
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE transaction_type = $1
		  AND ` + partyColumn + ` = $2
		  AND status IN ($3, $4)
		  AND balance > 0
		ORDER BY date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, string(txnType), partyID, string(domain.StatusOpen), string(domain.StatusPartial))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open transactions", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan open transaction row", err)
		}
		transactions = append(transactions, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating open transaction rows", err)
	}
	return mapping.ToDomainTransactionSlice(transactions), nil
}

// ListUndepositedPayments retrieves payments and sales receipts still held in
// the given account, oldest first. These are the candidates for a deposit.
func (r *PgxLedgerRepository) ListUndepositedPayments(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE transaction_type IN ($2, $3)
		  AND deposit_to_account_id = $1
		  AND status NOT IN ($4, $5)
		ORDER BY date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, accountID,
		string(domain.TypePayment), string(domain.TypeSalesReceipt),
		string(domain.StatusDeposited), string(domain.StatusVoided))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query undeposited payments", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan undeposited payment row", err)
		}
		transactions = append(transactions, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating undeposited payment rows", err)
	}
	return mapping.ToDomainTransactionSlice(transactions), nil
}

// FindTransactionsByIDsForUpdate locks document rows for settlement updates.
func (r *PgxLedgerRepository) FindTransactionsByIDsForUpdate(ctx context.Context, tx pgx.Tx, transactionIDs []string) (map[string]domain.Transaction, error) {
	if len(transactionIDs) == 0 {
		return map[string]domain.Transaction{}, nil
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = ANY($1) ORDER BY transaction_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock transactions for update", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Transaction, len(transactionIDs))
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked transaction row", err)
		}
		result[m.TransactionID] = mapping.ToDomainTransaction(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked transaction rows", err)
	}
	return result, nil
}

// UpdateSettlementInTx writes the remaining balance, status, and deposit link
// on a posted document. These are the only fields the ledger mutates after
// journal entries exist.
func (r *PgxLedgerRepository) UpdateSettlementInTx(ctx context.Context, tx pgx.Tx, transactionID string, balance decimal.Decimal, status domain.TransactionStatus, depositID string) error {
	query := `
		UPDATE transactions
		SET balance = $2, status = $3, deposit_id = COALESCE($4, deposit_id), updated_at = NOW()
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, query, transactionID, balance, string(status), nullable(depositID))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update settlement for "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateDocumentFieldsInTx writes the editable non-monetary fields of a
// posted document: due date and memo.
func (r *PgxLedgerRepository) UpdateDocumentFieldsInTx(ctx context.Context, tx pgx.Tx, transactionID string, dueDate *time.Time, memo string) error {
	query := `
		UPDATE transactions
		SET due_date = $2, memo = $3, updated_at = NOW()
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, query, transactionID, dueDate, nullable(memo))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fields for "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveEntriesInTx appends a batch of journal entries inside a posting
// transaction. Entries are immutable facts; there is no update path.
func (r *PgxLedgerRepository) SaveEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_entries (entry_id, transaction_id, account_id, debit, credit, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, e := range entries {
		m := mapping.ToModelJournalEntry(e)
		batch.Queue(query,
			m.EntryID,
			m.TransactionID,
			m.AccountID,
			m.Debit,
			m.Credit,
			m.Description,
			m.Date,
			m.CreatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute journal entry batch", err)
	}
	return nil
}

const entryColumns = `entry_id, transaction_id, account_id, debit, credit, description, date, created_at`

func (r *PgxLedgerRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var m models.JournalEntry
		err := rows.Scan(
			&m.EntryID,
			&m.TransactionID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.Date,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return mapping.ToDomainJournalEntrySlice(entries), nil
}

// FindEntriesByTransactionID retrieves all entries posted for one document.
func (r *PgxLedgerRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	return r.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM journal_entries WHERE transaction_id = $1 ORDER BY created_at, entry_id;`,
		transactionID)
}

// FindEntriesByAccountID retrieves all entries touching one account, oldest first.
func (r *PgxLedgerRepository) FindEntriesByAccountID(ctx context.Context, accountID string) ([]domain.JournalEntry, error) {
	return r.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM journal_entries WHERE account_id = $1 ORDER BY date, created_at, entry_id;`,
		accountID)
}

// ListEntries retrieves every journal entry, oldest first.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	return r.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM journal_entries ORDER BY date, created_at, entry_id;`)
}
