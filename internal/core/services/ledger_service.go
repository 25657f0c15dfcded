package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/qbclone/qbclone_backend/internal/apperrors"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	"github.com/qbclone/qbclone_backend/internal/core/posting"
	portsrepo "github.com/qbclone/qbclone_backend/internal/core/ports/repositories"
	portssvc "github.com/qbclone/qbclone_backend/internal/core/ports/services"
	"github.com/qbclone/qbclone_backend/internal/dto"
	"github.com/qbclone/qbclone_backend/internal/middleware"
	"github.com/qbclone/qbclone_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrUnbalancedEntry     = errors.New("journal entries do not balance")
	ErrInsufficientEntries = errors.New("journal must have at least two non-zero entries")
	ErrSameAccount         = errors.New("transfer accounts must differ")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrAccountNotFound     = errors.New("account not found")
	ErrDocumentSettled     = errors.New("document no longer accepts payment application")
	ErrOverApplication     = errors.New("applied amount exceeds remaining balance")
)

// ledgerService is the transaction lifecycle manager: it turns business
// documents into balanced journal entries and keeps settlement state and
// cached balances consistent with the entry log.
type ledgerService struct {
	ledgerRepo   portsrepo.LedgerRepositoryWithTx
	accountRepo  portsrepo.AccountRepositoryWithTx
	customerRepo portsrepo.CustomerRepository
	vendorRepo   portsrepo.VendorRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryWithTx, accountRepo portsrepo.AccountRepositoryWithTx, customerRepo portsrepo.CustomerRepository, vendorRepo portsrepo.VendorRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// newTransactionNumber builds a human-readable document number like INV-3F2A9C01.
// A UNIQUE constraint on the store backs it; a collision surfaces as ErrDuplicate.
func newTransactionNumber(t domain.TransactionType) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%s", t.NumberPrefix(), strings.ToUpper(hex))
}

// resolveRoles maps chart-of-accounts roles to concrete account IDs by detail
// type. Roles with no matching active account stay empty; the posting engine
// rejects any rule that needs an unresolved role.
func (s *ledgerService) resolveRoles(ctx context.Context) (posting.Roles, error) {
	var roles posting.Roles
	targets := []struct {
		dest       *string
		detailType domain.AccountDetailType
	}{
		{&roles.AccountsReceivableID, domain.DetailAccountsReceivable},
		{&roles.AccountsPayableID, domain.DetailAccountsPayable},
		{&roles.UndepositedFundsID, domain.DetailUndepositedFunds},
		{&roles.SalesTaxPayableID, domain.DetailSalesTaxPayable},
	}
	for _, t := range targets {
		acc, err := s.accountRepo.FindAccountByDetailType(ctx, t.detailType)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return posting.Roles{}, fmt.Errorf("failed to resolve account roles: %w", err)
		}
		*t.dest = acc.AccountID
	}
	return roles, nil
}

func entryAccountIDs(entries []domain.JournalEntry) []string {
	seen := make(map[string]bool, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if !seen[e.AccountID] {
			seen[e.AccountID] = true
			ids = append(ids, e.AccountID)
		}
	}
	return ids
}

// post runs the atomic posting sequence: persist the document, append its
// journal entries, lock every touched account, and rebuild their cached
// balances from the entry log. The optional inTx hook runs before commit for
// settlement and party-balance side effects. Any failure rolls the whole
// sequence back.
func (s *ledgerService) post(ctx context.Context, txn *domain.Transaction, entries []domain.JournalEntry, inTx func(ctx context.Context, tx pgx.Tx) error) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin posting transaction: %w", err)
	}
	defer func() {
		if rbErr := s.ledgerRepo.Rollback(ctx, tx); rbErr != nil {
			logger.Error("failed to rollback posting transaction", slog.String("error", rbErr.Error()))
		}
	}()

	if txn != nil {
		if err := s.ledgerRepo.SaveTransactionInTx(ctx, tx, *txn); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
		}
	}
	if err := s.ledgerRepo.SaveEntriesInTx(ctx, tx, entries); err != nil {
		return fmt.Errorf("failed to save journal entries: %w", err)
	}

	accountIDs := entryAccountIDs(entries)
	if _, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, err.Error())
		}
		return fmt.Errorf("failed to lock accounts for posting: %w", err)
	}
	if err := s.accountRepo.RecomputeBalancesInTx(ctx, tx, accountIDs, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to recompute account balances: %w", err)
	}

	if inTx != nil {
		if err := inTx(ctx, tx); err != nil {
			return err
		}
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit posting transaction: %w", err)
	}
	return nil
}

// CreateTransaction validates a document, computes its totals, posts its
// journal entries, and recomputes touched account balances atomically.
func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (txn *domain.Transaction, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	txnType := domain.TransactionType(req.TransactionType)
	defer func() { middleware.ObservePosting(string(txnType), err) }()

	switch txnType {
	case domain.TypeInvoice:
		if req.CustomerID == "" {
			return nil, fmt.Errorf("%w: invoice requires a customer", apperrors.ErrValidation)
		}
	case domain.TypeBill:
		if req.VendorID == "" {
			return nil, fmt.Errorf("%w: bill requires a vendor", apperrors.ErrValidation)
		}
	case domain.TypeSalesReceipt, domain.TypeCheck:
		// deposit/bank account checked below once roles are resolved
	default:
		return nil, fmt.Errorf("%w: unsupported transaction type %q", apperrors.ErrValidation, req.TransactionType)
	}

	lineItems := make([]domain.LineItem, len(req.LineItems))
	subtotal := decimal.Zero
	for i, li := range req.LineItems {
		amount := li.Amount
		if amount.IsZero() {
			amount = li.Quantity.Mul(li.Rate)
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: line item %q", ErrInvalidAmount, li.Description)
		}
		lineItems[i] = domain.LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
			Amount:      amount,
			AccountID:   li.AccountID,
			ClassID:     li.ClassID,
			LocationID:  li.LocationID,
		}
		subtotal = subtotal.Add(amount)
	}
	if req.TaxRate.IsNegative() {
		return nil, fmt.Errorf("%w: tax rate must not be negative", apperrors.ErrValidation)
	}
	taxAmount := subtotal.Mul(req.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
	total := subtotal.Add(taxAmount)

	roles, err := s.resolveRoles(ctx)
	if err != nil {
		return nil, err
	}

	depositTo := req.DepositToAccountID
	if depositTo == "" && txnType == domain.TypeSalesReceipt {
		// Sales receipts land in Undeposited Funds until deposited.
		depositTo = roles.UndepositedFundsID
	}

	now := time.Now().UTC()
	document := domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionType:   txnType,
		TransactionNumber: newTransactionNumber(txnType),
		CustomerID:        req.CustomerID,
		VendorID:          req.VendorID,
		Date:              req.Date,
		DueDate:           req.DueDate,
		LineItems:         lineItems,
		Subtotal:          subtotal,
		TaxRate:           req.TaxRate,
		TaxAmount:         taxAmount,
		Total:             total,
		Balance:           total,
		Status:            domain.StatusOpen,
		DepositToAccount:  depositTo,
		Memo:              req.Memo,
		AuditFields:       domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if txnType == domain.TypeSalesReceipt || txnType == domain.TypeCheck {
		// Money moved at creation; nothing remains to settle.
		document.Balance = decimal.Zero
		document.Status = domain.StatusPaid
	}

	entries, err := posting.EntriesFor(document, roles)
	if err != nil {
		return nil, err
	}

	err = s.post(ctx, &document, entries, func(ctx context.Context, tx pgx.Tx) error {
		switch txnType {
		case domain.TypeInvoice:
			return s.customerRepo.AdjustCustomerBalanceInTx(ctx, tx, document.CustomerID, total, now)
		case domain.TypeBill:
			return s.vendorRepo.AdjustVendorBalanceInTx(ctx, tx, document.VendorID, total, now)
		}
		return nil
	})
	if err != nil {
		logger.Error("failed to post transaction",
			slog.String("transaction_type", string(txnType)),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("transaction posted",
		slog.String("transaction_id", document.TransactionID),
		slog.String("transaction_number", document.TransactionNumber),
		slog.String("transaction_type", string(txnType)),
		slog.String("total", total.String()))
	return &document, nil
}

// GetTransactionByID retrieves one document.
func (s *ledgerService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions retrieves documents, optionally filtered by type.
func (s *ledgerService) ListTransactions(ctx context.Context, txnType domain.TransactionType) ([]domain.Transaction, error) {
	return s.ledgerRepo.ListTransactions(ctx, txnType)
}

// UpdateTransaction edits the non-structural fields of a posted document.
// Line items and amounts are immutable once entries exist; corrections go
// through VoidTransaction and re-creation.
func (s *ledgerService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.Status == domain.StatusVoided {
		return nil, fmt.Errorf("%w: transaction %s is voided", apperrors.ErrValidation, transactionID)
	}

	if req.DueDate != nil {
		txn.DueDate = req.DueDate
	}
	if req.Memo != nil {
		txn.Memo = *req.Memo
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.ledgerRepo.Rollback(ctx, tx) //nolint:errcheck

	if err := s.ledgerRepo.UpdateDocumentFieldsInTx(ctx, tx, transactionID, txn.DueDate, txn.Memo); err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}
	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction update: %w", err)
	}
	return txn, nil
}

// VoidTransaction posts offsetting entries for the document's original posting
// and marks it Voided. Journal entries are never deleted; the void is itself
// an auditable posting. Payments and deposits are not voidable because their
// settlement side effects cannot be reversed by entries alone.
func (s *ledgerService) VoidTransaction(ctx context.Context, transactionID string) (txn *domain.Transaction, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	defer func() { middleware.ObservePosting("Void", err) }()

	txn, err = s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.Status == domain.StatusVoided {
		return nil, fmt.Errorf("%w: transaction %s is already voided", apperrors.ErrValidation, transactionID)
	}
	switch txn.TransactionType {
	case domain.TypePayment, domain.TypeDeposit:
		// Payments settle invoices and bills when they post, and deposits
		// stamp the payments they sweep. Reversing journal entries cannot
		// undo those settlement writes, so these documents are corrected
		// with new offsetting documents instead of a void.
		return nil, fmt.Errorf("%w: %s transactions cannot be voided; post an offsetting document instead",
			apperrors.ErrValidation, txn.TransactionType)
	}
	if txn.Status == domain.StatusDeposited {
		return nil, fmt.Errorf("%w: transaction %s is part of deposit %s", apperrors.ErrValidation, transactionID, txn.DepositID)
	}

	original, err := s.ledgerRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for %s: %w", transactionID, err)
	}

	now := time.Now().UTC()
	reversing := make([]domain.JournalEntry, len(original))
	for i, e := range original {
		reversing[i] = domain.JournalEntry{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     e.AccountID,
			Debit:         e.Credit,
			Credit:        e.Debit,
			Description:   fmt.Sprintf("Void - %s", e.Description),
			Date:          now,
			CreatedAt:     now,
		}
	}

	remaining := txn.Balance
	err = s.post(ctx, nil, reversing, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.ledgerRepo.UpdateSettlementInTx(ctx, tx, transactionID, decimal.Zero, domain.StatusVoided, ""); err != nil {
			return fmt.Errorf("failed to mark transaction voided: %w", err)
		}
		// The open balance disappears from the party's position with the void.
		switch {
		case txn.TransactionType == domain.TypeInvoice && txn.CustomerID != "" && !remaining.IsZero():
			return s.customerRepo.AdjustCustomerBalanceInTx(ctx, tx, txn.CustomerID, remaining.Neg(), now)
		case txn.TransactionType == domain.TypeBill && txn.VendorID != "" && !remaining.IsZero():
			return s.vendorRepo.AdjustVendorBalanceInTx(ctx, tx, txn.VendorID, remaining.Neg(), now)
		}
		return nil
	})
	if err != nil {
		logger.Error("failed to void transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, err
	}

	txn.Balance = decimal.Zero
	txn.Status = domain.StatusVoided
	logger.Info("transaction voided", slog.String("transaction_id", transactionID))
	return txn, nil
}

// ListOpenInvoices retrieves a customer's unsettled invoices, oldest first.
func (s *ledgerService) ListOpenInvoices(ctx context.Context, customerID string) ([]domain.Transaction, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	return s.ledgerRepo.ListOpenTransactions(ctx, domain.TypeInvoice, customerID)
}

// ListOpenBills retrieves a vendor's unsettled bills, oldest first.
func (s *ledgerService) ListOpenBills(ctx context.Context, vendorID string) ([]domain.Transaction, error) {
	if _, err := s.vendorRepo.FindVendorByID(ctx, vendorID); err != nil {
		return nil, fmt.Errorf("failed to find vendor %s: %w", vendorID, err)
	}
	return s.ledgerRepo.ListOpenTransactions(ctx, domain.TypeBill, vendorID)
}

// ListUndepositedPayments retrieves payments and sales receipts held in
// Undeposited Funds and not yet swept by a deposit.
func (s *ledgerService) ListUndepositedPayments(ctx context.Context) ([]domain.Transaction, error) {
	uf, err := s.accountRepo.FindAccountByDetailType(ctx, domain.DetailUndepositedFunds)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Without an Undeposited Funds account nothing can be held there.
			return []domain.Transaction{}, nil
		}
		return nil, fmt.Errorf("failed to resolve Undeposited Funds account: %w", err)
	}
	return s.ledgerRepo.ListUndepositedPayments(ctx, uf.AccountID)
}

// ReceivePayment records a customer payment and applies it to open invoices.
// The aggregate amount posts as one Payment document (debit deposit account,
// credit Accounts Receivable); each application reduces its invoice's balance.
// Applications must sum to the payment amount and may not exceed an invoice's
// remaining balance.
func (s *ledgerService) ReceivePayment(ctx context.Context, req dto.ReceivePaymentRequest) (resp *dto.ReceivePaymentResponse, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	defer func() { middleware.ObservePosting(string(domain.TypePayment), err) }()

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount %s", ErrInvalidAmount, req.Amount.String())
	}
	applied := decimal.Zero
	invoiceIDs := make([]string, 0, len(req.Applications))
	for _, app := range req.Applications {
		if app.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: application to invoice %s", ErrInvalidAmount, app.InvoiceID)
		}
		applied = applied.Add(app.Amount)
		invoiceIDs = append(invoiceIDs, app.InvoiceID)
	}
	if !applied.Equal(req.Amount) {
		return nil, fmt.Errorf("%w: applications sum to %s but payment amount is %s",
			apperrors.ErrValidation, applied.String(), req.Amount.String())
	}
	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", req.CustomerID, err)
	}

	roles, err := s.resolveRoles(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionType:   domain.TypePayment,
		TransactionNumber: newTransactionNumber(domain.TypePayment),
		CustomerID:        req.CustomerID,
		Date:              req.Date,
		Subtotal:          req.Amount,
		Total:             req.Amount,
		Balance:           decimal.Zero,
		Status:            domain.StatusOpen,
		DepositToAccount:  req.DepositToAccountID,
		PaymentMethod:     req.Method,
		AuditFields:       domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if payment.DepositToAccount == "" {
		payment.DepositToAccount = roles.UndepositedFundsID
	}

	entries, err := posting.EntriesFor(payment, roles)
	if err != nil {
		return nil, err
	}

	err = s.post(ctx, &payment, entries, func(ctx context.Context, tx pgx.Tx) error {
		invoices, err := s.ledgerRepo.FindTransactionsByIDsForUpdate(ctx, tx, invoiceIDs)
		if err != nil {
			return fmt.Errorf("failed to lock invoices: %w", err)
		}
		for _, app := range req.Applications {
			invoice, ok := invoices[app.InvoiceID]
			if !ok {
				return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, app.InvoiceID)
			}
			if invoice.TransactionType != domain.TypeInvoice || invoice.CustomerID != req.CustomerID {
				return fmt.Errorf("%w: %s is not an open invoice of customer %s",
					apperrors.ErrValidation, app.InvoiceID, req.CustomerID)
			}
			if invoice.Status != domain.StatusOpen && invoice.Status != domain.StatusPartial {
				return fmt.Errorf("%w: invoice %s has status %s", ErrDocumentSettled, app.InvoiceID, invoice.Status)
			}
			if app.Amount.GreaterThan(invoice.Balance) {
				return fmt.Errorf("%w: invoice %s has balance %s, application is %s",
					ErrOverApplication, app.InvoiceID, invoice.Balance.String(), app.Amount.String())
			}
			newBalance := invoice.Balance.Sub(app.Amount)
			newStatus := domain.StatusPartial
			if newBalance.LessThanOrEqual(decimal.Zero) {
				newStatus = domain.StatusPaid
			}
			if err := s.ledgerRepo.UpdateSettlementInTx(ctx, tx, app.InvoiceID, newBalance, newStatus, ""); err != nil {
				return fmt.Errorf("failed to apply payment to invoice %s: %w", app.InvoiceID, err)
			}
		}
		return s.customerRepo.AdjustCustomerBalanceInTx(ctx, tx, req.CustomerID, req.Amount.Neg(), now)
	})
	if err != nil {
		logger.Error("failed to receive payment", slog.String("customer_id", req.CustomerID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("payment received",
		slog.String("payment_id", payment.TransactionID),
		slog.String("customer_id", req.CustomerID),
		slog.String("amount", req.Amount.String()))
	return &dto.ReceivePaymentResponse{PaymentID: payment.TransactionID}, nil
}

// PayBills records a vendor payment and applies it to open bills: debit
// Accounts Payable, credit the payment account.
func (s *ledgerService) PayBills(ctx context.Context, req dto.PayBillsRequest) (resp *dto.PayBillsResponse, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	defer func() { middleware.ObservePosting(string(domain.TypePayment), err) }()

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount %s", ErrInvalidAmount, req.Amount.String())
	}
	applied := decimal.Zero
	billIDs := make([]string, 0, len(req.BillPayments))
	for _, bp := range req.BillPayments {
		if bp.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: application to bill %s", ErrInvalidAmount, bp.BillID)
		}
		applied = applied.Add(bp.Amount)
		billIDs = append(billIDs, bp.BillID)
	}
	if !applied.Equal(req.Amount) {
		return nil, fmt.Errorf("%w: bill payments sum to %s but payment amount is %s",
			apperrors.ErrValidation, applied.String(), req.Amount.String())
	}
	if _, err := s.vendorRepo.FindVendorByID(ctx, req.VendorID); err != nil {
		return nil, fmt.Errorf("failed to find vendor %s: %w", req.VendorID, err)
	}

	roles, err := s.resolveRoles(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionType:   domain.TypePayment,
		TransactionNumber: newTransactionNumber(domain.TypePayment),
		VendorID:          req.VendorID,
		Date:              req.Date,
		Subtotal:          req.Amount,
		Total:             req.Amount,
		Balance:           decimal.Zero,
		Status:            domain.StatusPaid,
		DepositToAccount:  req.PaymentAccountID,
		PaymentMethod:     req.Method,
		AuditFields:       domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	entries, err := posting.EntriesFor(payment, roles)
	if err != nil {
		return nil, err
	}

	err = s.post(ctx, &payment, entries, func(ctx context.Context, tx pgx.Tx) error {
		bills, err := s.ledgerRepo.FindTransactionsByIDsForUpdate(ctx, tx, billIDs)
		if err != nil {
			return fmt.Errorf("failed to lock bills: %w", err)
		}
		for _, bp := range req.BillPayments {
			bill, ok := bills[bp.BillID]
			if !ok {
				return fmt.Errorf("%w: bill %s", apperrors.ErrNotFound, bp.BillID)
			}
			if bill.TransactionType != domain.TypeBill || bill.VendorID != req.VendorID {
				return fmt.Errorf("%w: %s is not an open bill of vendor %s",
					apperrors.ErrValidation, bp.BillID, req.VendorID)
			}
			if bill.Status != domain.StatusOpen && bill.Status != domain.StatusPartial {
				return fmt.Errorf("%w: bill %s has status %s", ErrDocumentSettled, bp.BillID, bill.Status)
			}
			if bp.Amount.GreaterThan(bill.Balance) {
				return fmt.Errorf("%w: bill %s has balance %s, payment is %s",
					ErrOverApplication, bp.BillID, bill.Balance.String(), bp.Amount.String())
			}
			newBalance := bill.Balance.Sub(bp.Amount)
			newStatus := domain.StatusPartial
			if newBalance.LessThanOrEqual(decimal.Zero) {
				newStatus = domain.StatusPaid
			}
			if err := s.ledgerRepo.UpdateSettlementInTx(ctx, tx, bp.BillID, newBalance, newStatus, ""); err != nil {
				return fmt.Errorf("failed to apply payment to bill %s: %w", bp.BillID, err)
			}
		}
		return s.vendorRepo.AdjustVendorBalanceInTx(ctx, tx, req.VendorID, req.Amount.Neg(), now)
	})
	if err != nil {
		logger.Error("failed to pay bills", slog.String("vendor_id", req.VendorID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("bills paid",
		slog.String("payment_id", payment.TransactionID),
		slog.String("vendor_id", req.VendorID),
		slog.String("amount", req.Amount.String()))
	return &dto.PayBillsResponse{PaymentID: payment.TransactionID}, nil
}

// MakeDeposit moves undeposited customer payments into a bank account: it
// sums the referenced payments, posts debit-bank/credit-Undeposited-Funds for
// the total, and stamps each payment Deposited with a deposit link.
func (s *ledgerService) MakeDeposit(ctx context.Context, req dto.MakeDepositRequest) (resp *dto.MakeDepositResponse, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	defer func() { middleware.ObservePosting(string(domain.TypeDeposit), err) }()

	roles, err := s.resolveRoles(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	deposit := domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionType:   domain.TypeDeposit,
		TransactionNumber: newTransactionNumber(domain.TypeDeposit),
		Date:              req.Date,
		Balance:           decimal.Zero,
		Status:            domain.StatusPaid,
		DepositToAccount:  req.DepositToAccountID,
		AuditFields:       domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	err = func() error {
		tx, err := s.ledgerRepo.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin deposit transaction: %w", err)
		}
		defer s.ledgerRepo.Rollback(ctx, tx) //nolint:errcheck

		payments, err := s.ledgerRepo.FindTransactionsByIDsForUpdate(ctx, tx, req.PaymentIDs)
		if err != nil {
			return fmt.Errorf("failed to lock payments: %w", err)
		}
		total := decimal.Zero
		for _, id := range req.PaymentIDs {
			p, ok := payments[id]
			if !ok {
				return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, id)
			}
			if p.TransactionType != domain.TypePayment && p.TransactionType != domain.TypeSalesReceipt {
				return fmt.Errorf("%w: %s is not a depositable payment", apperrors.ErrValidation, id)
			}
			if p.Status == domain.StatusDeposited || p.Status == domain.StatusVoided {
				return fmt.Errorf("%w: payment %s has status %s", apperrors.ErrValidation, id, p.Status)
			}
			if p.DepositToAccount != roles.UndepositedFundsID {
				return fmt.Errorf("%w: payment %s is not held in Undeposited Funds", apperrors.ErrValidation, id)
			}
			total = total.Add(p.Total)
		}
		deposit.Subtotal = total
		deposit.Total = total

		entries, err := posting.EntriesFor(deposit, roles)
		if err != nil {
			return err
		}
		if err := s.ledgerRepo.SaveTransactionInTx(ctx, tx, deposit); err != nil {
			return fmt.Errorf("failed to save deposit: %w", err)
		}
		if err := s.ledgerRepo.SaveEntriesInTx(ctx, tx, entries); err != nil {
			return fmt.Errorf("failed to save deposit entries: %w", err)
		}

		accountIDs := entryAccountIDs(entries)
		if _, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrAccountNotFound, err.Error())
			}
			return fmt.Errorf("failed to lock accounts for deposit: %w", err)
		}
		if err := s.accountRepo.RecomputeBalancesInTx(ctx, tx, accountIDs, now); err != nil {
			return fmt.Errorf("failed to recompute balances for deposit: %w", err)
		}

		for _, id := range req.PaymentIDs {
			p := payments[id]
			if err := s.ledgerRepo.UpdateSettlementInTx(ctx, tx, id, p.Balance, domain.StatusDeposited, deposit.TransactionID); err != nil {
				return fmt.Errorf("failed to mark payment %s deposited: %w", id, err)
			}
		}
		return s.ledgerRepo.Commit(ctx, tx)
	}()
	if err != nil {
		logger.Error("failed to make deposit", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("deposit posted",
		slog.String("deposit_id", deposit.TransactionID),
		slog.String("total", deposit.Total.String()))
	return &dto.MakeDepositResponse{DepositID: deposit.TransactionID}, nil
}

// TransferFunds posts the two-entry move between accounts: debit the target,
// credit the source.
func (s *ledgerService) TransferFunds(ctx context.Context, req dto.TransferFundsRequest) (resp *dto.TransferFundsResponse, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	defer func() { middleware.ObservePosting(string(domain.TypeTransfer), err) }()

	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: %s", ErrSameAccount, req.FromAccountID)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transfer amount %s", ErrInvalidAmount, req.Amount.String())
	}

	now := time.Now().UTC()
	transfer := domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionType:   domain.TypeTransfer,
		TransactionNumber: newTransactionNumber(domain.TypeTransfer),
		Date:              req.Date,
		Subtotal:          req.Amount,
		Total:             req.Amount,
		Balance:           decimal.Zero,
		Status:            domain.StatusPaid,
		TransferFrom:      req.FromAccountID,
		TransferTo:        req.ToAccountID,
		Memo:              req.Memo,
		AuditFields:       domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	entries, err := posting.EntriesFor(transfer, posting.Roles{})
	if err != nil {
		return nil, err
	}

	if err = s.post(ctx, &transfer, entries, nil); err != nil {
		logger.Error("failed to transfer funds", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("transfer posted",
		slog.String("transfer_id", transfer.TransactionID),
		slog.String("from", req.FromAccountID),
		slog.String("to", req.ToAccountID),
		slog.String("amount", req.Amount.String()))
	return &dto.TransferFundsResponse{TransferID: transfer.TransactionID}, nil
}

// PostManualJournal persists caller-supplied debit/credit rows as one journal
// transaction. At least two non-zero rows are required and debits must equal
// credits within the balance epsilon.
func (s *ledgerService) PostManualJournal(ctx context.Context, req dto.PostManualJournalRequest) (resp *dto.PostManualJournalResponse, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	defer func() { middleware.ObservePosting(string(domain.TypeJournal), err) }()

	now := time.Now().UTC()
	transactionID := uuid.NewString()
	entries := make([]domain.JournalEntry, 0, len(req.Entries))
	total := decimal.Zero
	for _, line := range req.Entries {
		if line.AccountID == "" {
			return nil, fmt.Errorf("%w: journal row has no account", apperrors.ErrValidation)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: journal amounts must not be negative", ErrInvalidAmount)
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			continue
		}
		entries = append(entries, domain.JournalEntry{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     line.AccountID,
			Debit:         line.Debit,
			Credit:        line.Credit,
			Description:   line.Description,
			Date:          req.Date,
			CreatedAt:     now,
		})
		total = total.Add(line.Debit)
	}
	if len(entries) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientEntries, len(entries))
	}
	if debits, credits := accounting.EntryTotals(entries); !accounting.WithinEpsilon(debits, credits) {
		return nil, fmt.Errorf("%w: debits total %s, credits total %s",
			ErrUnbalancedEntry, debits.String(), credits.String())
	}

	accountIDs := entryAccountIDs(entries)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal accounts: %w", err)
	}
	for _, id := range accountIDs {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
	}

	journal := domain.Transaction{
		TransactionID:     transactionID,
		TransactionType:   domain.TypeJournal,
		TransactionNumber: newTransactionNumber(domain.TypeJournal),
		Date:              req.Date,
		Subtotal:          total,
		Total:             total,
		Balance:           decimal.Zero,
		Status:            domain.StatusPaid,
		Memo:              req.Memo,
		AuditFields:       domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err = s.post(ctx, &journal, entries, nil); err != nil {
		logger.Error("failed to post manual journal", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("manual journal posted",
		slog.String("transaction_id", transactionID),
		slog.Int("entries", len(entries)))
	return &dto.PostManualJournalResponse{TransactionID: transactionID, EntriesCreated: len(entries)}, nil
}

// ListEntriesByTransaction retrieves the entries posted for one document.
func (s *ledgerService) ListEntriesByTransaction(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	return s.ledgerRepo.FindEntriesByTransactionID(ctx, transactionID)
}

// ListJournalEntries retrieves the full entry log, oldest first.
func (s *ledgerService) ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	return s.ledgerRepo.ListEntries(ctx)
}
