package posting

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qbclone/qbclone_backend/internal/apperrors"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntriesFor maps a business transaction to its balanced set of journal
// entries according to the fixed posting rule table. It is a pure function of
// the transaction payload and the resolved role mapping; it performs no I/O.
//
//	Invoice       debit AR (total)              credit line accounts (+ tax payable)
//	Bill          debit line accounts (+ tax)   credit AP (total)
//	SalesReceipt  debit deposit acct (total)    credit line accounts (+ tax payable)
//	Payment       debit deposit acct            credit AR            (customer side)
//	              debit AP                      credit payment acct  (vendor side)
//	Check         debit line accounts (+ tax)   credit bank acct (total)
//	Transfer      debit to-account              credit from-account
//	Deposit       debit deposit acct (total)    credit Undeposited Funds (total)
//
// A line item without an account ID fails the transaction with a validation
// error; so does an unresolved role. Either would otherwise produce an
// unbalanced posting. Emitted entries share the transaction's ID and date.
func EntriesFor(txn domain.Transaction, roles Roles) ([]domain.JournalEntry, error) {
	switch txn.TransactionType {
	case domain.TypeInvoice:
		return invoiceEntries(txn, roles)
	case domain.TypeBill:
		return billEntries(txn, roles)
	case domain.TypeSalesReceipt:
		return salesReceiptEntries(txn, roles)
	case domain.TypePayment:
		return paymentEntries(txn, roles)
	case domain.TypeCheck:
		return checkEntries(txn, roles)
	case domain.TypeTransfer:
		return transferEntries(txn)
	case domain.TypeDeposit:
		return depositEntries(txn, roles)
	default:
		return nil, fmt.Errorf("%w: no posting rule for transaction type %q",
			apperrors.ErrValidation, txn.TransactionType)
	}
}

// newEntry builds one journal line inheriting the transaction's ID and date.
func newEntry(txn domain.Transaction, accountID string, debit, credit decimal.Decimal, description string) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:       uuid.NewString(),
		TransactionID: txn.TransactionID,
		AccountID:     accountID,
		Debit:         debit,
		Credit:        credit,
		Description:   description,
		Date:          txn.Date,
		CreatedAt:     time.Now().UTC(),
	}
}

// lineEntries emits one entry per line item on the given side.
func lineEntries(txn domain.Transaction, debitSide bool, label string) ([]domain.JournalEntry, error) {
	entries := make([]domain.JournalEntry, 0, len(txn.LineItems))
	for _, item := range txn.LineItems {
		if item.AccountID == "" {
			return nil, fmt.Errorf("%w: line item %q has no account", apperrors.ErrValidation, item.Description)
		}
		desc := fmt.Sprintf("%s - %s", label, item.Description)
		if debitSide {
			entries = append(entries, newEntry(txn, item.AccountID, item.Amount, decimal.Zero, desc))
		} else {
			entries = append(entries, newEntry(txn, item.AccountID, decimal.Zero, item.Amount, desc))
		}
	}
	return entries, nil
}

// taxEntry emits the sales-tax counter-entry when the document carries tax,
// keeping line-item postings balanced against the document total.
func taxEntry(txn domain.Transaction, roles Roles, debitSide bool, label string) (*domain.JournalEntry, error) {
	if txn.TaxAmount.IsZero() {
		return nil, nil
	}
	taxID, err := roles.require("sales_tax_payable")
	if err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("%s - sales tax", label)
	var e domain.JournalEntry
	if debitSide {
		e = newEntry(txn, taxID, txn.TaxAmount, decimal.Zero, desc)
	} else {
		e = newEntry(txn, taxID, decimal.Zero, txn.TaxAmount, desc)
	}
	return &e, nil
}

func invoiceEntries(txn domain.Transaction, roles Roles) ([]domain.JournalEntry, error) {
	arID, err := roles.require("accounts_receivable")
	if err != nil {
		return nil, err
	}
	label := "Invoice"
	entries := []domain.JournalEntry{
		newEntry(txn, arID, txn.Total, decimal.Zero, fmt.Sprintf("%s - %s", label, txn.TransactionNumber)),
	}
	lines, err := lineEntries(txn, false, label)
	if err != nil {
		return nil, err
	}
	entries = append(entries, lines...)
	tax, err := taxEntry(txn, roles, false, label)
	if err != nil {
		return nil, err
	}
	if tax != nil {
		entries = append(entries, *tax)
	}
	return entries, nil
}

func billEntries(txn domain.Transaction, roles Roles) ([]domain.JournalEntry, error) {
	apID, err := roles.require("accounts_payable")
	if err != nil {
		return nil, err
	}
	label := "Bill"
	entries := []domain.JournalEntry{
		newEntry(txn, apID, decimal.Zero, txn.Total, fmt.Sprintf("%s - %s", label, txn.TransactionNumber)),
	}
	lines, err := lineEntries(txn, true, label)
	if err != nil {
		return nil, err
	}
	entries = append(entries, lines...)
	tax, err := taxEntry(txn, roles, true, label)
	if err != nil {
		return nil, err
	}
	if tax != nil {
		entries = append(entries, *tax)
	}
	return entries, nil
}

func salesReceiptEntries(txn domain.Transaction, roles Roles) ([]domain.JournalEntry, error) {
	if txn.DepositToAccount == "" {
		return nil, fmt.Errorf("%w: sales receipt requires a deposit account", apperrors.ErrValidation)
	}
	label := "Sales Receipt"
	entries := []domain.JournalEntry{
		newEntry(txn, txn.DepositToAccount, txn.Total, decimal.Zero, fmt.Sprintf("%s - %s", label, txn.TransactionNumber)),
	}
	lines, err := lineEntries(txn, false, label)
	if err != nil {
		return nil, err
	}
	entries = append(entries, lines...)
	tax, err := taxEntry(txn, roles, false, label)
	if err != nil {
		return nil, err
	}
	if tax != nil {
		entries = append(entries, *tax)
	}
	return entries, nil
}

func paymentEntries(txn domain.Transaction, roles Roles) ([]domain.JournalEntry, error) {
	if txn.DepositToAccount == "" {
		return nil, fmt.Errorf("%w: payment requires a deposit or payment account", apperrors.ErrValidation)
	}
	label := fmt.Sprintf("Payment - %s", txn.TransactionNumber)
	if txn.VendorID != "" {
		// Bill payment: settle Accounts Payable out of the payment account.
		apID, err := roles.require("accounts_payable")
		if err != nil {
			return nil, err
		}
		return []domain.JournalEntry{
			newEntry(txn, apID, txn.Total, decimal.Zero, label),
			newEntry(txn, txn.DepositToAccount, decimal.Zero, txn.Total, label),
		}, nil
	}
	// Customer payment received: move Accounts Receivable into the deposit account.
	arID, err := roles.require("accounts_receivable")
	if err != nil {
		return nil, err
	}
	return []domain.JournalEntry{
		newEntry(txn, txn.DepositToAccount, txn.Total, decimal.Zero, label),
		newEntry(txn, arID, decimal.Zero, txn.Total, label),
	}, nil
}

func checkEntries(txn domain.Transaction, roles Roles) ([]domain.JournalEntry, error) {
	if txn.DepositToAccount == "" {
		return nil, fmt.Errorf("%w: check requires a bank account", apperrors.ErrValidation)
	}
	label := "Check"
	lines, err := lineEntries(txn, true, label)
	if err != nil {
		return nil, err
	}
	entries := lines
	tax, err := taxEntry(txn, roles, true, label)
	if err != nil {
		return nil, err
	}
	if tax != nil {
		entries = append(entries, *tax)
	}
	entries = append(entries, newEntry(txn, txn.DepositToAccount, decimal.Zero, txn.Total,
		fmt.Sprintf("%s - %s", label, txn.TransactionNumber)))
	return entries, nil
}

func transferEntries(txn domain.Transaction) ([]domain.JournalEntry, error) {
	if txn.TransferFrom == "" || txn.TransferTo == "" {
		return nil, fmt.Errorf("%w: transfer requires both accounts", apperrors.ErrValidation)
	}
	label := fmt.Sprintf("Transfer - %s", txn.TransactionNumber)
	return []domain.JournalEntry{
		newEntry(txn, txn.TransferTo, txn.Total, decimal.Zero, label),
		newEntry(txn, txn.TransferFrom, decimal.Zero, txn.Total, label),
	}, nil
}

func depositEntries(txn domain.Transaction, roles Roles) ([]domain.JournalEntry, error) {
	if txn.DepositToAccount == "" {
		return nil, fmt.Errorf("%w: deposit requires a target account", apperrors.ErrValidation)
	}
	ufID, err := roles.require("undeposited_funds")
	if err != nil {
		return nil, err
	}
	label := fmt.Sprintf("Deposit - %s", txn.TransactionNumber)
	return []domain.JournalEntry{
		newEntry(txn, txn.DepositToAccount, txn.Total, decimal.Zero, label),
		newEntry(txn, ufID, decimal.Zero, txn.Total, label),
	}, nil
}
