package mapping

import (
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	"github.com/qbclone/qbclone_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	lines := make([]models.LineItem, len(d.LineItems))
	for i, li := range d.LineItems {
		lines[i] = models.LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
			Amount:      li.Amount,
			AccountID:   li.AccountID,
			ClassID:     li.ClassID,
			LocationID:  li.LocationID,
		}
	}
	return models.Transaction{
		TransactionID:     d.TransactionID,
		TransactionType:   string(d.TransactionType),
		TransactionNumber: d.TransactionNumber,
		CustomerID:        d.CustomerID,
		VendorID:          d.VendorID,
		Date:              d.Date,
		DueDate:           d.DueDate,
		LineItems:         lines,
		Subtotal:          d.Subtotal,
		TaxRate:           d.TaxRate,
		TaxAmount:         d.TaxAmount,
		Total:             d.Total,
		Balance:           d.Balance,
		Status:            string(d.Status),
		DepositToAccount:  d.DepositToAccount,
		TransferFrom:      d.TransferFrom,
		TransferTo:        d.TransferTo,
		DepositID:         d.DepositID,
		PaymentMethod:     d.PaymentMethod,
		Memo:              d.Memo,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	lines := make([]domain.LineItem, len(m.LineItems))
	for i, li := range m.LineItems {
		lines[i] = domain.LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
			Amount:      li.Amount,
			AccountID:   li.AccountID,
			ClassID:     li.ClassID,
			LocationID:  li.LocationID,
		}
	}
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		TransactionType:   domain.TransactionType(m.TransactionType),
		TransactionNumber: m.TransactionNumber,
		CustomerID:        m.CustomerID,
		VendorID:          m.VendorID,
		Date:              m.Date,
		DueDate:           m.DueDate,
		LineItems:         lines,
		Subtotal:          m.Subtotal,
		TaxRate:           m.TaxRate,
		TaxAmount:         m.TaxAmount,
		Total:             m.Total,
		Balance:           m.Balance,
		Status:            domain.TransactionStatus(m.Status),
		DepositToAccount:  m.DepositToAccount,
		TransferFrom:      m.TransferFrom,
		TransferTo:        m.TransferTo,
		DepositID:         m.DepositID,
		PaymentMethod:     m.PaymentMethod,
		Memo:              m.Memo,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Debit:         d.Debit,
		Credit:        d.Credit,
		Description:   d.Description,
		Date:          d.Date,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Description:   m.Description,
		Date:          m.Date,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainJournalEntrySlice converts a slice of model JournalEntries.
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}
