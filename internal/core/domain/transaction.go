package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the business document a transaction represents.
type TransactionType string

const (
	TypeInvoice      TransactionType = "Invoice"
	TypeBill         TransactionType = "Bill"
	TypePayment      TransactionType = "Payment"
	TypeSalesReceipt TransactionType = "SalesReceipt"
	TypeDeposit      TransactionType = "Deposit"
	TypeCheck        TransactionType = "Check"
	TypeTransfer     TransactionType = "Transfer"
	TypeJournal      TransactionType = "Journal"
)

// NumberPrefix returns the short prefix used in generated transaction numbers.
func (t TransactionType) NumberPrefix() string {
	switch t {
	case TypeInvoice:
		return "INV"
	case TypeBill:
		return "BIL"
	case TypePayment:
		return "PAY"
	case TypeSalesReceipt:
		return "SAL"
	case TypeDeposit:
		return "DEP"
	case TypeCheck:
		return "CHK"
	case TypeTransfer:
		return "TRF"
	case TypeJournal:
		return "JRN"
	default:
		return "TXN"
	}
}

// TransactionStatus tracks the payment lifecycle of a document.
// Open -> {Partial, Paid, Voided}; Partial -> {Paid, Voided}.
// Paid and Deposited are terminal for payment application.
type TransactionStatus string

const (
	StatusOpen      TransactionStatus = "Open"
	StatusPartial   TransactionStatus = "Partial"
	StatusPaid      TransactionStatus = "Paid"
	StatusDeposited TransactionStatus = "Deposited"
	StatusVoided    TransactionStatus = "Voided"
)

// LineItem is a value object owned by a Transaction. AccountID drives posting.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   string          `json:"accountID"`
	ClassID     string          `json:"classID"`
	LocationID  string          `json:"locationID"`
}

// Transaction is a business document (invoice, bill, payment, deposit, ...).
// Balance is the remaining unpaid amount, initialized to Total and mutated
// only by payment or deposit application. Once journal entries exist for a
// transaction its monetary fields are never edited directly; corrections go
// through voiding (reversing entries) and re-creation.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`
	TransactionType   TransactionType   `json:"transactionType"`
	TransactionNumber string            `json:"transactionNumber"`
	CustomerID        string            `json:"customerID"`
	VendorID          string            `json:"vendorID"`
	Date              time.Time         `json:"date"`
	DueDate           *time.Time        `json:"dueDate"`
	LineItems         []LineItem        `json:"lineItems"`
	Subtotal          decimal.Decimal   `json:"subtotal"`
	TaxRate           decimal.Decimal   `json:"taxRate"`
	TaxAmount         decimal.Decimal   `json:"taxAmount"`
	Total             decimal.Decimal   `json:"total"`
	Balance           decimal.Decimal   `json:"balance"`
	Status            TransactionStatus `json:"status"`
	DepositToAccount  string            `json:"depositToAccountID"`
	TransferFrom      string            `json:"transferFromAccountID"`
	TransferTo        string            `json:"transferToAccountID"`
	DepositID         string            `json:"depositID"`
	PaymentMethod     string            `json:"paymentMethod"`
	Memo              string            `json:"memo"`
	AuditFields
}
