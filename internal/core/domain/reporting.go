package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenDocument is a reporting projection of an unsettled invoice or bill:
// just the fields aging and cash-flow derivations need.
type OpenDocument struct {
	TransactionID string          `json:"transactionID"`
	PartyID       string          `json:"partyID"`
	PartyName     string          `json:"partyName"`
	Date          time.Time       `json:"date"`
	DueDate       *time.Time      `json:"dueDate"`
	Total         decimal.Decimal `json:"total"`
	Balance       decimal.Decimal `json:"balance"`
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every active account's balance split into debit and
// credit columns, used to verify debits equal credits ledger-wide.
type TrialBalanceReport struct {
	Rows         []TrialBalanceRow `json:"trialBalance"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	Balanced     bool              `json:"balanced"`
}

// AccountBalance pairs an account with its derived balance for report sections.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// BalanceSheetReport states assets against liabilities plus equity.
type BalanceSheetReport struct {
	Assets           []AccountBalance `json:"assets"`
	Liabilities      []AccountBalance `json:"liabilities"`
	Equity           []AccountBalance `json:"equity"`
	TotalAssets      decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities decimal.Decimal  `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal  `json:"totalEquity"`
	Balanced         bool             `json:"balanced"`
}

// IncomeStatementReport nets income accounts against expense accounts.
type IncomeStatementReport struct {
	Income        []AccountBalance `json:"income"`
	Expenses      []AccountBalance `json:"expenses"`
	TotalIncome   decimal.Decimal  `json:"totalIncome"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	NetIncome     decimal.Decimal  `json:"netIncome"`
}

// AgingBuckets groups an outstanding balance by how overdue it is.
type AgingBuckets struct {
	Current    decimal.Decimal `json:"current"`
	Days31To60 decimal.Decimal `json:"days_31_60"`
	Days61To90 decimal.Decimal `json:"days_61_90"`
	Over90     decimal.Decimal `json:"over_90"`
}

// Total sums all buckets.
func (b AgingBuckets) Total() decimal.Decimal {
	return b.Current.Add(b.Days31To60).Add(b.Days61To90).Add(b.Over90)
}

// AgingRow is the aging position of one customer or vendor.
type AgingRow struct {
	PartyID   string       `json:"partyID"`
	PartyName string       `json:"partyName"`
	Buckets   AgingBuckets `json:"buckets"`
}

// AgingReport buckets outstanding invoice or bill balances per party.
type AgingReport struct {
	Rows  []AgingRow   `json:"rows"`
	Total AgingBuckets `json:"total"`
}

// CashFlowMonth is one month of the forward cash-flow projection.
type CashFlowMonth struct {
	Month           string          `json:"month"` // YYYY-MM
	ExpectedInflow  decimal.Decimal `json:"expectedInflow"`
	ExpectedOutflow decimal.Decimal `json:"expectedOutflow"`
	NetFlow         decimal.Decimal `json:"netFlow"`
	RunningBalance  decimal.Decimal `json:"runningBalance"`
}

// CashFlowProjection is a simplified forward model, explicitly a projection
// and not a guarantee.
type CashFlowProjection struct {
	StartingBalance decimal.Decimal `json:"startingBalance"`
	Months          []CashFlowMonth `json:"months"`
}
