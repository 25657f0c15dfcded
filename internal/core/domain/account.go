package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "Asset"
	Liability AccountType = "Liability"
	Equity    AccountType = "Equity"
	Income    AccountType = "Income"
	Expense   AccountType = "Expense"
)

// AccountDetailType refines the account type, e.g. a Checking account is an Asset.
// System accounts (Accounts Receivable, Accounts Payable, Undeposited Funds) are
// resolved by detail type, never by hardcoded ID.
type AccountDetailType string

const (
	DetailChecking           AccountDetailType = "Checking"
	DetailSavings            AccountDetailType = "Savings"
	DetailAccountsReceivable AccountDetailType = "Accounts Receivable"
	DetailUndepositedFunds   AccountDetailType = "Undeposited Funds"
	DetailInventory          AccountDetailType = "Inventory"
	DetailFixedAssets        AccountDetailType = "Fixed Assets"
	DetailAccountsPayable    AccountDetailType = "Accounts Payable"
	DetailSalesTaxPayable    AccountDetailType = "Sales Tax Payable"
	DetailCreditCard         AccountDetailType = "Credit Card"
	DetailLoan               AccountDetailType = "Loan"
	DetailOwnerEquity        AccountDetailType = "Owner's Equity"
	DetailRetainedEarnings   AccountDetailType = "Retained Earnings"
	DetailSales              AccountDetailType = "Sales"
	DetailServiceIncome      AccountDetailType = "Service Income"
	DetailOfficeExpenses     AccountDetailType = "Office Expenses"
	DetailTravel             AccountDetailType = "Travel"
	DetailMeals              AccountDetailType = "Meals & Entertainment"
)

// IsDebitNormal reports whether a debit increases the balance of this account type.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents a financial account in the chart of accounts.
// Balance is a materialized view over the account's journal entries:
// it always equals the signed sum of (debit - credit) and is recomputed
// transactionally whenever an entry referencing the account is inserted.
type Account struct {
	AccountID       string            `json:"accountID"`
	Name            string            `json:"name"`
	AccountType     AccountType       `json:"accountType"`
	DetailType      AccountDetailType `json:"detailType"`
	AccountNumber   string            `json:"accountNumber"`
	ParentAccountID string            `json:"parentAccountID"` // Nullable, must never equal AccountID
	OpeningBalance  decimal.Decimal   `json:"openingBalance"`
	Balance         decimal.Decimal   `json:"balance"`
	IsActive        bool              `json:"isActive"`
	AuditFields
}
