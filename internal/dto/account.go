package dto

import (
	"time"

	"github.com/qbclone/qbclone_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Name               string          `json:"name" binding:"required"`
	AccountType        string          `json:"accountType" binding:"required,oneof=Asset Liability Equity Income Expense"`
	DetailType         string          `json:"detailType" binding:"required"`
	AccountNumber      string          `json:"accountNumber"`
	ParentAccountID    string          `json:"parentAccountID"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	OpeningBalanceDate *time.Time      `json:"openingBalanceDate"`
}

// UpdateAccountRequest defines the payload for updating an account's
// descriptive fields. Nil fields are left unchanged.
type UpdateAccountRequest struct {
	Name          *string `json:"name"`
	AccountNumber *string `json:"accountNumber"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string          `json:"accountID"`
	Name            string          `json:"name"`
	AccountType     string          `json:"accountType"`
	DetailType      string          `json:"detailType"`
	AccountNumber   string          `json:"accountNumber,omitempty"`
	ParentAccountID string          `json:"parentAccountID,omitempty"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	Balance         decimal.Decimal `json:"balance"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		DetailType:      string(a.DetailType),
		AccountNumber:   a.AccountNumber,
		ParentAccountID: a.ParentAccountID,
		OpeningBalance:  a.OpeningBalance,
		Balance:         a.Balance,
		IsActive:        a.IsActive,
		CreatedAt:       a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
