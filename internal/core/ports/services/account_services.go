package services

import (
	"context"

	"github.com/qbclone/qbclone_backend/internal/core/domain"
	"github.com/qbclone/qbclone_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade defines the operations the chart-of-accounts service exposes.
type AccountSvcFacade interface {
	// CreateAccount creates an account, posting an opening-balance journal
	// entry when the opening balance is non-zero.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string) error

	// CalculateAccountBalance derives the balance independently from the
	// journal entry log, bypassing the cached value.
	CalculateAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}
