package services

import (
	"context"

	"github.com/qbclone/qbclone_backend/internal/core/domain"
)

// ReportingSvcFacade derives read-only reports from ledger state.
// Reports never mutate; calling one twice with no intervening writes
// yields identical results.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context) (*domain.TrialBalanceReport, error)
	BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error)
	IncomeStatement(ctx context.Context) (*domain.IncomeStatementReport, error)
	ArAging(ctx context.Context) (*domain.AgingReport, error)
	ApAging(ctx context.Context) (*domain.AgingReport, error)
	CashFlowProjection(ctx context.Context, months int) (*domain.CashFlowProjection, error)
}
