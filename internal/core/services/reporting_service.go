package services

import (
	"context"
	"fmt"
	"time"

	"github.com/qbclone/qbclone_backend/internal/apperrors"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	portsrepo "github.com/qbclone/qbclone_backend/internal/core/ports/repositories"
	portssvc "github.com/qbclone/qbclone_backend/internal/core/ports/services"
	"github.com/qbclone/qbclone_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	// collectionRate discounts expected invoice inflows in the cash-flow
	// projection; paymentRate does the same for bill outflows.
	collectionRate = decimal.RequireFromString("0.8")
	paymentRate    = decimal.RequireFromString("0.9")
)

// reportingService derives read-only reports from ledger state. It holds no
// state of its own; calling any report twice with no intervening writes
// yields identical results.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	now           func() time.Time
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance lists every active account's balance split into debit and
// credit columns. A positive balance on a debit-normal account lands in the
// debit column; everything else lands in the credit column as an absolute
// value.
func (s *reportingService) TrialBalance(ctx context.Context) (*domain.TrialBalanceReport, error) {
	accounts, err := s.reportingRepo.ActiveAccountBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load account balances: %w", err)
	}

	report := &domain.TrialBalanceReport{
		Rows:         make([]domain.TrialBalanceRow, 0, len(accounts)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, a := range accounts {
		row := domain.TrialBalanceRow{
			AccountID:   a.AccountID,
			AccountName: a.Name,
			AccountType: a.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if a.Balance.IsPositive() && a.AccountType.IsDebitNormal() {
			row.Debit = a.Balance
		} else if a.Balance.IsNegative() || !a.AccountType.IsDebitNormal() {
			row.Credit = a.Balance.Abs()
		}
		report.Rows = append(report.Rows, row)
		report.TotalDebits = report.TotalDebits.Add(row.Debit)
		report.TotalCredits = report.TotalCredits.Add(row.Credit)
	}
	report.Balanced = accounting.WithinEpsilon(report.TotalDebits, report.TotalCredits)
	return report, nil
}

// BalanceSheet states assets against liabilities plus equity.
func (s *reportingService) BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error) {
	accounts, err := s.reportingRepo.ActiveAccountBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load account balances: %w", err)
	}

	report := &domain.BalanceSheetReport{
		Assets:           []domain.AccountBalance{},
		Liabilities:      []domain.AccountBalance{},
		Equity:           []domain.AccountBalance{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, a := range accounts {
		entry := domain.AccountBalance{AccountID: a.AccountID, Name: a.Name, Balance: a.Balance}
		switch a.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, entry)
			report.TotalAssets = report.TotalAssets.Add(a.Balance)
		case domain.Liability:
			// Liability balances are credit-normal, so the fold comes out
			// negative; report them as positive obligations.
			entry.Balance = a.Balance.Neg()
			report.Liabilities = append(report.Liabilities, entry)
			report.TotalLiabilities = report.TotalLiabilities.Add(entry.Balance)
		case domain.Equity:
			entry.Balance = a.Balance.Neg()
			report.Equity = append(report.Equity, entry)
			report.TotalEquity = report.TotalEquity.Add(entry.Balance)
		}
	}
	report.Balanced = accounting.WithinEpsilon(report.TotalAssets, report.TotalLiabilities.Add(report.TotalEquity))
	return report, nil
}

// IncomeStatement nets income accounts against expense accounts.
func (s *reportingService) IncomeStatement(ctx context.Context) (*domain.IncomeStatementReport, error) {
	accounts, err := s.reportingRepo.ActiveAccountBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load account balances: %w", err)
	}

	report := &domain.IncomeStatementReport{
		Income:        []domain.AccountBalance{},
		Expenses:      []domain.AccountBalance{},
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, a := range accounts {
		entry := domain.AccountBalance{AccountID: a.AccountID, Name: a.Name, Balance: a.Balance}
		switch a.AccountType {
		case domain.Income:
			// Income is credit-normal; flip the sign for presentation.
			entry.Balance = a.Balance.Neg()
			report.Income = append(report.Income, entry)
			report.TotalIncome = report.TotalIncome.Add(entry.Balance)
		case domain.Expense:
			report.Expenses = append(report.Expenses, entry)
			report.TotalExpenses = report.TotalExpenses.Add(a.Balance)
		}
	}
	report.NetIncome = report.TotalIncome.Sub(report.TotalExpenses)
	return report, nil
}

// agingReport buckets open document balances per party by days elapsed since
// the document date: up to 30, 31-60, 61-90, and over 90.
func (s *reportingService) agingReport(ctx context.Context, txnType domain.TransactionType) (*domain.AgingReport, error) {
	docs, err := s.reportingRepo.OpenDocuments(ctx, txnType)
	if err != nil {
		return nil, fmt.Errorf("failed to load open documents: %w", err)
	}

	today := s.now()
	byParty := map[string]*domain.AgingRow{}
	order := []string{}
	for _, doc := range docs {
		amount := doc.Balance
		if amount.IsZero() {
			amount = doc.Total
		}
		row, ok := byParty[doc.PartyID]
		if !ok {
			row = &domain.AgingRow{PartyID: doc.PartyID, PartyName: doc.PartyName}
			byParty[doc.PartyID] = row
			order = append(order, doc.PartyID)
		}
		days := int(today.Sub(doc.Date).Hours() / 24)
		switch {
		case days <= 30:
			row.Buckets.Current = row.Buckets.Current.Add(amount)
		case days <= 60:
			row.Buckets.Days31To60 = row.Buckets.Days31To60.Add(amount)
		case days <= 90:
			row.Buckets.Days61To90 = row.Buckets.Days61To90.Add(amount)
		default:
			row.Buckets.Over90 = row.Buckets.Over90.Add(amount)
		}
	}

	report := &domain.AgingReport{Rows: make([]domain.AgingRow, 0, len(order))}
	for _, partyID := range order {
		row := byParty[partyID]
		report.Rows = append(report.Rows, *row)
		report.Total.Current = report.Total.Current.Add(row.Buckets.Current)
		report.Total.Days31To60 = report.Total.Days31To60.Add(row.Buckets.Days31To60)
		report.Total.Days61To90 = report.Total.Days61To90.Add(row.Buckets.Days61To90)
		report.Total.Over90 = report.Total.Over90.Add(row.Buckets.Over90)
	}
	return report, nil
}

// ArAging buckets outstanding invoice balances per customer.
func (s *reportingService) ArAging(ctx context.Context) (*domain.AgingReport, error) {
	return s.agingReport(ctx, domain.TypeInvoice)
}

// ApAging buckets outstanding bill balances per vendor.
func (s *reportingService) ApAging(ctx context.Context) (*domain.AgingReport, error) {
	return s.agingReport(ctx, domain.TypeBill)
}

// CashFlowProjection is a simplified forward model over the next N months:
// expected inflow is the sum of open invoice balances due that month scaled
// by the collection rate, expected outflow the open bill balances due that
// month scaled by the payment rate, with the running balance carried forward
// from the current bank balances.
func (s *reportingService) CashFlowProjection(ctx context.Context, months int) (*domain.CashFlowProjection, error) {
	if months < 1 || months > 24 {
		return nil, fmt.Errorf("%w: projection months must be between 1 and 24", apperrors.ErrValidation)
	}

	accounts, err := s.reportingRepo.ActiveAccountBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load account balances: %w", err)
	}
	starting := decimal.Zero
	for _, a := range accounts {
		if a.DetailType == domain.DetailChecking || a.DetailType == domain.DetailSavings {
			starting = starting.Add(a.Balance)
		}
	}

	invoices, err := s.reportingRepo.OpenDocuments(ctx, domain.TypeInvoice)
	if err != nil {
		return nil, fmt.Errorf("failed to load open invoices: %w", err)
	}
	bills, err := s.reportingRepo.OpenDocuments(ctx, domain.TypeBill)
	if err != nil {
		return nil, fmt.Errorf("failed to load open bills: %w", err)
	}

	inflowByMonth := sumBalancesByDueMonth(invoices)
	outflowByMonth := sumBalancesByDueMonth(bills)

	today := s.now()
	projection := &domain.CashFlowProjection{
		StartingBalance: starting,
		Months:          make([]domain.CashFlowMonth, 0, months),
	}
	running := starting
	for i := 0; i < months; i++ {
		month := today.AddDate(0, i, 0).Format("2006-01")
		inflow := inflowByMonth[month].Mul(collectionRate).Round(2)
		outflow := outflowByMonth[month].Mul(paymentRate).Round(2)
		net := inflow.Sub(outflow)
		running = running.Add(net)
		projection.Months = append(projection.Months, domain.CashFlowMonth{
			Month:           month,
			ExpectedInflow:  inflow,
			ExpectedOutflow: outflow,
			NetFlow:         net,
			RunningBalance:  running,
		})
	}
	return projection, nil
}

// sumBalancesByDueMonth folds open document balances into YYYY-MM keys.
// Documents without a due date fall back to their document date.
func sumBalancesByDueMonth(docs []domain.OpenDocument) map[string]decimal.Decimal {
	byMonth := map[string]decimal.Decimal{}
	for _, doc := range docs {
		due := doc.Date
		if doc.DueDate != nil {
			due = *doc.DueDate
		}
		amount := doc.Balance
		if amount.IsZero() {
			amount = doc.Total
		}
		key := due.Format("2006-01")
		byMonth[key] = byMonth[key].Add(amount)
	}
	return byMonth
}
