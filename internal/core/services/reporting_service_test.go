package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/qbclone/qbclone_backend/internal/apperrors"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	portssvc "github.com/qbclone/qbclone_backend/internal/core/ports/services"
	"github.com/qbclone/qbclone_backend/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade
	ctx      context.Context
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
	suite.ctx = context.Background()
}

// chartOfAccounts is a small ledger state whose postings balance: a 1000
// invoice (AR against sales) and a 400 check (expense out of checking that
// started at 400 via equity).
func chartOfAccounts() []domain.Account {
	return []domain.Account{
		{AccountID: "acc-ar", Name: "Accounts Receivable", AccountType: domain.Asset, DetailType: domain.DetailAccountsReceivable, Balance: dec("1000")},
		{AccountID: "acc-checking", Name: "Checking", AccountType: domain.Asset, DetailType: domain.DetailChecking, Balance: dec("-400")},
		{AccountID: "acc-sales", Name: "Sales", AccountType: domain.Income, DetailType: domain.DetailSales, Balance: dec("-1000")},
		{AccountID: "acc-office", Name: "Office Expenses", AccountType: domain.Expense, DetailType: domain.DetailOfficeExpenses, Balance: dec("400")},
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance() {
	suite.mockRepo.On("ActiveAccountBalances", suite.ctx).Return(chartOfAccounts(), nil).Once()

	report, err := suite.service.TrialBalance(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 4)

	byID := map[string]domain.TrialBalanceRow{}
	for _, row := range report.Rows {
		byID[row.AccountID] = row
	}
	suite.True(byID["acc-ar"].Debit.Equal(dec("1000")), "positive debit-normal balance lands in the debit column")
	suite.True(byID["acc-checking"].Credit.Equal(dec("400")), "negative asset balance lands in the credit column as absolute value")
	suite.True(byID["acc-sales"].Credit.Equal(dec("1000")))
	suite.True(byID["acc-office"].Debit.Equal(dec("400")))

	suite.True(report.TotalDebits.Equal(dec("1400")))
	suite.True(report.TotalCredits.Equal(dec("1400")))
	suite.True(report.Balanced)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet() {
	accounts := []domain.Account{
		{AccountID: "acc-checking", Name: "Checking", AccountType: domain.Asset, DetailType: domain.DetailChecking, Balance: dec("5000")},
		{AccountID: "acc-loan", Name: "Loan", AccountType: domain.Liability, DetailType: domain.DetailLoan, Balance: dec("-3000")},
		{AccountID: "acc-equity", Name: "Owner's Equity", AccountType: domain.Equity, DetailType: domain.DetailOwnerEquity, Balance: dec("-2000")},
		{AccountID: "acc-sales", Name: "Sales", AccountType: domain.Income, DetailType: domain.DetailSales, Balance: dec("-100")},
	}
	suite.mockRepo.On("ActiveAccountBalances", suite.ctx).Return(accounts, nil).Once()

	report, err := suite.service.BalanceSheet(suite.ctx)
	suite.Require().NoError(err)

	suite.Len(report.Assets, 1)
	suite.Len(report.Liabilities, 1)
	suite.Len(report.Equity, 1)
	suite.True(report.TotalAssets.Equal(dec("5000")))
	suite.True(report.TotalLiabilities.Equal(dec("3000")), "liabilities are presented as positive obligations")
	suite.True(report.TotalEquity.Equal(dec("2000")))
	suite.True(report.Balanced)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement() {
	suite.mockRepo.On("ActiveAccountBalances", suite.ctx).Return(chartOfAccounts(), nil).Once()

	report, err := suite.service.IncomeStatement(suite.ctx)
	suite.Require().NoError(err)

	suite.Require().Len(report.Income, 1)
	suite.True(report.Income[0].Balance.Equal(dec("1000")), "income balances are flipped for presentation")
	suite.True(report.TotalIncome.Equal(dec("1000")))
	suite.True(report.TotalExpenses.Equal(dec("400")))
	suite.True(report.NetIncome.Equal(dec("600")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestArAging_BucketsByDocumentAge() {
	now := time.Now().UTC()
	docs := []domain.OpenDocument{
		{TransactionID: "inv-1", PartyID: "cust-1", PartyName: "Acme", Date: now.AddDate(0, 0, -10), Balance: dec("100")},
		{TransactionID: "inv-2", PartyID: "cust-1", PartyName: "Acme", Date: now.AddDate(0, 0, -45), Balance: dec("200")},
		{TransactionID: "inv-3", PartyID: "cust-2", PartyName: "Globex", Date: now.AddDate(0, 0, -75), Balance: dec("300")},
		{TransactionID: "inv-4", PartyID: "cust-2", PartyName: "Globex", Date: now.AddDate(0, 0, -120), Balance: dec("400")},
	}
	suite.mockRepo.On("OpenDocuments", suite.ctx, domain.TypeInvoice).Return(docs, nil).Once()

	report, err := suite.service.ArAging(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)

	acme := report.Rows[0]
	suite.Equal("cust-1", acme.PartyID)
	suite.True(acme.Buckets.Current.Equal(dec("100")))
	suite.True(acme.Buckets.Days31To60.Equal(dec("200")), "a 45 day old invoice ages into the 31-60 bucket")

	globex := report.Rows[1]
	suite.True(globex.Buckets.Days61To90.Equal(dec("300")))
	suite.True(globex.Buckets.Over90.Equal(dec("400")))

	suite.True(report.Total.Current.Equal(dec("100")))
	suite.True(report.Total.Over90.Equal(dec("400")))
	suite.True(report.Total.Total().Equal(dec("1000")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestApAging_FallsBackToTotalWhenBalanceZero() {
	now := time.Now().UTC()
	docs := []domain.OpenDocument{
		{TransactionID: "bill-1", PartyID: "vend-1", PartyName: "Initech", Date: now.AddDate(0, 0, -5), Total: dec("750")},
	}
	suite.mockRepo.On("OpenDocuments", suite.ctx, domain.TypeBill).Return(docs, nil).Once()

	report, err := suite.service.ApAging(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	suite.True(report.Rows[0].Buckets.Current.Equal(dec("750")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCashFlowProjection() {
	now := time.Now().UTC()
	accounts := []domain.Account{
		{AccountID: "acc-checking", AccountType: domain.Asset, DetailType: domain.DetailChecking, Balance: dec("1000")},
		{AccountID: "acc-savings", AccountType: domain.Asset, DetailType: domain.DetailSavings, Balance: dec("500")},
		{AccountID: "acc-ar", AccountType: domain.Asset, DetailType: domain.DetailAccountsReceivable, Balance: dec("9999")},
	}
	dueThisMonth := now
	invoices := []domain.OpenDocument{
		{TransactionID: "inv-1", PartyID: "cust-1", Date: now.AddDate(0, 0, -10), DueDate: &dueThisMonth, Balance: dec("1000")},
	}
	bills := []domain.OpenDocument{
		{TransactionID: "bill-1", PartyID: "vend-1", Date: now.AddDate(0, 0, -10), DueDate: &dueThisMonth, Balance: dec("500")},
	}
	suite.mockRepo.On("ActiveAccountBalances", suite.ctx).Return(accounts, nil).Once()
	suite.mockRepo.On("OpenDocuments", suite.ctx, domain.TypeInvoice).Return(invoices, nil).Once()
	suite.mockRepo.On("OpenDocuments", suite.ctx, domain.TypeBill).Return(bills, nil).Once()

	projection, err := suite.service.CashFlowProjection(suite.ctx, 2)
	suite.Require().NoError(err)
	suite.True(projection.StartingBalance.Equal(dec("1500")), "only bank accounts feed the starting balance")
	suite.Require().Len(projection.Months, 2)

	first := projection.Months[0]
	suite.True(first.ExpectedInflow.Equal(dec("800")), "inflows are discounted by the collection rate")
	suite.True(first.ExpectedOutflow.Equal(dec("450")), "outflows are discounted by the payment rate")
	suite.True(first.NetFlow.Equal(dec("350")))
	suite.True(first.RunningBalance.Equal(dec("1850")))

	second := projection.Months[1]
	suite.True(second.ExpectedInflow.IsZero())
	suite.True(second.RunningBalance.Equal(dec("1850")), "running balance carries forward")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCashFlowProjection_RejectsBadRange() {
	for _, months := range []int{0, -1, 25} {
		projection, err := suite.service.CashFlowProjection(suite.ctx, months)
		suite.Require().ErrorIs(err, apperrors.ErrValidation)
		suite.Nil(projection)
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Idempotent() {
	suite.mockRepo.On("ActiveAccountBalances", suite.ctx).Return(chartOfAccounts(), nil).Twice()

	first, err := suite.service.TrialBalance(suite.ctx)
	suite.Require().NoError(err)
	second, err := suite.service.TrialBalance(suite.ctx)
	suite.Require().NoError(err)

	suite.Equal(first, second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
