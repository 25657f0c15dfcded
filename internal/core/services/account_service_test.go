package services_test

import (
	"context"
	"testing"

	"github.com/qbclone/qbclone_backend/internal/apperrors"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	portssvc "github.com/qbclone/qbclone_backend/internal/core/ports/services"
	"github.com/qbclone/qbclone_backend/internal/core/services"
	"github.com/qbclone/qbclone_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.AccountSvcFacade
	ctx             context.Context
	tx              stubTx
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockLedgerRepo)
	suite.ctx = context.Background()
	suite.tx = stubTx{}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_WithoutOpeningBalance() {
	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	req := dto.CreateAccountRequest{
		Name:        "Checking",
		AccountType: string(domain.Asset),
		DetailType:  string(domain.DetailChecking),
	}

	account, err := suite.service.CreateAccount(suite.ctx, req)
	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.True(account.Balance.IsZero())
	suite.True(account.IsActive)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_OpeningBalancePostsEntry() {
	var savedEntries []domain.JournalEntry
	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()
	suite.mockLedgerRepo.On("Begin", suite.ctx).Return(suite.tx, nil).Once()
	suite.mockLedgerRepo.On("SaveEntriesInTx", suite.ctx, suite.tx, mock.AnythingOfType("[]domain.JournalEntry")).Run(func(args mock.Arguments) {
		savedEntries = args.Get(2).([]domain.JournalEntry)
	}).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", suite.ctx, suite.tx, mock.AnythingOfType("[]string")).Return(map[string]domain.Account{}, nil).Once()
	suite.mockAccountRepo.On("RecomputeBalancesInTx", suite.ctx, suite.tx, mock.AnythingOfType("[]string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", suite.ctx, suite.tx).Return(nil).Once()
	suite.mockLedgerRepo.On("Rollback", suite.ctx, suite.tx).Return(nil).Once()

	req := dto.CreateAccountRequest{
		Name:           "Savings",
		AccountType:    string(domain.Asset),
		DetailType:     string(domain.DetailSavings),
		OpeningBalance: decimal.RequireFromString("2500"),
	}

	account, err := suite.service.CreateAccount(suite.ctx, req)
	suite.Require().NoError(err)
	suite.True(account.Balance.Equal(decimal.RequireFromString("2500")))

	suite.Require().Len(savedEntries, 1)
	entry := savedEntries[0]
	suite.Equal(account.AccountID, entry.AccountID)
	suite.True(entry.Debit.Equal(decimal.RequireFromString("2500")), "asset opening balance posts on the debit side")
	suite.True(entry.Credit.IsZero())
	suite.Contains(entry.Description, "Savings")

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_LiabilityOpeningBalanceCredits() {
	var savedEntries []domain.JournalEntry
	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()
	suite.mockLedgerRepo.On("Begin", suite.ctx).Return(suite.tx, nil).Once()
	suite.mockLedgerRepo.On("SaveEntriesInTx", suite.ctx, suite.tx, mock.AnythingOfType("[]domain.JournalEntry")).Run(func(args mock.Arguments) {
		savedEntries = args.Get(2).([]domain.JournalEntry)
	}).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", suite.ctx, suite.tx, mock.AnythingOfType("[]string")).Return(map[string]domain.Account{}, nil).Once()
	suite.mockAccountRepo.On("RecomputeBalancesInTx", suite.ctx, suite.tx, mock.AnythingOfType("[]string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", suite.ctx, suite.tx).Return(nil).Once()
	suite.mockLedgerRepo.On("Rollback", suite.ctx, suite.tx).Return(nil).Once()

	req := dto.CreateAccountRequest{
		Name:           "Business Loan",
		AccountType:    string(domain.Liability),
		DetailType:     string(domain.DetailLoan),
		OpeningBalance: decimal.RequireFromString("10000"),
	}

	account, err := suite.service.CreateAccount(suite.ctx, req)
	suite.Require().NoError(err)
	suite.True(account.Balance.Equal(decimal.RequireFromString("-10000")), "credit-normal balances fold negative")

	suite.Require().Len(savedEntries, 1)
	suite.True(savedEntries[0].Credit.Equal(decimal.RequireFromString("10000")))
	suite.True(savedEntries[0].Debit.IsZero())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RejectsNegativeOpeningBalance() {
	req := dto.CreateAccountRequest{
		Name:           "Checking",
		AccountType:    string(domain.Asset),
		DetailType:     string(domain.DetailChecking),
		OpeningBalance: decimal.RequireFromString("-1"),
	}

	account, err := suite.service.CreateAccount(suite.ctx, req)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(account)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_EditsDescriptiveFields() {
	existing := &domain.Account{
		AccountID:   "acc-1",
		Name:        "Checking",
		AccountType: domain.Asset,
		DetailType:  domain.DetailChecking,
		IsActive:    true,
	}
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	name := "Primary Checking"
	number := "1010"
	account, err := suite.service.UpdateAccount(suite.ctx, "acc-1", dto.UpdateAccountRequest{Name: &name, AccountNumber: &number})
	suite.Require().NoError(err)
	suite.Equal("Primary Checking", account.Name)
	suite.Equal("1010", account.AccountNumber)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(suite.ctx, "missing")
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount() {
	suite.mockAccountRepo.On("DeactivateAccount", suite.ctx, "acc-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(suite.ctx, "acc-1")
	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCalculateAccountBalance_FoldsEntries() {
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(&domain.Account{AccountID: "acc-1"}, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByAccountID", suite.ctx, "acc-1").Return([]domain.JournalEntry{
		{Debit: decimal.RequireFromString("1000"), Credit: decimal.Zero},
		{Debit: decimal.Zero, Credit: decimal.RequireFromString("250")},
	}, nil).Once()

	balance, err := suite.service.CalculateAccountBalance(suite.ctx, "acc-1")
	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("750")))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
