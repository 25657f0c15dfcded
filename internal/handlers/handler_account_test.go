package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qbclone/qbclone_backend/internal/apperrors"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	portssvc "github.com/qbclone/qbclone_backend/internal/core/ports/services"
	"github.com/qbclone/qbclone_backend/internal/core/services"
	"github.com/qbclone/qbclone_backend/internal/dto"
	"github.com/qbclone/qbclone_backend/internal/handlers"
	"github.com/qbclone/qbclone_backend/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}
func (m *MockAccountService) CalculateAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ListTransactions(ctx context.Context, txnType domain.TransactionType) ([]domain.Transaction, error) {
	args := m.Called(ctx, txnType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) VoidTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ListOpenInvoices(ctx context.Context, customerID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ListOpenBills(ctx context.Context, vendorID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ListUndepositedPayments(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ReceivePayment(ctx context.Context, req dto.ReceivePaymentRequest) (*dto.ReceivePaymentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReceivePaymentResponse), args.Error(1)
}
func (m *MockLedgerService) PayBills(ctx context.Context, req dto.PayBillsRequest) (*dto.PayBillsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PayBillsResponse), args.Error(1)
}
func (m *MockLedgerService) MakeDeposit(ctx context.Context, req dto.MakeDepositRequest) (*dto.MakeDepositResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MakeDepositResponse), args.Error(1)
}
func (m *MockLedgerService) TransferFunds(ctx context.Context, req dto.TransferFundsRequest) (*dto.TransferFundsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransferFundsResponse), args.Error(1)
}
func (m *MockLedgerService) PostManualJournal(ctx context.Context, req dto.PostManualJournalRequest) (*dto.PostManualJournalResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostManualJournalResponse), args.Error(1)
}
func (m *MockLedgerService) ListEntriesByTransaction(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}
func (m *MockLedgerService) ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}
func (m *MockReportingService) BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}
func (m *MockReportingService) IncomeStatement(ctx context.Context) (*domain.IncomeStatementReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatementReport), args.Error(1)
}
func (m *MockReportingService) ArAging(ctx context.Context) (*domain.AgingReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgingReport), args.Error(1)
}
func (m *MockReportingService) ApAging(ctx context.Context) (*domain.AgingReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgingReport), args.Error(1)
}
func (m *MockReportingService) CashFlowProjection(ctx context.Context, months int) (*domain.CashFlowProjection, error) {
	args := m.Called(ctx, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowProjection), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Mock party services ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

type MockVendorService struct {
	mock.Mock
}

func (m *MockVendorService) CreateVendor(ctx context.Context, req dto.CreateVendorRequest) (*domain.Vendor, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}
func (m *MockVendorService) GetVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}
func (m *MockVendorService) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vendor), args.Error(1)
}

var _ portssvc.VendorSvcFacade = (*MockVendorService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockAccountService   *MockAccountService
	mockLedgerService    *MockLedgerService
	mockReportingService *MockReportingService
	mockCustomerService  *MockCustomerService
	mockVendorService    *MockVendorService
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockAccountService = new(MockAccountService)
	suite.mockLedgerService = new(MockLedgerService)
	suite.mockReportingService = new(MockReportingService)
	suite.mockCustomerService = new(MockCustomerService)
	suite.mockVendorService = new(MockVendorService)

	cfg := &config.Config{RateLimit: "300-M"}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Account:   suite.mockAccountService,
		Ledger:    suite.mockLedgerService,
		Reporting: suite.mockReportingService,
		Customer:  suite.mockCustomerService,
		Vendor:    suite.mockVendorService,
	})
}

func (suite *AccountHandlerTestSuite) serve(method, url string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	expected := &domain.Account{
		AccountID:   uuid.NewString(),
		Name:        "Checking",
		AccountType: domain.Asset,
		DetailType:  domain.DetailChecking,
		IsActive:    true,
	}
	suite.mockAccountService.On("CreateAccount", mock.Anything, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.Name == "Checking" && req.AccountType == "Asset"
	})).Return(expected, nil).Once()

	w := suite.serve(http.MethodPost, "/api/accounts", dto.CreateAccountRequest{
		Name:        "Checking",
		AccountType: "Asset",
		DetailType:  "Checking",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.AccountID, resp.AccountID)
	suite.Equal("Checking", resp.Name)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BadPayload() {
	w := suite.serve(http.MethodPost, "/api/accounts", map[string]string{"name": "No type"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountService.On("GetAccountByID", mock.Anything, "missing").Return(nil, fmt.Errorf("account missing: %w", apperrors.ErrNotFound)).Once()

	w := suite.serve(http.MethodGet, "/api/accounts/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccountBalance() {
	suite.mockAccountService.On("CalculateAccountBalance", mock.Anything, "acc-1").Return(decimal.RequireFromString("750.50"), nil).Once()

	w := suite.serve(http.MethodGet, "/api/accounts/acc-1/balance", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("acc-1", resp["accountID"])
	suite.Equal("750.5", resp["balance"])
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_NoContent() {
	suite.mockAccountService.On("DeactivateAccount", mock.Anything, "acc-1").Return(nil).Once()

	w := suite.serve(http.MethodDelete, "/api/accounts/acc-1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateTransaction_DuplicateNumberConflicts() {
	suite.mockLedgerService.On("CreateTransaction", mock.Anything, mock.AnythingOfType("dto.CreateTransactionRequest")).Return(nil, fmt.Errorf("transaction number taken: %w", apperrors.ErrDuplicate)).Once()

	w := suite.serve(http.MethodPost, "/api/transactions", dto.CreateTransactionRequest{
		TransactionType: "Invoice",
		CustomerID:      "cust-1",
		Date:            time.Now().UTC(),
		LineItems:       []dto.LineItemRequest{{Description: "Service", Amount: decimal.RequireFromString("100"), AccountID: "acc-sales"}},
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestTransferFunds_SameAccountRejected() {
	suite.mockLedgerService.On("TransferFunds", mock.Anything, mock.AnythingOfType("dto.TransferFundsRequest")).Return(nil, services.ErrSameAccount).Once()

	w := suite.serve(http.MethodPost, "/api/transfers", dto.TransferFundsRequest{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-1",
		Amount:        decimal.RequireFromString("100"),
		Date:          time.Now().UTC(),
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestReceivePayment_DepositAccountOptional() {
	suite.mockLedgerService.On("ReceivePayment", mock.Anything, mock.MatchedBy(func(req dto.ReceivePaymentRequest) bool {
		return req.DepositToAccountID == ""
	})).Return(&dto.ReceivePaymentResponse{PaymentID: "pay-1"}, nil).Once()

	w := suite.serve(http.MethodPost, "/api/payments/receive", dto.ReceivePaymentRequest{
		CustomerID:   "cust-1",
		Amount:       decimal.RequireFromString("500"),
		Date:         time.Now().UTC(),
		Applications: []dto.PaymentApplication{{InvoiceID: "inv-1", Amount: decimal.RequireFromString("500")}},
	})

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListOpenInvoices() {
	open := []domain.Transaction{
		{TransactionID: "inv-1", TransactionType: domain.TypeInvoice, CustomerID: "cust-1", Status: domain.StatusOpen, Balance: decimal.RequireFromString("600")},
	}
	suite.mockLedgerService.On("ListOpenInvoices", mock.Anything, "cust-1").Return(open, nil).Once()

	w := suite.serve(http.MethodGet, "/api/customers/cust-1/open-invoices", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("inv-1", resp[0].TransactionID)
}

func (suite *AccountHandlerTestSuite) TestListOpenBills_VendorMissing() {
	suite.mockLedgerService.On("ListOpenBills", mock.Anything, "missing").Return(nil, fmt.Errorf("failed to find vendor missing: %w", apperrors.ErrNotFound)).Once()

	w := suite.serve(http.MethodGet, "/api/vendors/missing/open-bills", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListUndepositedPayments() {
	held := []domain.Transaction{
		{TransactionID: "pay-1", TransactionType: domain.TypePayment, Status: domain.StatusOpen, Total: decimal.RequireFromString("400")},
	}
	suite.mockLedgerService.On("ListUndepositedPayments", mock.Anything).Return(held, nil).Once()

	w := suite.serve(http.MethodGet, "/api/payments/undeposited", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("pay-1", resp[0].TransactionID)
}

func (suite *AccountHandlerTestSuite) TestVoidPayment_Rejected() {
	suite.mockLedgerService.On("VoidTransaction", mock.Anything, "pay-1").Return(nil, fmt.Errorf("%w: Payment transactions cannot be voided", apperrors.ErrValidation)).Once()

	w := suite.serve(http.MethodPost, "/api/transactions/pay-1/void", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestTrialBalanceReport() {
	report := &domain.TrialBalanceReport{
		Rows:         []domain.TrialBalanceRow{},
		TotalDebits:  decimal.RequireFromString("1400"),
		TotalCredits: decimal.RequireFromString("1400"),
		Balanced:     true,
	}
	suite.mockReportingService.On("TrialBalance", mock.Anything).Return(report, nil).Once()

	w := suite.serve(http.MethodGet, "/api/reports/trial-balance", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.TrialBalanceReport
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balanced)
}

func (suite *AccountHandlerTestSuite) TestHealthEndpoint() {
	w := suite.serve(http.MethodGet, "/health", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
