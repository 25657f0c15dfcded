package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/qbclone/qbclone_backend/internal/apperrors"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	portsrepo "github.com/qbclone/qbclone_backend/internal/core/ports/repositories"
	portssvc "github.com/qbclone/qbclone_backend/internal/core/ports/services"
	"github.com/qbclone/qbclone_backend/internal/dto"
	"github.com/qbclone/qbclone_backend/internal/middleware"
	"github.com/qbclone/qbclone_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// accountService manages the chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx, ledgerRepo portsrepo.LedgerRepositoryWithTx) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates an account. A non-zero opening balance is recorded as
// a journal entry on the account's normal side (debit for Asset and Expense,
// credit otherwise) so the cached balance stays derivable from the entry log.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Name:            req.Name,
		AccountType:     domain.AccountType(req.AccountType),
		DetailType:      domain.AccountDetailType(req.DetailType),
		AccountNumber:   req.AccountNumber,
		ParentAccountID: req.ParentAccountID,
		OpeningBalance:  req.OpeningBalance,
		Balance:         decimal.Zero,
		IsActive:        true,
		AuditFields:     domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("failed to save account", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	if !req.OpeningBalance.IsZero() {
		entryDate := now
		if req.OpeningBalanceDate != nil {
			entryDate = *req.OpeningBalanceDate
		}
		debit, credit := decimal.Zero, decimal.Zero
		if account.AccountType.IsDebitNormal() {
			debit = req.OpeningBalance
		} else {
			credit = req.OpeningBalance
		}
		entry := domain.JournalEntry{
			EntryID:       uuid.NewString(),
			TransactionID: uuid.NewString(),
			AccountID:     account.AccountID,
			Debit:         debit,
			Credit:        credit,
			Description:   fmt.Sprintf("Opening balance for %s", account.Name),
			Date:          entryDate,
			CreatedAt:     now,
		}

		tx, err := s.ledgerRepo.Begin(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to begin opening balance transaction: %w", err)
		}
		defer s.ledgerRepo.Rollback(ctx, tx) //nolint:errcheck

		if err := s.ledgerRepo.SaveEntriesInTx(ctx, tx, []domain.JournalEntry{entry}); err != nil {
			return nil, fmt.Errorf("failed to save opening balance entry: %w", err)
		}
		if _, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{account.AccountID}); err != nil {
			return nil, fmt.Errorf("failed to lock account for opening balance: %w", err)
		}
		if err := s.accountRepo.RecomputeBalancesInTx(ctx, tx, []string{account.AccountID}, now); err != nil {
			return nil, fmt.Errorf("failed to recompute opening balance: %w", err)
		}
		if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
			return nil, fmt.Errorf("failed to commit opening balance: %w", err)
		}
		account.Balance = entry.Debit.Sub(entry.Credit)
	}

	logger.Info("account created",
		slog.String("account_id", account.AccountID),
		slog.String("name", account.Name),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByID retrieves one account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves all active accounts.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}

// UpdateAccount edits an account's descriptive fields. The balance and type
// are not editable; balances only change through postings.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}
	return account, nil
}

// DeactivateAccount soft-deletes an account. Its journal entries remain; the
// account just stops appearing in listings and reports.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	logger.Info("account deactivated", slog.String("account_id", accountID))
	return nil
}

// CalculateAccountBalance derives the balance by folding the account's entry
// log, independent of the cached value. The two must agree; this is the
// audit path for that invariant.
func (s *accountService) CalculateAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	entries, err := s.ledgerRepo.FindEntriesByAccountID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load entries for account %s: %w", accountID, err)
	}
	return accounting.BalanceOf(entries), nil
}
