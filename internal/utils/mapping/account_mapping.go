package mapping

import (
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	"github.com/qbclone/qbclone_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		DetailType:      models.AccountDetailType(d.DetailType),
		AccountNumber:   d.AccountNumber,
		ParentAccountID: d.ParentAccountID,
		OpeningBalance:  d.OpeningBalance,
		Balance:         d.Balance,
		IsActive:        d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		DetailType:      domain.AccountDetailType(m.DetailType),
		AccountNumber:   m.AccountNumber,
		ParentAccountID: m.ParentAccountID,
		OpeningBalance:  m.OpeningBalance,
		Balance:         m.Balance,
		IsActive:        m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainAccountSlice converts a slice of model Accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
