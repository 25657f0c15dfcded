package posting

import (
	"fmt"

	"github.com/qbclone/qbclone_backend/internal/apperrors"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
)

// Roles is the chart-of-accounts role mapping the engine posts against.
// Each role is resolved once per operation by detail type, never by a
// hardcoded ID. A rule that needs an unresolved role fails the whole
// transaction instead of silently omitting the entry.
type Roles struct {
	AccountsReceivableID string
	AccountsPayableID    string
	UndepositedFundsID   string
	SalesTaxPayableID    string
}

// RoleDetailTypes maps each role to the account detail type that fills it.
var RoleDetailTypes = map[string]domain.AccountDetailType{
	"accounts_receivable": domain.DetailAccountsReceivable,
	"accounts_payable":    domain.DetailAccountsPayable,
	"undeposited_funds":   domain.DetailUndepositedFunds,
	"sales_tax_payable":   domain.DetailSalesTaxPayable,
}

func (r Roles) require(role string) (string, error) {
	var id string
	switch role {
	case "accounts_receivable":
		id = r.AccountsReceivableID
	case "accounts_payable":
		id = r.AccountsPayableID
	case "undeposited_funds":
		id = r.UndepositedFundsID
	case "sales_tax_payable":
		id = r.SalesTaxPayableID
	}
	if id == "" {
		return "", fmt.Errorf("%w: no account with detail type %q configured for role %s",
			apperrors.ErrValidation, RoleDetailTypes[role], role)
	}
	return id, nil
}
