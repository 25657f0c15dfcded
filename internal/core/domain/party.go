package domain

import (
	"github.com/shopspring/decimal"
)

// Customer is a master-data entity referenced by sales documents.
// The ledger owns only the Balance field (reduced by payment application).
type Customer struct {
	CustomerID string          `json:"customerID"`
	Name       string          `json:"name"`
	Company    string          `json:"company"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	Balance    decimal.Decimal `json:"balance"`
	IsActive   bool            `json:"isActive"`
	AuditFields
}

// Vendor is a master-data entity referenced by purchase documents.
type Vendor struct {
	VendorID string          `json:"vendorID"`
	Name     string          `json:"name"`
	Company  string          `json:"company"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Address  string          `json:"address"`
	Balance  decimal.Decimal `json:"balance"`
	IsActive bool            `json:"isActive"`
	AuditFields
}
