package models

import "github.com/shopspring/decimal"

// Customer is the storage representation of a customer.
type Customer struct {
	CustomerID string          `db:"customer_id"`
	Name       string          `db:"name"`
	Company    string          `db:"company"`
	Email      string          `db:"email"`
	Phone      string          `db:"phone"`
	Address    string          `db:"address"`
	Balance    decimal.Decimal `db:"balance"`
	IsActive   bool            `db:"is_active"`
	AuditFields
}

// Vendor is the storage representation of a vendor.
type Vendor struct {
	VendorID string          `db:"vendor_id"`
	Name     string          `db:"name"`
	Company  string          `db:"company"`
	Email    string          `db:"email"`
	Phone    string          `db:"phone"`
	Address  string          `db:"address"`
	Balance  decimal.Decimal `db:"balance"`
	IsActive bool            `db:"is_active"`
	AuditFields
}
