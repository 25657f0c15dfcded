package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerRepository is the master-data directory for customers. The ledger
// only reads customers and adjusts the balance field it owns.
type CustomerRepository interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	// AdjustCustomerBalanceInTx applies a signed delta to the customer's
	// outstanding balance within a posting transaction.
	AdjustCustomerBalanceInTx(ctx context.Context, tx pgx.Tx, customerID string, delta decimal.Decimal, now time.Time) error
}

// VendorRepository is the master-data directory for vendors.
type VendorRepository interface {
	SaveVendor(ctx context.Context, vendor domain.Vendor) error
	FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error)
	ListVendors(ctx context.Context) ([]domain.Vendor, error)

	AdjustVendorBalanceInTx(ctx context.Context, tx pgx.Tx, vendorID string, delta decimal.Decimal, now time.Time) error
}
