package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qbclone/qbclone_backend/internal/apperrors"
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	portsrepo "github.com/qbclone/qbclone_backend/internal/core/ports/repositories"
	"github.com/qbclone/qbclone_backend/internal/models"
	"github.com/qbclone/qbclone_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// PgxCustomerRepository persists customers.
type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepository {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepository = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, name, company, email, phone, address, balance, is_active, created_at, updated_at`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var m models.Customer
	var company, email, phone, address sql.NullString
	err := row.Scan(
		&m.CustomerID,
		&m.Name,
		&company,
		&email,
		&phone,
		&address,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Company = company.String
	m.Email = email.String
	m.Phone = phone.String
	m.Address = address.String
	return &m, nil
}

// SaveCustomer inserts a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		nullable(m.Company),
		nullable(m.Email),
		nullable(m.Phone),
		nullable(m.Address),
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert customer "+m.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}
	d := mapping.ToDomainCustomer(*m)
	return &d, nil
}

// ListCustomers retrieves active customers ordered by name.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE is_active = TRUE ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customers", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer row", err)
		}
		customers = append(customers, mapping.ToDomainCustomer(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer rows", err)
	}
	return customers, nil
}

// AdjustCustomerBalanceInTx applies a signed delta to the customer's open balance.
func (r *PgxCustomerRepository) AdjustCustomerBalanceInTx(ctx context.Context, tx pgx.Tx, customerID string, delta decimal.Decimal, now time.Time) error {
	query := `UPDATE customers SET balance = balance + $2, updated_at = $3 WHERE customer_id = $1;`
	tag, err := tx.Exec(ctx, query, customerID, delta, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to adjust balance for customer "+customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// PgxVendorRepository persists vendors.
type PgxVendorRepository struct {
	BaseRepository
}

func newPgxVendorRepository(pool *pgxpool.Pool) portsrepo.VendorRepository {
	return &PgxVendorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VendorRepository = (*PgxVendorRepository)(nil)

const vendorColumns = `vendor_id, name, company, email, phone, address, balance, is_active, created_at, updated_at`

func scanVendor(row pgx.Row) (*models.Vendor, error) {
	var m models.Vendor
	var company, email, phone, address sql.NullString
	err := row.Scan(
		&m.VendorID,
		&m.Name,
		&company,
		&email,
		&phone,
		&address,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Company = company.String
	m.Email = email.String
	m.Phone = phone.String
	m.Address = address.String
	return &m, nil
}

// SaveVendor inserts a new vendor.
func (r *PgxVendorRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	m := mapping.ToModelVendor(vendor)
	query := `
		INSERT INTO vendors (` + vendorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.VendorID,
		m.Name,
		nullable(m.Company),
		nullable(m.Email),
		nullable(m.Phone),
		nullable(m.Address),
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert vendor "+m.VendorID, err)
	}
	return nil
}

// FindVendorByID retrieves a vendor by ID.
func (r *PgxVendorRepository) FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE vendor_id = $1;`
	m, err := scanVendor(r.Pool.QueryRow(ctx, query, vendorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find vendor by ID "+vendorID, err)
	}
	d := mapping.ToDomainVendor(*m)
	return &d, nil
}

// ListVendors retrieves active vendors ordered by name.
func (r *PgxVendorRepository) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE is_active = TRUE ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query vendors", err)
	}
	defer rows.Close()

	vendors := []domain.Vendor{}
	for rows.Next() {
		m, err := scanVendor(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan vendor row", err)
		}
		vendors = append(vendors, mapping.ToDomainVendor(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating vendor rows", err)
	}
	return vendors, nil
}

// AdjustVendorBalanceInTx applies a signed delta to the vendor's open balance.
func (r *PgxVendorRepository) AdjustVendorBalanceInTx(ctx context.Context, tx pgx.Tx, vendorID string, delta decimal.Decimal, now time.Time) error {
	query := `UPDATE vendors SET balance = balance + $2, updated_at = $3 WHERE vendor_id = $1;`
	tag, err := tx.Exec(ctx, query, vendorID, delta, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to adjust balance for vendor "+vendorID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
