package mapping

import (
	"github.com/qbclone/qbclone_backend/internal/core/domain"
	"github.com/qbclone/qbclone_backend/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer.
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID: d.CustomerID,
		Name:       d.Name,
		Company:    d.Company,
		Email:      d.Email,
		Phone:      d.Phone,
		Address:    d.Address,
		Balance:    d.Balance,
		IsActive:   d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID: m.CustomerID,
		Name:       m.Name,
		Company:    m.Company,
		Email:      m.Email,
		Phone:      m.Phone,
		Address:    m.Address,
		Balance:    m.Balance,
		IsActive:   m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToModelVendor converts a domain Vendor to a model Vendor.
func ToModelVendor(d domain.Vendor) models.Vendor {
	return models.Vendor{
		VendorID: d.VendorID,
		Name:     d.Name,
		Company:  d.Company,
		Email:    d.Email,
		Phone:    d.Phone,
		Address:  d.Address,
		Balance:  d.Balance,
		IsActive: d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainVendor converts a model Vendor to a domain Vendor.
func ToDomainVendor(m models.Vendor) domain.Vendor {
	return domain.Vendor{
		VendorID: m.VendorID,
		Name:     m.Name,
		Company:  m.Company,
		Email:    m.Email,
		Phone:    m.Phone,
		Address:  m.Address,
		Balance:  m.Balance,
		IsActive: m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
