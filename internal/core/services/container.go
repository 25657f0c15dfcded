package services

import (
	portsrepo "github.com/qbclone/qbclone_backend/internal/core/ports/repositories"
	portssvc "github.com/qbclone/qbclone_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.AccountRepo, repos.LedgerRepo),
		Ledger:    NewLedgerService(repos.LedgerRepo, repos.AccountRepo, repos.CustomerRepo, repos.VendorRepo),
		Reporting: NewReportingService(repos.ReportingRepo),
		Customer:  NewCustomerService(repos.CustomerRepo),
		Vendor:    NewVendorService(repos.VendorRepo),
	}
}
