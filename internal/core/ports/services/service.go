package services

// ServiceContainer aggregates every service facade for handler registration.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Ledger    LedgerSvcFacade
	Reporting ReportingSvcFacade
	Customer  CustomerSvcFacade
	Vendor    VendorSvcFacade
}
