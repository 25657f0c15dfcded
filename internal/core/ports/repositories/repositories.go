package repositories

// RepositoryProvider bundles every repository facade for injection into the
// service layer.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryWithTx
	LedgerRepo    LedgerRepositoryWithTx
	CustomerRepo  CustomerRepository
	VendorRepo    VendorRepository
	ReportingRepo ReportingRepository
}
