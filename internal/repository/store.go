package repository

import "github.com/alexanderramin/naqd/internal/db"

// Store bundles every repository over one connection or transaction so a
// unit of work hands a consistent set to services and hooks.
type Store struct {
	Customers   CustomerRepo
	Projects    ProjectRepo
	Tasks       TaskRepo
	Templates   TemplateRepo
	Invoices    InvoiceRepo
	AutoRepeats AutoRepeatRepo
	Ledger      LedgerRepo
	Series      NamingSeriesRepo
}

func NewStore(conn db.DBTX) *Store {
	return &Store{
		Customers:   NewSQLiteCustomerRepo(conn),
		Projects:    NewSQLiteProjectRepo(conn),
		Tasks:       NewSQLiteTaskRepo(conn),
		Templates:   NewSQLiteTemplateRepo(conn),
		Invoices:    NewSQLiteInvoiceRepo(conn),
		AutoRepeats: NewSQLiteAutoRepeatRepo(conn),
		Ledger:      NewSQLiteLedgerRepo(conn),
		Series:      NewSQLiteNamingSeriesRepo(conn),
	}
}
