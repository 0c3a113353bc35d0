// Package dashboard computes and renders the customer summary shown on the
// customer form: project counts by status, unbilled projects and the
// receivable ledger balance.
package dashboard

import (
	"context"
	"fmt"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/repository"
)

// Stats is the data behind one customer dashboard.
type Stats struct {
	Customer  string  `json:"customer"`
	Ongoing   int     `json:"ongoing"`
	Completed int     `json:"completed"`
	Cancelled int     `json:"cancelled"`
	Unbilled  int     `json:"unbilled"`
	Balance   float64 `json:"ledger_balance"`
}

// Load gathers the dashboard figures for customer. A customer with no
// documents yields zero counts and a zero balance.
func Load(ctx context.Context, store *repository.Store, customer string) (*Stats, error) {
	counts, err := store.Projects.CountByStatus(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("counting projects: %w", err)
	}

	names, err := store.Projects.ListNames(ctx, repository.ProjectFilter{
		Customer:      customer,
		ExcludeStatus: domain.ProjectCancelled,
	})
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	billed, err := store.Invoices.BilledProjects(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("loading billed projects: %w", err)
	}

	unbilled := 0
	for _, name := range names {
		if !billed[name] {
			unbilled++
		}
	}

	balance, err := store.Ledger.Balance(ctx, domain.PartyTypeCustomer, customer)
	if err != nil {
		return nil, fmt.Errorf("loading ledger balance: %w", err)
	}

	return &Stats{
		Customer:  customer,
		Ongoing:   counts[domain.ProjectOpen],
		Completed: counts[domain.ProjectCompleted],
		Cancelled: counts[domain.ProjectCancelled],
		Unbilled:  unbilled,
		Balance:   balance,
	}, nil
}
