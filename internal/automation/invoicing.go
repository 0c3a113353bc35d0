package automation

import (
	"context"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/hooks"
	"github.com/alexanderramin/naqd/internal/repository"
)

// ErrMissingCustomer is returned when a completed project cannot be invoiced.
var ErrMissingCustomer = domain.NewValidation("Project must be linked to a Customer to generate a Sales Invoice.")

// CreateSalesInvoiceOnCompletion drafts a placeholder Sales Invoice for a
// completed project unless a draft already exists.
func (a *Automation) CreateSalesInvoiceOnCompletion(ctx context.Context, s *hooks.Session, p *domain.Project) error {
	if p.Status != domain.ProjectCompleted {
		return nil
	}

	exists, err := s.Store.Invoices.ExistsForProject(ctx, p.Name, domain.DocDraft)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if p.Customer == "" {
		return ErrMissingCustomer
	}

	now := s.Now()
	name, err := s.Store.Series.NewName(ctx, repository.SeriesSalesInvoice, now)
	if err != nil {
		return err
	}
	today := domain.DateOnly(now)
	inv := &domain.SalesInvoice{
		Name:        name,
		Customer:    p.Customer,
		Project:     p.Name,
		DocStatus:   domain.DocDraft,
		PostingDate: today,
		DueDate:     today,
		Items: []domain.SalesInvoiceItem{
			{ItemCode: a.itemCode, Qty: 1, Rate: 0},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	inv.CalculateTotals()
	if err := inv.Validate(); err != nil {
		return err
	}
	if err := s.Store.Invoices.Create(ctx, inv); err != nil {
		return err
	}

	s.Notify("Draft Sales Invoice %s created.", inv.Name)
	return nil
}
