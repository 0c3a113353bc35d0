package service

import (
	"context"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/hooks"
	"github.com/alexanderramin/naqd/internal/repository"
)

type invoiceService struct {
	docs     *Documents
	observer UseCaseObserver
}

func NewInvoiceService(docs *Documents, observers ...UseCaseObserver) InvoiceService {
	return &invoiceService{docs: docs, observer: useCaseObserverOrNoop(observers)}
}

func (s *invoiceService) List(ctx context.Context, f repository.InvoiceFilter) ([]*domain.SalesInvoice, error) {
	return s.docs.Store().Invoices.List(ctx, f)
}

func (s *invoiceService) Get(ctx context.Context, name string) (*domain.SalesInvoice, error) {
	return s.docs.Store().Invoices.Get(ctx, name)
}

// UpdateItems replaces the lines of a draft invoice and recomputes totals.
func (s *invoiceService) UpdateItems(ctx context.Context, name string, items []domain.SalesInvoiceItem) (inv *domain.SalesInvoice, err error) {
	fields := map[string]any{"invoice": name, "item_count": len(items)}
	defer observe(ctx, s.observer, "update-invoice-items", time.Now(), fields, &err)

	_, err = s.docs.Run(ctx, func(ctx context.Context, hs *hooks.Session) error {
		var err error
		inv, err = hs.Store.Invoices.Get(ctx, name)
		if err != nil {
			return err
		}
		if inv.DocStatus != domain.DocDraft {
			return domain.NewValidation("Cannot edit %s %s: it is %s", domain.DoctypeSalesInvoice, name, inv.DocStatus)
		}
		inv.Items = items
		inv.CalculateTotals()
		inv.UpdatedAt = hs.Now()
		if err := inv.Validate(); err != nil {
			return err
		}
		return hs.Store.Invoices.UpdateItems(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	s.docs.Invalidate(ctx, inv.Customer)
	return inv, nil
}

// Submit moves a draft invoice to submitted and debits the customer with
// the grand total.
func (s *invoiceService) Submit(ctx context.Context, name string) (*domain.SalesInvoice, error) {
	return s.transition(ctx, "submit-invoice", name, domain.DocDraft, domain.DocSubmitted)
}

// Cancel moves a submitted invoice to cancelled and posts the reversing
// credit.
func (s *invoiceService) Cancel(ctx context.Context, name string) (*domain.SalesInvoice, error) {
	return s.transition(ctx, "cancel-invoice", name, domain.DocSubmitted, domain.DocCancelled)
}

func (s *invoiceService) transition(ctx context.Context, useCase, name string, from, to domain.DocStatus) (inv *domain.SalesInvoice, err error) {
	fields := map[string]any{"invoice": name}
	defer observe(ctx, s.observer, useCase, time.Now(), fields, &err)

	_, err = s.docs.Run(ctx, func(ctx context.Context, hs *hooks.Session) error {
		var err error
		inv, err = hs.Store.Invoices.Get(ctx, name)
		if err != nil {
			return err
		}
		if inv.DocStatus != from {
			return domain.NewValidation("Cannot move %s %s from %s to %s", domain.DoctypeSalesInvoice, name, inv.DocStatus, to)
		}
		if err := hs.Store.Invoices.SetDocStatus(ctx, name, to); err != nil {
			return err
		}
		inv.DocStatus = to

		if inv.GrandTotal <= 0 {
			return nil
		}
		now := hs.Now()
		entry := &domain.LedgerEntry{
			PartyType:   domain.PartyTypeCustomer,
			Party:       inv.Customer,
			PostingDate: domain.DateOnly(now),
			VoucherType: domain.DoctypeSalesInvoice,
			VoucherNo:   inv.Name,
			CreatedAt:   now,
		}
		if to == domain.DocSubmitted {
			entry.Debit = inv.GrandTotal
		} else {
			entry.Credit = inv.GrandTotal
		}
		if err := entry.Validate(); err != nil {
			return err
		}
		return hs.Store.Ledger.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	fields["grand_total"] = inv.GrandTotal
	s.docs.Invalidate(ctx, inv.Customer)
	return inv, nil
}
