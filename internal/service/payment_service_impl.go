package service

import (
	"context"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/hooks"
	"github.com/alexanderramin/naqd/internal/repository"
)

type paymentService struct {
	docs     *Documents
	observer UseCaseObserver
}

func NewPaymentService(docs *Documents, observers ...UseCaseObserver) PaymentService {
	return &paymentService{docs: docs, observer: useCaseObserverOrNoop(observers)}
}

// RecordPayment names the payment and credits the customer's ledger.
func (s *paymentService) RecordPayment(ctx context.Context, p *domain.Payment) (err error) {
	fields := map[string]any{"customer": p.Customer, "amount": p.Amount}
	defer observe(ctx, s.observer, "record-payment", time.Now(), fields, &err)

	if err = p.Validate(); err != nil {
		return err
	}
	_, err = s.docs.Run(ctx, func(ctx context.Context, hs *hooks.Session) error {
		ok, err := hs.Store.Customers.Exists(ctx, p.Customer)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewNotFound(domain.DoctypeCustomer, p.Customer)
		}

		now := hs.Now()
		if p.Name == "" {
			if p.Name, err = hs.Store.Series.NewName(ctx, repository.SeriesPayment, now); err != nil {
				return err
			}
		}
		if p.PostingDate.IsZero() {
			p.PostingDate = domain.DateOnly(now)
		}
		return hs.Store.Ledger.Create(ctx, &domain.LedgerEntry{
			PartyType:   domain.PartyTypeCustomer,
			Party:       p.Customer,
			PostingDate: p.PostingDate,
			Credit:      p.Amount,
			VoucherType: domain.DoctypePayment,
			VoucherNo:   p.Name,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return err
	}
	fields["payment"] = p.Name
	s.docs.Invalidate(ctx, p.Customer)
	return nil
}
