package service

import (
	"context"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
)

type customerService struct {
	docs     *Documents
	observer UseCaseObserver
}

func NewCustomerService(docs *Documents, observers ...UseCaseObserver) CustomerService {
	return &customerService{docs: docs, observer: useCaseObserverOrNoop(observers)}
}

func (s *customerService) Create(ctx context.Context, c *domain.Customer) (err error) {
	defer observe(ctx, s.observer, "create-customer", time.Now(), map[string]any{"customer": c.Name}, &err)

	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.docs.Now()
	}
	if err = c.Validate(); err != nil {
		return err
	}
	return s.docs.Store().Customers.Create(ctx, c)
}

func (s *customerService) Get(ctx context.Context, name string) (*domain.Customer, error) {
	return s.docs.Store().Customers.Get(ctx, name)
}

func (s *customerService) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.docs.Store().Customers.List(ctx)
}
