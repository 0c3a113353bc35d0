package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/naqd/internal/automation"
	"github.com/alexanderramin/naqd/internal/dashboard"
	"github.com/alexanderramin/naqd/internal/db"
	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/hooks"
	"github.com/alexanderramin/naqd/internal/repository"
)

// Documents is shared by the services: a read-only Store on the base
// connection, and transactional hook sessions for writes.
type Documents struct {
	store    *repository.Store
	uow      db.UnitOfWork
	registry *hooks.Registry
	cache    dashboard.Cache
	logger   *slog.Logger
	now      func() time.Time
}

type DocumentsOption func(*Documents)

// WithClock overrides the time source used for dates and naming series.
func WithClock(now func() time.Time) DocumentsOption {
	return func(d *Documents) {
		d.now = now
	}
}

func WithLogger(l *slog.Logger) DocumentsOption {
	return func(d *Documents) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithDashboardCache sets the cache invalidated after writes.
func WithDashboardCache(c dashboard.Cache) DocumentsOption {
	return func(d *Documents) {
		if c != nil {
			d.cache = c
		}
	}
}

func NewDocuments(conn db.DBTX, uow db.UnitOfWork, registry *hooks.Registry, opts ...DocumentsOption) *Documents {
	d := &Documents{
		store:    repository.NewStore(conn),
		uow:      uow,
		registry: registry,
		cache:    dashboard.NoopCache{},
		logger:   slog.Default(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewRegistry builds the hook registry: template copying first, then the
// automation hooks that chain and invoice.
func NewRegistry(auto *automation.Automation) *hooks.Registry {
	reg := hooks.NewRegistry()
	RegisterCoreHooks(reg)
	auto.Register(reg)
	return reg
}

// Store returns repositories outside any transaction.
func (d *Documents) Store() *repository.Store { return d.store }

func (d *Documents) Now() time.Time { return d.now() }

// Run executes fn in one transaction with a hook session. Hook messages are
// returned only when the transaction commits.
func (d *Documents) Run(ctx context.Context, fn func(ctx context.Context, s *hooks.Session) error) (Messages, error) {
	var msgs Messages
	err := d.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		s := hooks.NewSession(repository.NewStore(tx), d.registry,
			hooks.WithClock(d.now),
			hooks.WithLogger(d.logger),
		)
		if err := fn(ctx, s); err != nil {
			return err
		}
		msgs = s.Messages()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Invalidate drops cached dashboards for customers. Failures are logged
// since the write they follow has already committed.
func (d *Documents) Invalidate(ctx context.Context, customers ...string) {
	if err := d.cache.Invalidate(ctx, customers...); err != nil {
		d.logger.WarnContext(ctx, "dashboard cache invalidation failed", "customers", customers, "error", err)
	}
}

// requireCustomer returns a validation error when a named customer is unknown.
func requireCustomer(ctx context.Context, store *repository.Store, customer string) error {
	if customer == "" {
		return nil
	}
	ok, err := store.Customers.Exists(ctx, customer)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewValidation("Customer %s does not exist", customer)
	}
	return nil
}
