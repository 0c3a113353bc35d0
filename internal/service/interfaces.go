package service

import (
	"context"

	"github.com/alexanderramin/naqd/internal/dashboard"
	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/repository"
	"github.com/alexanderramin/naqd/internal/template"
)

// Messages are the user notices raised by hooks during a write, in order.
type Messages []string

type CustomerService interface {
	Create(ctx context.Context, c *domain.Customer) error
	Get(ctx context.Context, name string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) (Messages, error)
	Get(ctx context.Context, name string) (*domain.Project, error)
	List(ctx context.Context, f repository.ProjectFilter) ([]*domain.Project, error)
	SetStatus(ctx context.Context, name string, status domain.ProjectStatus) (Messages, error)
	Cancel(ctx context.Context, name string) (Messages, error)
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) (Messages, error)
	Get(ctx context.Context, name string) (*domain.Task, error)
	ListByProject(ctx context.Context, project string, onlyVisible bool) ([]*domain.Task, error)
	SetStatus(ctx context.Context, name string, status domain.TaskStatus) (Messages, error)
	Complete(ctx context.Context, name string) (Messages, error)
	UpdateChecklistItem(ctx context.Context, task string, idx int, done bool) error
}

type TemplateService interface {
	Import(ctx context.Context, path string) (*domain.ProjectTemplate, error)
	ImportSchema(ctx context.Context, schema *template.Schema) (*domain.ProjectTemplate, error)
	List(ctx context.Context) ([]*domain.ProjectTemplate, error)
	Get(ctx context.Context, name string) (*domain.ProjectTemplate, []*domain.Task, error)
	SyncChecklists(ctx context.Context, project string) ([]string, error)
}

type InvoiceService interface {
	List(ctx context.Context, f repository.InvoiceFilter) ([]*domain.SalesInvoice, error)
	Get(ctx context.Context, name string) (*domain.SalesInvoice, error)
	UpdateItems(ctx context.Context, name string, items []domain.SalesInvoiceItem) (*domain.SalesInvoice, error)
	Submit(ctx context.Context, name string) (*domain.SalesInvoice, error)
	Cancel(ctx context.Context, name string) (*domain.SalesInvoice, error)
}

type PaymentService interface {
	RecordPayment(ctx context.Context, p *domain.Payment) error
}

// RunResult summarises one pass over due repeat schedules.
type RunResult struct {
	Created []*domain.Project
	// Disabled names schedules whose reference project no longer exists.
	Disabled []string
	Messages Messages
}

type AutoRepeatService interface {
	List(ctx context.Context) ([]*domain.AutoRepeat, error)
	RunDue(ctx context.Context) (*RunResult, error)
	Disable(ctx context.Context, name string) error
}

type DashboardService interface {
	GetCustomerDashboard(ctx context.Context, customer string) (*dashboard.Stats, error)
	// RenderCustomerDashboard never fails: errors are logged and rendered
	// as an error fragment.
	RenderCustomerDashboard(ctx context.Context, customer string) string
}
