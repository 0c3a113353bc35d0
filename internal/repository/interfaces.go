package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
)

// ProjectFilter narrows project listings. Zero values match everything.
type ProjectFilter struct {
	Customer      string
	Status        domain.ProjectStatus
	ExcludeStatus domain.ProjectStatus
}

// InvoiceFilter narrows invoice listings. A nil DocStatus matches every state.
type InvoiceFilter struct {
	Customer  string
	Project   string
	DocStatus *domain.DocStatus
}

// TaskCounts is the completion tally of a project's tasks.
type TaskCounts struct {
	Total     int
	Completed int
}

// AllCompleted reports whether the project has tasks and all of them are done.
func (c TaskCounts) AllCompleted() bool {
	return c.Total > 0 && c.Total == c.Completed
}

type CustomerRepo interface {
	Create(ctx context.Context, c *domain.Customer) error
	Get(ctx context.Context, name string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Exists(ctx context.Context, name string) (bool, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, name string) (*domain.Project, error)
	List(ctx context.Context, f ProjectFilter) ([]*domain.Project, error)
	ListNames(ctx context.Context, f ProjectFilter) ([]string, error)
	CountByStatus(ctx context.Context, customer string) (map[domain.ProjectStatus]int, error)
	Update(ctx context.Context, p *domain.Project) error
	SetAutoRepeatInfo(ctx context.Context, name, info string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	Get(ctx context.Context, name string) (*domain.Task, error)
	ListByProject(ctx context.Context, project string, onlyVisible bool) ([]*domain.Task, error)
	GetMany(ctx context.Context, names []string) (map[string]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	SetPreviousTask(ctx context.Context, name, previous string) error
	ShowSuccessors(ctx context.Context, project, previous string) ([]string, error)
	ShowUnchained(ctx context.Context, project string) ([]string, error)
	CountByProject(ctx context.Context, project string) (TaskCounts, error)
	ReplaceChecklist(ctx context.Context, task string, items []domain.ChecklistItem) error
	SetChecklistItemDone(ctx context.Context, task string, idx int, done bool) error
}

type TemplateRepo interface {
	Create(ctx context.Context, t *domain.ProjectTemplate) error
	Get(ctx context.Context, name string) (*domain.ProjectTemplate, error)
	List(ctx context.Context) ([]*domain.ProjectTemplate, error)
	Exists(ctx context.Context, name string) (bool, error)
}

type InvoiceRepo interface {
	Create(ctx context.Context, inv *domain.SalesInvoice) error
	Get(ctx context.Context, name string) (*domain.SalesInvoice, error)
	List(ctx context.Context, f InvoiceFilter) ([]*domain.SalesInvoice, error)
	ExistsForProject(ctx context.Context, project string, status domain.DocStatus) (bool, error)
	BilledProjects(ctx context.Context, projects []string) (map[string]bool, error)
	SetDocStatus(ctx context.Context, name string, status domain.DocStatus) error
	UpdateItems(ctx context.Context, inv *domain.SalesInvoice) error
}

type AutoRepeatRepo interface {
	Create(ctx context.Context, a *domain.AutoRepeat) error
	Get(ctx context.Context, name string) (*domain.AutoRepeat, error)
	List(ctx context.Context) ([]*domain.AutoRepeat, error)
	ListDue(ctx context.Context, now time.Time) ([]*domain.AutoRepeat, error)
	ExistsForReference(ctx context.Context, doctype, name string) (bool, error)
	SetNextScheduleDate(ctx context.Context, name string, next time.Time) error
	SetStatus(ctx context.Context, name string, status domain.AutoRepeatStatus) error
}

type LedgerRepo interface {
	Create(ctx context.Context, e *domain.LedgerEntry) error
	ListByParty(ctx context.Context, partyType, party string) ([]*domain.LedgerEntry, error)
	Balance(ctx context.Context, partyType, party string) (float64, error)
}

type NamingSeriesRepo interface {
	NewName(ctx context.Context, pattern string, at time.Time) (string, error)
}
