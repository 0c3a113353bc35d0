package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/naqd/internal/automation"
	"github.com/alexanderramin/naqd/internal/dashboard"
	"github.com/alexanderramin/naqd/internal/db"
	"github.com/alexanderramin/naqd/internal/domain"
	tmpl "github.com/alexanderramin/naqd/internal/template"
	"github.com/alexanderramin/naqd/internal/testutil"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

// testClock is a settable time source shared by the services under test.
type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

type services struct {
	t     *testing.T
	ctx   context.Context
	db    *sql.DB
	clock *testClock
	docs  *Documents

	customers   CustomerService
	projects    ProjectService
	tasks       TaskService
	templates   TemplateService
	invoices    InvoiceService
	payments    PaymentService
	autoRepeats AutoRepeatService
	dashboards  DashboardService
}

type setupOption func(*setupConfig)

type setupConfig struct {
	uow   func(*sql.DB) db.UnitOfWork
	cache dashboard.Cache
}

func withUoW(fn func(*sql.DB) db.UnitOfWork) setupOption {
	return func(c *setupConfig) { c.uow = fn }
}

func withCache(cache dashboard.Cache) setupOption {
	return func(c *setupConfig) { c.cache = cache }
}

// setupServices wires every service over a fresh in-memory database with
// customer ACME already present.
func setupServices(t *testing.T, opts ...setupOption) *services {
	t.Helper()
	cfg := setupConfig{uow: testutil.NewTestUoW, cache: dashboard.NoopCache{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	database := testutil.NewTestDB(t)
	clock := &testClock{now: testNow}
	auto := automation.New(automation.Options{})
	docs := NewDocuments(database, cfg.uow(database), NewRegistry(auto),
		WithClock(clock.Now),
		WithDashboardCache(cfg.cache),
	)

	s := &services{
		t:           t,
		ctx:         context.Background(),
		db:          database,
		clock:       clock,
		docs:        docs,
		customers:   NewCustomerService(docs),
		projects:    NewProjectService(docs),
		tasks:       NewTaskService(docs),
		templates:   NewTemplateService(docs, auto),
		invoices:    NewInvoiceService(docs),
		payments:    NewPaymentService(docs),
		autoRepeats: NewAutoRepeatService(docs),
		dashboards:  NewDashboardService(docs, ""),
	}
	require.NoError(t, s.customers.Create(s.ctx, &domain.Customer{Name: "ACME", CustomerName: "Acme Ltd"}))
	return s
}

// auditSchema is a three step chain; Kickoff carries a checklist.
func auditSchema() *tmpl.Schema {
	return &tmpl.Schema{
		Name: "Audit",
		Tasks: []tmpl.TaskConfig{
			{Subject: "Kickoff", Description: "Meet the client", Checklist: []tmpl.ChecklistConfig{{Item: "Agenda"}, {Item: "Attendees", Comment: "partners"}}},
			{Subject: "Fieldwork", Previous: "Kickoff"},
			{Subject: "Report", Previous: "Fieldwork"},
		},
	}
}

func (s *services) importAudit() {
	s.t.Helper()
	_, err := s.templates.ImportSchema(s.ctx, auditSchema())
	require.NoError(s.t, err)
}

func (s *services) createProject(p *domain.Project) Messages {
	s.t.Helper()
	msgs, err := s.projects.Create(s.ctx, p)
	require.NoError(s.t, err)
	return msgs
}

func (s *services) tasksBySubject(project string) map[string]*domain.Task {
	s.t.Helper()
	tasks, err := s.tasks.ListByProject(s.ctx, project, false)
	require.NoError(s.t, err)
	out := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		out[t.Subject] = t
	}
	return out
}

// seedAuditTemplate writes the Audit template straight through the
// repositories, bypassing the unit of work.
func seedAuditTemplate(t *testing.T, s *services) {
	t.Helper()
	store := s.docs.Store()
	kickoff := testutil.NewTestTask("", "Kickoff", testutil.AsTemplateTask(), testutil.WithChecklist("Agenda"))
	fieldwork := testutil.NewTestTask("", "Fieldwork", testutil.AsTemplateTask(), testutil.WithPreviousTask(kickoff.Name))
	report := testutil.NewTestTask("", "Report", testutil.AsTemplateTask(), testutil.WithPreviousTask(fieldwork.Name))

	tmplDoc := &domain.ProjectTemplate{Name: "Audit", CreatedAt: testNow, UpdatedAt: testNow}
	for _, task := range []*domain.Task{kickoff, fieldwork, report} {
		require.NoError(t, store.Tasks.Create(s.ctx, task))
		tmplDoc.Tasks = append(tmplDoc.Tasks, domain.ProjectTemplateTask{Task: task.Name, Subject: task.Subject})
	}
	require.NoError(t, store.Templates.Create(s.ctx, tmplDoc))
}
