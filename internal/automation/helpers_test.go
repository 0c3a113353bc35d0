package automation

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/hooks"
	"github.com/alexanderramin/naqd/internal/repository"
	"github.com/alexanderramin/naqd/internal/testutil"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

// templateStep describes one template task: subject, predecessor subject
// and checklist rows.
type templateStep struct {
	subject   string
	previous  string
	checklist []string
}

type fixture struct {
	t        *testing.T
	ctx      context.Context
	registry *hooks.Registry
	session  *hooks.Session
	auto     *Automation
}

// newFixture wires the hooks the way the application does, with a simple
// copier standing in for the core template hook.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	reg := hooks.NewRegistry()
	reg.OnProject(hooks.AfterInsert, "copy_from_template", copyTemplate)
	auto := New(Options{})
	auto.Register(reg)

	s := hooks.NewSession(repository.NewStore(database), reg, hooks.WithClock(func() time.Time { return testNow }))
	f := &fixture{t: t, ctx: context.Background(), registry: reg, session: s, auto: auto}
	require.NoError(t, s.Store.Customers.Create(f.ctx, testutil.NewTestCustomer("ACME")))
	return f
}

func copyTemplate(ctx context.Context, s *hooks.Session, p *domain.Project) error {
	if p.ProjectTemplate == "" {
		return nil
	}
	tmpl, err := s.Store.Templates.Get(ctx, p.ProjectTemplate)
	if err != nil {
		return err
	}
	for _, link := range tmpl.Tasks {
		if err := s.InsertTask(ctx, &domain.Task{Subject: link.Subject, Project: p.Name}); err != nil {
			return err
		}
	}
	return nil
}

// createTemplate stores template tasks and the template linking them.
func (f *fixture) createTemplate(name string, steps ...templateStep) {
	f.t.Helper()
	bySubject := make(map[string]string)
	tmpl := &domain.ProjectTemplate{Name: name, CreatedAt: testNow, UpdatedAt: testNow}
	for _, step := range steps {
		task := testutil.NewTestTask("", step.subject, testutil.AsTemplateTask(), testutil.WithChecklist(step.checklist...))
		if step.previous != "" {
			task.PreviousTask = bySubject[step.previous]
		}
		require.NoError(f.t, f.session.Store.Tasks.Create(f.ctx, task))
		bySubject[step.subject] = task.Name
		tmpl.Tasks = append(tmpl.Tasks, domain.ProjectTemplateTask{Task: task.Name, Subject: step.subject})
	}
	require.NoError(f.t, f.session.Store.Templates.Create(f.ctx, tmpl))
}

func (f *fixture) insertProject(opts ...testutil.ProjectOption) *domain.Project {
	f.t.Helper()
	p := testutil.NewTestProject("Engagement", append([]testutil.ProjectOption{
		testutil.WithProjectName(""),
		testutil.WithCustomer("ACME"),
		testutil.WithProjectCreatedAt(testNow),
	}, opts...)...)
	require.NoError(f.t, f.session.InsertProject(f.ctx, p))
	return p
}

func (f *fixture) tasksBySubject(project string) map[string]*domain.Task {
	f.t.Helper()
	tasks, err := f.session.Store.Tasks.ListByProject(f.ctx, project, false)
	require.NoError(f.t, err)
	out := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		out[t.Subject] = t
	}
	return out
}

// complete reloads the task and saves it as Completed.
func (f *fixture) complete(name string) error {
	f.t.Helper()
	task, err := f.session.Store.Tasks.Get(f.ctx, name)
	require.NoError(f.t, err)
	task.Status = domain.TaskCompleted
	return f.session.SaveTask(f.ctx, task)
}
