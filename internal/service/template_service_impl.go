package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/naqd/internal/automation"
	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/hooks"
	tmpl "github.com/alexanderramin/naqd/internal/template"
)

type templateService struct {
	docs     *Documents
	auto     *automation.Automation
	observer UseCaseObserver
}

func NewTemplateService(docs *Documents, auto *automation.Automation, observers ...UseCaseObserver) TemplateService {
	return &templateService{docs: docs, auto: auto, observer: useCaseObserverOrNoop(observers)}
}

func (s *templateService) Import(ctx context.Context, path string) (*domain.ProjectTemplate, error) {
	schema, err := tmpl.LoadSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", path, err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema stores the schema's tasks as template tasks, chained by
// subject, and the template listing them in file order.
func (s *templateService) ImportSchema(ctx context.Context, schema *tmpl.Schema) (result *domain.ProjectTemplate, err error) {
	fields := map[string]any{"template": schema.Name, "task_count": len(schema.Tasks)}
	defer observe(ctx, s.observer, "import-template", time.Now(), fields, &err)

	if errs := tmpl.ValidateSchema(schema); len(errs) > 0 {
		joined := errors.Join(errs...)
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid template: %v", joined), Cause: joined}
	}

	_, err = s.docs.Run(ctx, func(ctx context.Context, hs *hooks.Session) error {
		ok, err := hs.Store.Templates.Exists(ctx, schema.Name)
		if err != nil {
			return err
		}
		if ok {
			return &domain.ConflictError{Doctype: "Project Template", Name: schema.Name}
		}

		now := hs.Now()
		result = &domain.ProjectTemplate{Name: schema.Name, CreatedAt: now, UpdatedAt: now}
		bySubject := make(map[string]string, len(schema.Tasks))
		for _, cfg := range schema.Tasks {
			task := &domain.Task{
				Subject:     cfg.Subject,
				Description: cfg.Description,
				Status:      domain.TaskOpen,
				IsTemplate:  true,
				Checklist:   checklistFromConfig(cfg.Checklist),
			}
			if err := hs.InsertTask(ctx, task); err != nil {
				return err
			}
			bySubject[cfg.Subject] = task.Name
			result.Tasks = append(result.Tasks, domain.ProjectTemplateTask{
				Idx:     len(result.Tasks) + 1,
				Task:    task.Name,
				Subject: cfg.Subject,
			})
		}

		// Predecessors may appear later in the file, so link in a second pass.
		for _, cfg := range schema.Tasks {
			if cfg.Previous == "" {
				continue
			}
			if err := hs.Store.Tasks.SetPreviousTask(ctx, bySubject[cfg.Subject], bySubject[cfg.Previous]); err != nil {
				return err
			}
		}
		return hs.Store.Templates.Create(ctx, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func checklistFromConfig(items []tmpl.ChecklistConfig) []domain.ChecklistItem {
	out := make([]domain.ChecklistItem, 0, len(items))
	for _, c := range items {
		out = append(out, domain.ChecklistItem{CheckList: c.Item, Comment: c.Comment})
	}
	return domain.FreshChecklist(out)
}

func (s *templateService) List(ctx context.Context) ([]*domain.ProjectTemplate, error) {
	return s.docs.Store().Templates.List(ctx)
}

// Get returns the template and its template tasks in template order.
func (s *templateService) Get(ctx context.Context, name string) (*domain.ProjectTemplate, []*domain.Task, error) {
	store := s.docs.Store()
	t, err := store.Templates.Get(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, len(t.Tasks))
	for i, link := range t.Tasks {
		names[i] = link.Task
	}
	byName, err := store.Tasks.GetMany(ctx, names)
	if err != nil {
		return nil, nil, err
	}
	tasks := make([]*domain.Task, 0, len(names))
	for _, n := range names {
		if task, ok := byName[n]; ok {
			tasks = append(tasks, task)
		}
	}
	return t, tasks, nil
}

// SyncChecklists copies the template's current checklists onto the
// project's tasks with the same subject.
func (s *templateService) SyncChecklists(ctx context.Context, project string) (updated []string, err error) {
	fields := map[string]any{"project": project}
	defer observe(ctx, s.observer, "sync-checklists", time.Now(), fields, &err)

	_, err = s.docs.Run(ctx, func(ctx context.Context, hs *hooks.Session) error {
		p, err := hs.Store.Projects.Get(ctx, project)
		if err != nil {
			return err
		}
		if p.ProjectTemplate == "" {
			return domain.NewValidation("Project %s has no template", project)
		}
		updated, err = s.auto.SyncChecklists(ctx, hs, p.Name, p.ProjectTemplate)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["updated"] = len(updated)
	return updated, nil
}
