package automation

import (
	"context"
	"fmt"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/hooks"
)

// templateTask is a template task resolved for linking.
type templateTask struct {
	name      string
	subject   string
	previous  string
	checklist []domain.ChecklistItem
}

// loadTemplateTasks resolves the template's task links to their task
// documents. Links to missing tasks are skipped.
func loadTemplateTasks(ctx context.Context, s *hooks.Session, template string) ([]templateTask, error) {
	tmpl, err := s.Store.Templates.Get(ctx, template)
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", template, err)
	}
	names := make([]string, 0, len(tmpl.Tasks))
	for _, link := range tmpl.Tasks {
		names = append(names, link.Task)
	}
	docs, err := s.Store.Tasks.GetMany(ctx, names)
	if err != nil {
		return nil, err
	}

	out := make([]templateTask, 0, len(tmpl.Tasks))
	for _, link := range tmpl.Tasks {
		doc, ok := docs[link.Task]
		if !ok {
			continue
		}
		out = append(out, templateTask{
			name:      doc.Name,
			subject:   doc.Subject,
			previous:  doc.PreviousTask,
			checklist: doc.Checklist,
		})
	}
	return out, nil
}

// subjectIndex maps subject to real task name. Duplicate subjects collide
// and the last task wins.
func subjectIndex(tasks []*domain.Task) map[string]string {
	idx := make(map[string]string, len(tasks))
	for _, t := range tasks {
		idx[t.Subject] = t.Name
	}
	return idx
}

// LinkTemplateTasks runs after a project is inserted. It copies the
// template's previous-task links and checklists onto the project's real
// tasks, matching them by subject, and shows every task that has no
// predecessor.
func (a *Automation) LinkTemplateTasks(ctx context.Context, s *hooks.Session, p *domain.Project) error {
	if p.ProjectTemplate == "" {
		return nil
	}

	templates, err := loadTemplateTasks(ctx, s, p.ProjectTemplate)
	if err != nil {
		return err
	}
	realTasks, err := s.Store.Tasks.ListByProject(ctx, p.Name, false)
	if err != nil {
		return err
	}
	bySubject := subjectIndex(realTasks)

	for _, tt := range templates {
		current, ok := bySubject[tt.subject]
		if !ok {
			continue
		}

		if tt.previous != "" {
			prevSubject, err := a.subjectOf(ctx, s, tt.previous)
			if err != nil {
				return err
			}
			if realPrev, ok := bySubject[prevSubject]; ok && prevSubject != "" {
				if err := s.Store.Tasks.SetPreviousTask(ctx, current, realPrev); err != nil {
					return err
				}
			}
		}

		if len(tt.checklist) > 0 {
			task, err := s.Store.Tasks.Get(ctx, current)
			if err != nil {
				return err
			}
			task.Checklist = domain.FreshChecklist(tt.checklist)
			if err := s.SaveTask(ctx, task); err != nil {
				return err
			}
		}
	}

	_, err = s.Store.Tasks.ShowUnchained(ctx, p.Name)
	return err
}

// subjectOf returns the subject of the named task, empty when it is gone.
func (a *Automation) subjectOf(ctx context.Context, s *hooks.Session, name string) (string, error) {
	docs, err := s.Store.Tasks.GetMany(ctx, []string{name})
	if err != nil {
		return "", err
	}
	if t, ok := docs[name]; ok {
		return t.Subject, nil
	}
	return "", nil
}

// OnTaskUpdate runs after a task is saved. Completing a task shows the
// tasks waiting on it; completing the last task of a project completes the
// project and drafts its invoice.
func (a *Automation) OnTaskUpdate(ctx context.Context, s *hooks.Session, t *domain.Task) error {
	if t.Status != domain.TaskCompleted {
		return nil
	}

	if _, err := s.Store.Tasks.ShowSuccessors(ctx, t.Project, t.Name); err != nil {
		return err
	}

	if t.Project == "" {
		return nil
	}
	counts, err := s.Store.Tasks.CountByProject(ctx, t.Project)
	if err != nil {
		return err
	}
	if !counts.AllCompleted() {
		return nil
	}

	project, err := s.Store.Projects.Get(ctx, t.Project)
	if err != nil {
		return err
	}
	if project.Status != domain.ProjectCompleted {
		project.Status = domain.ProjectCompleted
		if err := s.SaveProject(ctx, project); err != nil {
			return err
		}
	}
	return a.CreateSalesInvoiceOnCompletion(ctx, s, project)
}

// SyncChecklists re-copies template checklists onto the project's existing
// tasks matched by subject and returns the names of the tasks it rewrote.
func (a *Automation) SyncChecklists(ctx context.Context, s *hooks.Session, project, template string) ([]string, error) {
	templates, err := loadTemplateTasks(ctx, s, template)
	if err != nil {
		return nil, err
	}
	checklists := make(map[string][]domain.ChecklistItem)
	for _, tt := range templates {
		if len(tt.checklist) > 0 {
			checklists[tt.subject] = tt.checklist
		}
	}

	realTasks, err := s.Store.Tasks.ListByProject(ctx, project, false)
	if err != nil {
		return nil, err
	}

	var updated []string
	for _, task := range realTasks {
		items, ok := checklists[task.Subject]
		if !ok {
			continue
		}
		task.Checklist = domain.FreshChecklist(items)
		if err := s.SaveTask(ctx, task); err != nil {
			return updated, err
		}
		updated = append(updated, task.Name)
	}
	return updated, nil
}
