package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/hooks"
)

// RegisterCoreHooks adds the built-in project hooks that must run before
// any automation.
func RegisterCoreHooks(reg *hooks.Registry) {
	reg.OnProject(hooks.AfterInsert, "copy_from_template", copyFromTemplate)
}

// copyFromTemplate creates one project task per template task, in template
// order. Projects that already have tasks are left alone.
func copyFromTemplate(ctx context.Context, s *hooks.Session, p *domain.Project) error {
	if p.ProjectTemplate == "" {
		return nil
	}
	counts, err := s.Store.Tasks.CountByProject(ctx, p.Name)
	if err != nil {
		return err
	}
	if counts.Total > 0 {
		return nil
	}

	tmpl, err := s.Store.Templates.Get(ctx, p.ProjectTemplate)
	if err != nil {
		return err
	}
	names := make([]string, len(tmpl.Tasks))
	for i, link := range tmpl.Tasks {
		names[i] = link.Task
	}
	sources, err := s.Store.Tasks.GetMany(ctx, names)
	if err != nil {
		return err
	}

	for _, link := range tmpl.Tasks {
		task := &domain.Task{
			Subject: link.Subject,
			Project: p.Name,
			Status:  domain.TaskOpen,
		}
		if src, ok := sources[link.Task]; ok {
			task.Subject = src.Subject
			task.Description = src.Description
		}
		if err := s.InsertTask(ctx, task); err != nil {
			return fmt.Errorf("copying template task %s: %w", link.Task, err)
		}
	}
	return nil
}
