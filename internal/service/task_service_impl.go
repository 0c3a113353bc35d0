package service

import (
	"context"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/hooks"
)

type taskService struct {
	docs     *Documents
	observer UseCaseObserver
}

func NewTaskService(docs *Documents, observers ...UseCaseObserver) TaskService {
	return &taskService{docs: docs, observer: useCaseObserverOrNoop(observers)}
}

// Create inserts a task by hand. It is visible unless it waits on a
// predecessor that is not completed yet.
func (s *taskService) Create(ctx context.Context, t *domain.Task) (msgs Messages, err error) {
	fields := map[string]any{"project": t.Project}
	defer observe(ctx, s.observer, "create-task", time.Now(), fields, &err)

	msgs, err = s.docs.Run(ctx, func(ctx context.Context, hs *hooks.Session) error {
		if t.Project != "" {
			if _, err := hs.Store.Projects.Get(ctx, t.Project); err != nil {
				return err
			}
		}
		t.VisibleToUser = true
		if t.PreviousTask != "" {
			prev, err := hs.Store.Tasks.Get(ctx, t.PreviousTask)
			if err != nil {
				return err
			}
			t.VisibleToUser = prev.IsCompleted()
		}
		return hs.InsertTask(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	fields["task"] = t.Name
	return msgs, nil
}

func (s *taskService) Get(ctx context.Context, name string) (*domain.Task, error) {
	return s.docs.Store().Tasks.Get(ctx, name)
}

func (s *taskService) ListByProject(ctx context.Context, project string, onlyVisible bool) ([]*domain.Task, error) {
	if _, err := s.docs.Store().Projects.Get(ctx, project); err != nil {
		return nil, err
	}
	return s.docs.Store().Tasks.ListByProject(ctx, project, onlyVisible)
}

// SetStatus saves the task with a new status and runs the on_update hooks:
// successors are revealed and a fully completed project is closed and
// invoiced, all in one transaction.
func (s *taskService) SetStatus(ctx context.Context, name string, status domain.TaskStatus) (msgs Messages, err error) {
	fields := map[string]any{"task": name, "status": string(status)}
	defer observe(ctx, s.observer, "set-task-status", time.Now(), fields, &err)

	var customer string
	msgs, err = s.docs.Run(ctx, func(ctx context.Context, hs *hooks.Session) error {
		t, err := hs.Store.Tasks.Get(ctx, name)
		if err != nil {
			return err
		}
		if t.IsTemplate {
			return domain.NewValidation("Template task %s cannot change status", name)
		}
		t.Status = status
		if err := hs.SaveTask(ctx, t); err != nil {
			return err
		}
		if t.Project != "" {
			p, err := hs.Store.Projects.Get(ctx, t.Project)
			if err != nil {
				return err
			}
			customer = p.Customer
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.docs.Invalidate(ctx, customer)
	return msgs, nil
}

func (s *taskService) Complete(ctx context.Context, name string) (Messages, error) {
	return s.SetStatus(ctx, name, domain.TaskCompleted)
}

func (s *taskService) UpdateChecklistItem(ctx context.Context, task string, idx int, done bool) (err error) {
	defer observe(ctx, s.observer, "update-checklist-item", time.Now(), map[string]any{"task": task, "idx": idx, "done": done}, &err)
	return s.docs.Store().Tasks.SetChecklistItemDone(ctx, task, idx, done)
}
