package service

import (
	"context"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/hooks"
	"github.com/alexanderramin/naqd/internal/repository"
)

type projectService struct {
	docs     *Documents
	observer UseCaseObserver
}

func NewProjectService(docs *Documents, observers ...UseCaseObserver) ProjectService {
	return &projectService{docs: docs, observer: useCaseObserverOrNoop(observers)}
}

// Create inserts p. Template tasks are copied and chained by the
// after_insert hooks in the same transaction.
func (s *projectService) Create(ctx context.Context, p *domain.Project) (msgs Messages, err error) {
	fields := map[string]any{"template": p.ProjectTemplate, "customer": p.Customer}
	defer observe(ctx, s.observer, "create-project", time.Now(), fields, &err)

	msgs, err = s.docs.Run(ctx, func(ctx context.Context, hs *hooks.Session) error {
		if err := requireCustomer(ctx, hs.Store, p.Customer); err != nil {
			return err
		}
		if p.ProjectTemplate != "" {
			ok, err := hs.Store.Templates.Exists(ctx, p.ProjectTemplate)
			if err != nil {
				return err
			}
			if !ok {
				return domain.NewValidation("Project Template %s does not exist", p.ProjectTemplate)
			}
		}
		return hs.InsertProject(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	fields["project"] = p.Name
	s.docs.Invalidate(ctx, p.Customer)
	return msgs, nil
}

func (s *projectService) Get(ctx context.Context, name string) (*domain.Project, error) {
	return s.docs.Store().Projects.Get(ctx, name)
}

func (s *projectService) List(ctx context.Context, f repository.ProjectFilter) ([]*domain.Project, error) {
	return s.docs.Store().Projects.List(ctx, f)
}

// SetStatus saves the project with a new status. Completing it drafts the
// sales invoice through the on_update hooks.
func (s *projectService) SetStatus(ctx context.Context, name string, status domain.ProjectStatus) (msgs Messages, err error) {
	fields := map[string]any{"project": name, "status": string(status)}
	defer observe(ctx, s.observer, "set-project-status", time.Now(), fields, &err)

	var customer string
	msgs, err = s.docs.Run(ctx, func(ctx context.Context, hs *hooks.Session) error {
		p, err := hs.Store.Projects.Get(ctx, name)
		if err != nil {
			return err
		}
		customer = p.Customer
		p.Status = status
		return hs.SaveProject(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.docs.Invalidate(ctx, customer)
	return msgs, nil
}

func (s *projectService) Cancel(ctx context.Context, name string) (Messages, error) {
	return s.SetStatus(ctx, name, domain.ProjectCancelled)
}
