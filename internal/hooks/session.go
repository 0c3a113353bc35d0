package hooks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/repository"
)

// MaxDepth bounds nested saves triggered from inside hooks.
const MaxDepth = 8

// Session is a unit of document writes: one repository Store bound to a
// transaction plus the hooks that fire on each write. Not safe for
// concurrent use.
type Session struct {
	Store *repository.Store

	registry *Registry
	logger   *slog.Logger
	now      func() time.Time
	depth    int
	messages []string
}

type SessionOption func(*Session)

func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewSession(store *repository.Store, registry *Registry, opts ...SessionOption) *Session {
	if registry == nil {
		registry = NewRegistry()
	}
	s := &Session{
		Store:    store,
		registry: registry,
		logger:   slog.Default(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Now() time.Time { return s.now() }

// Notify queues a message for the user who triggered the write.
func (s *Session) Notify(format string, args ...any) {
	s.messages = append(s.messages, fmt.Sprintf(format, args...))
}

// Messages returns the queued user messages in order.
func (s *Session) Messages() []string {
	return append([]string(nil), s.messages...)
}

// InsertProject names, validates and stores p, then fires after_insert hooks.
func (s *Session) InsertProject(ctx context.Context, p *domain.Project) error {
	now := s.now()
	if p.Name == "" {
		name, err := s.Store.Series.NewName(ctx, repository.SeriesProject, now)
		if err != nil {
			return err
		}
		p.Name = name
	}
	if p.Status == "" {
		p.Status = domain.ProjectOpen
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.Store.Projects.Create(ctx, p); err != nil {
		return err
	}
	return s.fireProject(ctx, AfterInsert, p)
}

// SaveProject validates and updates p, then fires on_update hooks.
func (s *Session) SaveProject(ctx context.Context, p *domain.Project) error {
	p.UpdatedAt = s.now()
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.Store.Projects.Update(ctx, p); err != nil {
		return err
	}
	return s.fireProject(ctx, OnUpdate, p)
}

// InsertTask names, validates and stores t, then fires after_insert hooks.
func (s *Session) InsertTask(ctx context.Context, t *domain.Task) error {
	now := s.now()
	if t.Name == "" {
		name, err := s.Store.Series.NewName(ctx, repository.SeriesTask, now)
		if err != nil {
			return err
		}
		t.Name = name
	}
	if t.Status == "" {
		t.Status = domain.TaskOpen
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	stampCompletion(t, now)
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.Store.Tasks.Create(ctx, t); err != nil {
		return err
	}
	return s.fireTask(ctx, AfterInsert, t)
}

// SaveTask validates and updates t, then fires on_update hooks.
func (s *Session) SaveTask(ctx context.Context, t *domain.Task) error {
	now := s.now()
	t.UpdatedAt = now
	stampCompletion(t, now)
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.Store.Tasks.Update(ctx, t); err != nil {
		return err
	}
	return s.fireTask(ctx, OnUpdate, t)
}

func stampCompletion(t *domain.Task, now time.Time) {
	switch {
	case t.Status == domain.TaskCompleted && t.CompletedOn == nil:
		t.CompletedOn = &now
	case t.Status != domain.TaskCompleted:
		t.CompletedOn = nil
	}
}

func (s *Session) enter() error {
	if s.depth >= MaxDepth {
		return fmt.Errorf("hooks nested deeper than %d saves", MaxDepth)
	}
	s.depth++
	return nil
}

func (s *Session) leave() { s.depth-- }

func (s *Session) fireProject(ctx context.Context, event Event, p *domain.Project) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	for _, h := range s.registry.project[event] {
		s.logger.DebugContext(ctx, "hook", "doctype", domain.DoctypeProject, "event", string(event), "hook", h.name, "name", p.Name)
		if err := h.fn(ctx, s, p); err != nil {
			return fmt.Errorf("%s %s hook %s: %w", domain.DoctypeProject, event, h.name, err)
		}
	}
	return nil
}

func (s *Session) fireTask(ctx context.Context, event Event, t *domain.Task) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	for _, h := range s.registry.task[event] {
		s.logger.DebugContext(ctx, "hook", "doctype", domain.DoctypeTask, "event", string(event), "hook", h.name, "name", t.Name)
		if err := h.fn(ctx, s, t); err != nil {
			return fmt.Errorf("%s %s hook %s: %w", domain.DoctypeTask, event, h.name, err)
		}
	}
	return nil
}
