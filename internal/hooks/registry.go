// Package hooks runs document lifecycle callbacks for projects and tasks.
//
// Hooks are registered per doctype and event and run in registration order
// after the document is written, inside the caller's transaction. A hook may
// save other documents through the same Session, which fires their hooks in
// turn.
package hooks

import (
	"context"

	"github.com/alexanderramin/naqd/internal/domain"
)

type Event string

const (
	AfterInsert Event = "after_insert"
	OnUpdate    Event = "on_update"
)

// ProjectHook reacts to a project write.
type ProjectHook func(ctx context.Context, s *Session, p *domain.Project) error

// TaskHook reacts to a task write.
type TaskHook func(ctx context.Context, s *Session, t *domain.Task) error

type projectEntry struct {
	name string
	fn   ProjectHook
}

type taskEntry struct {
	name string
	fn   TaskHook
}

// Registry holds hooks keyed by event. It is built once at startup and
// read-only afterwards.
type Registry struct {
	project map[Event][]projectEntry
	task    map[Event][]taskEntry
}

func NewRegistry() *Registry {
	return &Registry{
		project: make(map[Event][]projectEntry),
		task:    make(map[Event][]taskEntry),
	}
}

// OnProject appends fn to the project hooks for event.
func (r *Registry) OnProject(event Event, name string, fn ProjectHook) {
	r.project[event] = append(r.project[event], projectEntry{name: name, fn: fn})
}

// OnTask appends fn to the task hooks for event.
func (r *Registry) OnTask(event Event, name string, fn TaskHook) {
	r.task[event] = append(r.task[event], taskEntry{name: name, fn: fn})
}

// Names lists registered hook names for doctype and event in run order.
func (r *Registry) Names(doctype string, event Event) []string {
	var names []string
	switch doctype {
	case domain.DoctypeProject:
		for _, e := range r.project[event] {
			names = append(names, e.name)
		}
	case domain.DoctypeTask:
		for _, e := range r.task[event] {
			names = append(names, e.name)
		}
	}
	return names
}
