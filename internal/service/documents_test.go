package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/hooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func TestNewRegistry_HookOrder(t *testing.T) {
	s := setupServices(t)
	reg := s.docs.registry

	assert.Equal(t, []string{
		"copy_from_template",
		"link_template_tasks",
		"create_auto_repeat_from_project",
		"tag_project_created_by_auto_repeat",
	}, reg.Names(domain.DoctypeProject, hooks.AfterInsert))
	assert.Equal(t, []string{"create_sales_invoice_on_completion"}, reg.Names(domain.DoctypeProject, hooks.OnUpdate))
	assert.Equal(t, []string{"on_task_update"}, reg.Names(domain.DoctypeTask, hooks.OnUpdate))
}

func TestDocuments_Run_DropsMessagesOnRollback(t *testing.T) {
	s := setupServices(t)
	boom := errors.New("boom")

	msgs, err := s.docs.Run(s.ctx, func(ctx context.Context, hs *hooks.Session) error {
		hs.Notify("saved %d", 1)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, msgs)

	msgs, err = s.docs.Run(s.ctx, func(ctx context.Context, hs *hooks.Session) error {
		hs.Notify("saved %d", 2)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, Messages{"saved 2"}, msgs)
}

func TestUseCaseObserver_ReportsOutcome(t *testing.T) {
	s := setupServices(t)
	obs := &recordingObserver{}
	projects := NewProjectService(s.docs, obs)

	_, err := projects.Create(s.ctx, &domain.Project{ProjectName: "Observed", Customer: "ACME"})
	require.NoError(t, err)
	_, err = projects.Create(s.ctx, &domain.Project{ProjectName: "Bad", Customer: "Nobody"})
	require.Error(t, err)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "create-project", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, "PROJ-0001", obs.events[0].Fields["project"])
	assert.False(t, obs.events[1].Success)
	assert.ErrorIs(t, obs.events[1].Err, domain.ErrValidation)
}

func TestNewLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "record-payment", Success: true, Fields: map[string]any{"customer": "ACME"}})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "record-payment", Err: errors.New("nope")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "msg=service_use_case")
	assert.Contains(t, lines[0], "use_case=record-payment")
	assert.Contains(t, lines[0], "customer=ACME")
	assert.Contains(t, lines[1], "level=ERROR")
	assert.Contains(t, lines[1], "error=nope")

	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
}
