package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/hooks"
)

type autoRepeatService struct {
	docs     *Documents
	observer UseCaseObserver
}

func NewAutoRepeatService(docs *Documents, observers ...UseCaseObserver) AutoRepeatService {
	return &autoRepeatService{docs: docs, observer: useCaseObserverOrNoop(observers)}
}

func (s *autoRepeatService) List(ctx context.Context) ([]*domain.AutoRepeat, error) {
	return s.docs.Store().AutoRepeats.List(ctx)
}

// RunDue creates one new project per due schedule and moves each schedule's
// next date past today. Copies go through the normal insert path so template
// tasks are created and chained.
func (s *autoRepeatService) RunDue(ctx context.Context) (result *RunResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "run-auto-repeat", time.Now(), fields, &err)

	result = &RunResult{}
	var customers []string
	msgs, err := s.docs.Run(ctx, func(ctx context.Context, hs *hooks.Session) error {
		now := hs.Now()
		due, err := hs.Store.AutoRepeats.ListDue(ctx, now)
		if err != nil {
			return err
		}
		for _, ar := range due {
			if ar.ReferenceDoctype != domain.DoctypeProject {
				continue
			}
			ref, err := hs.Store.Projects.Get(ctx, ar.ReferenceName)
			if errors.Is(err, domain.ErrNotFound) {
				s.docs.logger.WarnContext(ctx, "auto repeat reference missing, disabling schedule",
					"auto_repeat", ar.Name, "reference", ar.ReferenceName)
				if err := hs.Store.AutoRepeats.SetStatus(ctx, ar.Name, domain.AutoRepeatDisabled); err != nil {
					return err
				}
				result.Disabled = append(result.Disabled, ar.Name)
				hs.Notify("Auto Repeat %s disabled: Project %s not found.", ar.Name, ar.ReferenceName)
				continue
			}
			if err != nil {
				return err
			}

			copied := &domain.Project{
				ProjectName:     ref.ProjectName,
				Customer:        ref.Customer,
				Status:          domain.ProjectOpen,
				ProjectTemplate: ref.ProjectTemplate,
				RepeatFrequency: ref.RepeatFrequency,
				AutoRepeat:      ar.Name,
			}
			if err := hs.InsertProject(ctx, copied); err != nil {
				return err
			}
			result.Created = append(result.Created, copied)
			customers = append(customers, copied.Customer)

			if err := hs.Store.AutoRepeats.SetNextScheduleDate(ctx, ar.Name, advanceSchedule(ar, now)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Messages = msgs
	fields["created"] = len(result.Created)
	fields["disabled"] = len(result.Disabled)
	s.docs.Invalidate(ctx, customers...)
	return result, nil
}

// advanceSchedule returns the first period date after today, counted from
// the schedule's start so month-end days are not lost to clamping.
func advanceSchedule(ar *domain.AutoRepeat, now time.Time) time.Time {
	today := domain.DateOnly(now)
	anchor := domain.DateOnly(ar.NextScheduleDate)
	if !ar.StartDate.IsZero() {
		anchor = domain.DateOnly(ar.StartDate)
	}
	for n := 1; ; n++ {
		next := domain.AddPeriods(anchor, ar.Frequency, n)
		if !next.After(anchor) {
			return today.AddDate(0, 0, 1)
		}
		if next.After(today) {
			return next
		}
	}
}

func (s *autoRepeatService) Disable(ctx context.Context, name string) (err error) {
	defer observe(ctx, s.observer, "disable-auto-repeat", time.Now(), map[string]any{"auto_repeat": name}, &err)
	return s.docs.Store().AutoRepeats.SetStatus(ctx, name, domain.AutoRepeatDisabled)
}
