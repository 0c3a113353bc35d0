package automation

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/hooks"
	"github.com/alexanderramin/naqd/internal/repository"
)

// RepeatInfo renders the recurrence label stored on a project, for example
// "March 2026 (Monthly)".
func RepeatInfo(created time.Time, frequency domain.RepeatFrequency) string {
	label := string(frequency)
	if label == "" {
		label = string(domain.FrequencyOneTime)
	}
	return fmt.Sprintf("%s %d (%s)", created.Month(), created.Year(), label)
}

func creationDate(s *hooks.Session, p *domain.Project) time.Time {
	if p.CreatedAt.IsZero() {
		return s.Now()
	}
	return p.CreatedAt
}

// CreateAutoRepeatFromProject stamps the recurrence label on a new project
// and, for recurring frequencies, registers a submitted Auto Repeat for it.
// Projects generated by a schedule do not get a schedule of their own.
func (a *Automation) CreateAutoRepeatFromProject(ctx context.Context, s *hooks.Session, p *domain.Project) error {
	info := RepeatInfo(creationDate(s, p), p.RepeatFrequency)
	if err := s.Store.Projects.SetAutoRepeatInfo(ctx, p.Name, info); err != nil {
		return err
	}
	p.AutoRepeatInfo = info

	if !p.RepeatFrequency.Recurring() || p.AutoRepeat != "" {
		return nil
	}
	exists, err := s.Store.AutoRepeats.ExistsForReference(ctx, domain.DoctypeProject, p.Name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	now := s.Now()
	name, err := s.Store.Series.NewName(ctx, repository.SeriesAutoRepeat, now)
	if err != nil {
		return err
	}
	start := domain.DateOnly(now)
	ar := &domain.AutoRepeat{
		Name:             name,
		ReferenceDoctype: domain.DoctypeProject,
		ReferenceName:    p.Name,
		Frequency:        p.RepeatFrequency,
		StartDate:        start,
		NextScheduleDate: domain.NextDate(start, p.RepeatFrequency),
		Status:           domain.AutoRepeatActive,
		DocStatus:        domain.DocSubmitted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := ar.Validate(); err != nil {
		return err
	}
	return s.Store.AutoRepeats.Create(ctx, ar)
}

// TagProjectCreatedByAutoRepeat stamps the label with the frequency of the
// schedule behind the project: the one that generated it, or else one that
// references it.
func (a *Automation) TagProjectCreatedByAutoRepeat(ctx context.Context, s *hooks.Session, p *domain.Project) error {
	var frequency domain.RepeatFrequency
	switch {
	case p.AutoRepeat != "":
		ar, err := s.Store.AutoRepeats.Get(ctx, p.AutoRepeat)
		if err != nil {
			return err
		}
		frequency = ar.Frequency
	default:
		exists, err := s.Store.AutoRepeats.ExistsForReference(ctx, domain.DoctypeProject, p.Name)
		if err != nil {
			return err
		}
		if !exists {
			return nil
		}
		frequency = p.RepeatFrequency
	}

	info := RepeatInfo(creationDate(s, p), frequency)
	if err := s.Store.Projects.SetAutoRepeatInfo(ctx, p.Name, info); err != nil {
		return err
	}
	p.AutoRepeatInfo = info
	return nil
}
