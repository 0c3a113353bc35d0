package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Project struct {
	Name              string
	ProjectName       string
	Customer          string
	Status            ProjectStatus
	ProjectTemplate   string
	RepeatFrequency   RepeatFrequency
	AutoRepeatInfo    string
	AutoRepeat        string // schedule that generated this project, if any
	ExpectedStartDate *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (p *Project) Validate() error {
	return wrapValidation(DoctypeProject, validation.ValidateStruct(p,
		validation.Field(&p.ProjectName, validation.Required, validation.Length(1, 140)),
		validation.Field(&p.Status, validation.Required, validation.In(toAny(ProjectStatuses)...)),
		validation.Field(&p.RepeatFrequency, validation.In(toAny(RepeatFrequencies)...)),
	))
}

