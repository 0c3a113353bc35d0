package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ProjectTemplate is an ordered set of template tasks that new projects copy.
type ProjectTemplate struct {
	Name      string
	Tasks     []ProjectTemplateTask
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectTemplateTask links a template to one of its template tasks.
type ProjectTemplateTask struct {
	Idx     int
	Task    string
	Subject string
}

func (t *ProjectTemplate) Validate() error {
	return wrapValidation("Project Template", validation.ValidateStruct(t,
		validation.Field(&t.Name, validation.Required, validation.Length(1, 140)),
	))
}
