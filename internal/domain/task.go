package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Task struct {
	Name          string
	Subject       string
	Description   string
	Project       string
	Status        TaskStatus
	IsTemplate    bool
	PreviousTask  string
	VisibleToUser bool
	Checklist     []ChecklistItem
	CompletedOn   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ChecklistItem is a child row of a task.
type ChecklistItem struct {
	Idx       int
	CheckList string
	Comment   string
	Done      bool
}

func (t *Task) Validate() error {
	return wrapValidation(DoctypeTask, validation.ValidateStruct(t,
		validation.Field(&t.Subject, validation.Required, validation.Length(1, 140)),
		validation.Field(&t.Status, validation.Required, validation.In(toAny(TaskStatuses)...)),
		validation.Field(&t.PreviousTask, validation.When(t.Name != "", validation.NotIn(t.Name).Error("cannot reference itself"))),
		validation.Field(&t.Checklist, validation.Each(validation.By(validateChecklistItem))),
	))
}

func validateChecklistItem(value interface{}) error {
	item, ok := value.(ChecklistItem)
	if !ok {
		return nil
	}
	return validation.ValidateStruct(&item,
		validation.Field(&item.CheckList, validation.Required),
	)
}

func (t *Task) IsCompleted() bool {
	return t.Status == TaskCompleted
}

// FreshChecklist copies checklist rows with Done reset, renumbering from 1.
func FreshChecklist(items []ChecklistItem) []ChecklistItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]ChecklistItem, len(items))
	for i, item := range items {
		out[i] = ChecklistItem{
			Idx:       i + 1,
			CheckList: item.CheckList,
			Comment:   item.Comment,
		}
	}
	return out
}
