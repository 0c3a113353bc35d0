package handler

import (
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
)

const dateLayout = "2006-01-02"

type customerResponse struct {
	Name         string    `json:"name"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"creation"`
}

func toCustomer(c *domain.Customer) customerResponse {
	return customerResponse{Name: c.Name, CustomerName: c.CustomerName, CreatedAt: c.CreatedAt}
}

type projectResponse struct {
	Name              string    `json:"name"`
	ProjectName       string    `json:"project_name"`
	Customer          string    `json:"customer,omitempty"`
	Status            string    `json:"status"`
	ProjectTemplate   string    `json:"project_template,omitempty"`
	RepeatFrequency   string    `json:"custom_repeat_frequency,omitempty"`
	AutoRepeatInfo    string    `json:"custom_auto_repeat_info,omitempty"`
	AutoRepeat        string    `json:"auto_repeat,omitempty"`
	ExpectedStartDate string    `json:"expected_start_date,omitempty"`
	CreatedAt         time.Time `json:"creation"`
	UpdatedAt         time.Time `json:"modified"`
}

func toProject(p *domain.Project) projectResponse {
	out := projectResponse{
		Name:            p.Name,
		ProjectName:     p.ProjectName,
		Customer:        p.Customer,
		Status:          string(p.Status),
		ProjectTemplate: p.ProjectTemplate,
		RepeatFrequency: string(p.RepeatFrequency),
		AutoRepeatInfo:  p.AutoRepeatInfo,
		AutoRepeat:      p.AutoRepeat,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.ExpectedStartDate != nil {
		out.ExpectedStartDate = p.ExpectedStartDate.Format(dateLayout)
	}
	return out
}

type checklistResponse struct {
	Idx       int    `json:"idx"`
	CheckList string `json:"check_list"`
	Comment   string `json:"comment,omitempty"`
	Done      bool   `json:"done"`
}

type taskResponse struct {
	Name          string              `json:"name"`
	Subject       string              `json:"subject"`
	Description   string              `json:"description,omitempty"`
	Project       string              `json:"project,omitempty"`
	Status        string              `json:"status"`
	IsTemplate    bool                `json:"is_template"`
	PreviousTask  string              `json:"custom_previous_task,omitempty"`
	VisibleToUser bool                `json:"custom_visible_to_user"`
	Checklist     []checklistResponse `json:"custom_checklist"`
	CompletedOn   *time.Time          `json:"completed_on,omitempty"`
}

func toTask(t *domain.Task) taskResponse {
	out := taskResponse{
		Name:          t.Name,
		Subject:       t.Subject,
		Description:   t.Description,
		Project:       t.Project,
		Status:        string(t.Status),
		IsTemplate:    t.IsTemplate,
		PreviousTask:  t.PreviousTask,
		VisibleToUser: t.VisibleToUser,
		Checklist:     make([]checklistResponse, 0, len(t.Checklist)),
		CompletedOn:   t.CompletedOn,
	}
	for _, c := range t.Checklist {
		out.Checklist = append(out.Checklist, checklistResponse(c))
	}
	return out
}

type invoiceItemResponse struct {
	Idx      int     `json:"idx"`
	ItemCode string  `json:"item_code"`
	Qty      float64 `json:"qty"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

type invoiceResponse struct {
	Name        string                `json:"name"`
	Customer    string                `json:"customer"`
	Project     string                `json:"project,omitempty"`
	DocStatus   int                   `json:"docstatus"`
	Status      string                `json:"status"`
	PostingDate string                `json:"posting_date"`
	DueDate     string                `json:"due_date"`
	GrandTotal  float64               `json:"grand_total"`
	Items       []invoiceItemResponse `json:"items,omitempty"`
}

func toInvoice(inv *domain.SalesInvoice) invoiceResponse {
	out := invoiceResponse{
		Name:        inv.Name,
		Customer:    inv.Customer,
		Project:     inv.Project,
		DocStatus:   int(inv.DocStatus),
		Status:      inv.DocStatus.String(),
		PostingDate: inv.PostingDate.Format(dateLayout),
		DueDate:     inv.DueDate.Format(dateLayout),
		GrandTotal:  inv.GrandTotal,
	}
	for _, it := range inv.Items {
		out.Items = append(out.Items, invoiceItemResponse(it))
	}
	return out
}

type autoRepeatResponse struct {
	Name             string `json:"name"`
	ReferenceDoctype string `json:"reference_doctype"`
	ReferenceName    string `json:"reference_document"`
	Frequency        string `json:"frequency"`
	StartDate        string `json:"start_date"`
	NextScheduleDate string `json:"next_schedule_date"`
	Status           string `json:"status"`
}

func toAutoRepeat(a *domain.AutoRepeat) autoRepeatResponse {
	return autoRepeatResponse{
		Name:             a.Name,
		ReferenceDoctype: a.ReferenceDoctype,
		ReferenceName:    a.ReferenceName,
		Frequency:        string(a.Frequency),
		StartDate:        a.StartDate.Format(dateLayout),
		NextScheduleDate: a.NextScheduleDate.Format(dateLayout),
		Status:           string(a.Status),
	}
}

func mapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
