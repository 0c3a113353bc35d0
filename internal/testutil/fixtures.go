package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
)

var testNameCounter atomic.Int64

func nextName(prefix string) string {
	return fmt.Sprintf("%s-T%05d", prefix, testNameCounter.Add(1))
}

func NewTestCustomer(name string) *domain.Customer {
	return &domain.Customer{
		Name:         name,
		CustomerName: name + " Ltd",
		CreatedAt:    time.Now().UTC(),
	}
}

// Project options
type ProjectOption func(*domain.Project)

func WithCustomer(customer string) ProjectOption {
	return func(p *domain.Project) {
		p.Customer = customer
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectTemplate(template string) ProjectOption {
	return func(p *domain.Project) {
		p.ProjectTemplate = template
	}
}

func WithRepeatFrequency(f domain.RepeatFrequency) ProjectOption {
	return func(p *domain.Project) {
		p.RepeatFrequency = f
	}
}

func WithProjectName(name string) ProjectOption {
	return func(p *domain.Project) {
		p.Name = name
	}
}

func WithProjectCreatedAt(at time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.CreatedAt = at
		p.UpdatedAt = at
	}
}

func NewTestProject(title string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		Name:        nextName("PROJ"),
		ProjectName: title,
		Status:      domain.ProjectOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithPreviousTask(name string) TaskOption {
	return func(t *domain.Task) {
		t.PreviousTask = name
	}
}

func WithVisible() TaskOption {
	return func(t *domain.Task) {
		t.VisibleToUser = true
	}
}

func AsTemplateTask() TaskOption {
	return func(t *domain.Task) {
		t.IsTemplate = true
		t.Project = ""
	}
}

func WithChecklist(items ...string) TaskOption {
	return func(t *domain.Task) {
		t.Checklist = nil
		for i, item := range items {
			t.Checklist = append(t.Checklist, domain.ChecklistItem{Idx: i + 1, CheckList: item})
		}
	}
}

func WithTaskName(name string) TaskOption {
	return func(t *domain.Task) {
		t.Name = name
	}
}

// NewTestTask builds an open task in project. Pass an empty project together
// with AsTemplateTask for template tasks.
func NewTestTask(project, subject string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		Name:      nextName("TASK"),
		Subject:   subject,
		Project:   project,
		Status:    domain.TaskOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Invoice options
type InvoiceOption func(*domain.SalesInvoice)

func WithDocStatus(s domain.DocStatus) InvoiceOption {
	return func(inv *domain.SalesInvoice) {
		inv.DocStatus = s
	}
}

func WithInvoiceItem(code string, qty, rate float64) InvoiceOption {
	return func(inv *domain.SalesInvoice) {
		inv.Items = append(inv.Items, domain.SalesInvoiceItem{ItemCode: code, Qty: qty, Rate: rate})
		inv.CalculateTotals()
	}
}

func NewTestInvoice(customer, project string, opts ...InvoiceOption) *domain.SalesInvoice {
	now := time.Now().UTC()
	inv := &domain.SalesInvoice{
		Name:        nextName("SINV"),
		Customer:    customer,
		Project:     project,
		DocStatus:   domain.DocDraft,
		PostingDate: domain.DateOnly(now),
		DueDate:     domain.DateOnly(now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(inv)
	}
	if len(inv.Items) == 0 {
		inv.Items = []domain.SalesInvoiceItem{{ItemCode: "sample item", Qty: 1}}
		inv.CalculateTotals()
	}
	return inv
}

func NewTestLedgerEntry(customer string, debit, credit float64, voucherNo string) *domain.LedgerEntry {
	now := time.Now().UTC()
	return &domain.LedgerEntry{
		PartyType:   domain.PartyTypeCustomer,
		Party:       customer,
		PostingDate: domain.DateOnly(now),
		Debit:       debit,
		Credit:      credit,
		VoucherType: domain.DoctypeSalesInvoice,
		VoucherNo:   voucherNo,
		CreatedAt:   now,
	}
}

func NewTestAutoRepeat(project string, freq domain.RepeatFrequency, next time.Time) *domain.AutoRepeat {
	now := time.Now().UTC()
	return &domain.AutoRepeat{
		Name:             nextName("AR"),
		ReferenceDoctype: domain.DoctypeProject,
		ReferenceName:    project,
		Frequency:        freq,
		StartDate:        domain.DateOnly(next),
		NextScheduleDate: domain.DateOnly(next),
		Status:           domain.AutoRepeatActive,
		DocStatus:        domain.DocSubmitted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
