// Package automation holds the document hooks that chain template tasks,
// invoice completed projects and tag recurring projects.
package automation

import (
	"github.com/alexanderramin/naqd/internal/hooks"
)

// DefaultItemCode is the placeholder line item on generated invoices.
const DefaultItemCode = "sample item"

// Options configures the hooks.
type Options struct {
	// ItemCode of the placeholder invoice line. Empty means DefaultItemCode.
	ItemCode string
}

// Automation carries hook configuration. Its methods are hooks.
type Automation struct {
	itemCode string
}

func New(opts Options) *Automation {
	itemCode := opts.ItemCode
	if itemCode == "" {
		itemCode = DefaultItemCode
	}
	return &Automation{itemCode: itemCode}
}

// Register adds the hooks to reg. Core hooks that create tasks from a
// template must be registered before these.
func (a *Automation) Register(reg *hooks.Registry) {
	reg.OnProject(hooks.AfterInsert, "link_template_tasks", a.LinkTemplateTasks)
	reg.OnProject(hooks.AfterInsert, "create_auto_repeat_from_project", a.CreateAutoRepeatFromProject)
	reg.OnProject(hooks.AfterInsert, "tag_project_created_by_auto_repeat", a.TagProjectCreatedByAutoRepeat)
	reg.OnProject(hooks.OnUpdate, "create_sales_invoice_on_completion", a.CreateSalesInvoiceOnCompletion)
	reg.OnTask(hooks.OnUpdate, "on_task_update", a.OnTaskUpdate)
}
