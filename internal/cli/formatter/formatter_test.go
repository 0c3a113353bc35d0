package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/naqd/internal/dashboard"
	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func chainTasks() []*domain.Task {
	return []*domain.Task{
		{Name: "TASK-1", Subject: "Kickoff", Status: domain.TaskCompleted, VisibleToUser: true,
			Checklist: []domain.ChecklistItem{{Idx: 1, CheckList: "Agenda", Done: true}, {Idx: 2, CheckList: "Attendees"}}},
		{Name: "TASK-2", Subject: "Fieldwork", PreviousTask: "TASK-1", Status: domain.TaskWorking, VisibleToUser: true},
		{Name: "TASK-3", Subject: "Report", PreviousTask: "TASK-2", Status: domain.TaskOpen},
		{Name: "TASK-4", Subject: "Archive", Status: domain.TaskOpen, VisibleToUser: true},
	}
}

func TestBuildTaskTree_NestsSuccessors(t *testing.T) {
	items := BuildTaskTree(chainTasks())
	require.Len(t, items, 4)

	assert.Equal(t, "Kickoff", items[0].Title)
	assert.Equal(t, 0, items[0].Level)
	assert.Equal(t, "1/2", items[0].Detail)
	assert.Equal(t, "Fieldwork", items[1].Title)
	assert.Equal(t, 1, items[1].Level)
	assert.Equal(t, "Report", items[2].Title)
	assert.Equal(t, 2, items[2].Level)
	assert.True(t, items[2].Hidden)
	assert.Equal(t, "Archive", items[3].Title)
	assert.Equal(t, 0, items[3].Level)
}

func TestBuildTaskTree_PredecessorOutsideListIsRoot(t *testing.T) {
	items := BuildTaskTree([]*domain.Task{{Name: "TASK-9", Subject: "Orphan", PreviousTask: "TASK-404"}})
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].Level)
}

func TestRenderTree(t *testing.T) {
	out := stripANSI(RenderTree(BuildTaskTree(chainTasks())))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "✔ Kickoff TASK-1")
	assert.Contains(t, lines[0], "[ 1/2 ]")
	assert.Contains(t, lines[1], "└─ ▶ Fieldwork")
	assert.Contains(t, lines[2], "│  └─ ◌ Report")
	assert.Equal(t, "", RenderTree(nil))
}

func TestRenderTable_RightAlign(t *testing.T) {
	out := stripANSI(RenderTable([]string{"ITEM", "AMOUNT"}, [][]string{{"fee", "5.00"}, {"travel", "1,250.00"}}, 1))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "fee         5.00", lines[2])
	assert.Equal(t, "travel  1,250.00", lines[3])
	assert.Equal(t, "", RenderTable(nil, nil))
}

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "[████░░░░] 2/4", stripANSI(RenderProgress(2, 4, 8)))
	assert.Equal(t, "[████████] 4/4", stripANSI(RenderProgress(5, 4, 8)))
	assert.Equal(t, "[░░] 0/0", stripANSI(RenderProgress(0, 0, 1)))
}

func TestFormatProjectInspect(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	out := stripANSI(FormatProjectInspect(&domain.Project{
		Name:              "PROJ-0001",
		ProjectName:       "FY26 audit",
		Customer:          "ACME",
		Status:            domain.ProjectOpen,
		ProjectTemplate:   "Audit",
		RepeatFrequency:   domain.FrequencyMonthly,
		AutoRepeatInfo:    "Monthly repeat from 2026-03-09",
		ExpectedStartDate: &start,
	}, chainTasks()))

	assert.Contains(t, out, "FY26 audit")
	assert.Contains(t, out, "● Open")
	assert.Contains(t, out, "2026-03-01")
	assert.Contains(t, out, "Monthly repeat from 2026-03-09")
	assert.Contains(t, out, "1/4")
	assert.Contains(t, out, "Fieldwork")
}

func TestFormatProjectList_Empty(t *testing.T) {
	assert.Equal(t, "No projects.", stripANSI(FormatProjectList(nil)))
}

func TestFormatInvoice(t *testing.T) {
	inv := &domain.SalesInvoice{
		Name:      "ACC-SINV-2026-00001",
		Customer:  "ACME",
		Project:   "PROJ-0001",
		DocStatus: domain.DocSubmitted,
		Items:     []domain.SalesInvoiceItem{{ItemCode: "audit fee", Qty: 2, Rate: 1250}},
	}
	inv.CalculateTotals()

	out := stripANSI(FormatInvoice(inv, "₹"))
	assert.Contains(t, out, "ACC-SINV-2026-00001")
	assert.Contains(t, out, "● Submitted")
	assert.Contains(t, out, "audit fee")
	assert.Contains(t, out, "₹2,500.00")

	list := stripANSI(FormatInvoiceList([]*domain.SalesInvoice{inv}, "$"))
	assert.Contains(t, list, "SALES INVOICES")
	assert.Contains(t, list, "$2,500.00")
}

func TestFormatDashboard(t *testing.T) {
	out := stripANSI(FormatDashboard(&dashboard.Stats{
		Customer: "ACME", Ongoing: 2, Completed: 1, Unbilled: 2, Balance: -150.5,
	}, "₹"))
	assert.Contains(t, out, "ACME")
	assert.Regexp(t, `Ongoing Projects\s+2`, out)
	assert.Regexp(t, `Completed Projects\s+1`, out)
	assert.Contains(t, out, "₹-150.50")
}

func TestFormatTemplateShow(t *testing.T) {
	out := stripANSI(FormatTemplateShow(&domain.ProjectTemplate{Name: "Audit"}, []*domain.Task{
		{Name: "TASK-1", Subject: "Kickoff", IsTemplate: true, Status: domain.TaskOpen},
		{Name: "TASK-2", Subject: "Fieldwork", IsTemplate: true, PreviousTask: "TASK-1", Status: domain.TaskOpen},
	}))
	assert.Contains(t, out, "Audit")
	assert.Contains(t, out, "└─ Fieldwork")
	assert.NotContains(t, out, "◌")
}

func TestFormatMessages(t *testing.T) {
	out := stripANSI(FormatMessages([]string{"Draft Sales Invoice ACC-SINV-2026-00001 created."}))
	assert.Equal(t, "ℹ Draft Sales Invoice ACC-SINV-2026-00001 created.\n", out)
}
