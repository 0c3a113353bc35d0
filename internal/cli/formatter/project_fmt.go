package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects.")
	}
	headers := []string{"NAME", "PROJECT", "CUSTOMER", "STATUS", "TEMPLATE", "REPEAT"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			Dim(p.Name),
			Bold(p.ProjectName),
			OrDash(p.Customer),
			ProjectStatusPill(p.Status),
			OrDash(p.ProjectTemplate),
			OrDash(string(p.RepeatFrequency)),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectInspect renders project metadata beside its task chain.
func FormatProjectInspect(p *domain.Project, tasks []*domain.Task) string {
	left := buildMetadataPanel(p)
	right := buildTaskPanel(tasks)
	return RenderBox("", lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
}

func buildMetadataPanel(p *domain.Project) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.ProjectName) + "\n")
	b.WriteString(Dim(p.Name) + "\n\n")

	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-8s", label)), value))
	}
	field("STATUS", ProjectStatusPill(p.Status))
	field("CUSTOMER", OrDash(p.Customer))
	field("TEMPLATE", OrDash(p.ProjectTemplate))
	field("START", Date(p.ExpectedStartDate))
	if p.RepeatFrequency != "" {
		field("REPEAT", string(p.RepeatFrequency))
	}
	if p.AutoRepeat != "" {
		field("SCHEDULE", p.AutoRepeat)
	}
	if p.AutoRepeatInfo != "" {
		b.WriteString("\n" + StylePurple.Render(p.AutoRepeatInfo) + "\n")
	}
	field("UPDATED", Ago(p.UpdatedAt))

	return lipgloss.NewStyle().Width(45).Render(b.String())
}

func buildTaskPanel(tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return StyleDim.Render("No tasks")
	}
	done := 0
	for _, t := range tasks {
		if t.Status == domain.TaskCompleted {
			done++
		}
	}
	var b strings.Builder
	b.WriteString(StyleHeader.Render("TASKS") + "  " + RenderProgress(done, len(tasks), 12) + "\n")
	b.WriteString(StyleDim.Render(strings.Repeat("─", 5)) + "\n")
	b.WriteString(RenderTree(BuildTaskTree(tasks)))
	return b.String()
}

// FormatTaskList renders tasks as a table with their chain links.
func FormatTaskList(tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks.")
	}
	headers := []string{"NAME", "SUBJECT", "STATUS", "AFTER", "VISIBLE"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		visible := StyleGreen.Render("yes")
		if !t.VisibleToUser {
			visible = Dim("no")
		}
		rows = append(rows, []string{
			Dim(t.Name),
			Bold(t.Subject),
			TaskStatusPill(t.Status),
			OrDash(t.PreviousTask),
			visible,
		})
	}
	return RenderTable(headers, rows)
}

// FormatMessages renders hook notices, one per line.
func FormatMessages(msgs []string) string {
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(StyleBlue.Render("ℹ ") + m + "\n")
	}
	return b.String()
}
