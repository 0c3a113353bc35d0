package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/naqd/internal/domain"
)

// FormatTemplateList renders a styled template list inside a bordered box.
func FormatTemplateList(templates []*domain.ProjectTemplate) string {
	if len(templates) == 0 {
		return Dim("No templates.")
	}
	headers := []string{"NAME", "TASKS", "UPDATED"}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, []string{
			Bold(t.Name),
			fmt.Sprintf("%d", len(t.Tasks)),
			Ago(t.UpdatedAt),
		})
	}
	return RenderBox("Templates", RenderTable(headers, rows, 1))
}

// FormatTemplateShow renders a template with its task chain.
func FormatTemplateShow(t *domain.ProjectTemplate, tasks []*domain.Task) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(t.Name) + "\n\n")
	b.WriteString(Header("Tasks") + "\n")
	if len(tasks) == 0 {
		b.WriteString(Dim("No template tasks") + "\n")
	} else {
		// Template tasks are never shown to users; render them as visible
		// so the chain reads normally.
		items := BuildTaskTree(tasks)
		for i := range items {
			items[i].Hidden = false
		}
		b.WriteString(RenderTree(items))
	}
	return RenderBox("", b.String())
}
