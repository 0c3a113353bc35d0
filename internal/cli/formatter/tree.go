package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a task chain display.
type TreeItem struct {
	Title  string
	Name   string
	Level  int
	IsLast bool
	Status domain.TaskStatus
	Hidden bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// BuildTaskTree arranges tasks by their previous-task links: tasks without
// a predecessor in the list are roots and each successor nests under the
// task it waits on. Input order is kept among siblings.
func BuildTaskTree(tasks []*domain.Task) []TreeItem {
	byName := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		byName[t.Name] = true
	}
	children := make(map[string][]*domain.Task)
	var roots []*domain.Task
	for _, t := range tasks {
		if t.PreviousTask == "" || !byName[t.PreviousTask] {
			roots = append(roots, t)
			continue
		}
		children[t.PreviousTask] = append(children[t.PreviousTask], t)
	}

	var items []TreeItem
	seen := make(map[string]bool, len(tasks))
	var walk func(nodes []*domain.Task, level int)
	walk = func(nodes []*domain.Task, level int) {
		for i, t := range nodes {
			if seen[t.Name] {
				continue
			}
			seen[t.Name] = true
			detail := ""
			if n := len(t.Checklist); n > 0 {
				done := 0
				for _, c := range t.Checklist {
					if c.Done {
						done++
					}
				}
				detail = fmt.Sprintf("%d/%d", done, n)
			}
			items = append(items, TreeItem{
				Title:  t.Subject,
				Name:   t.Name,
				Level:  level,
				IsLast: i == len(nodes)-1,
				Status: t.Status,
				Hidden: !t.VisibleToUser,
				Detail: detail,
			})
			walk(children[t.Name], level+1)
		}
	}
	walk(roots, 0)
	return items
}

// RenderTree renders TreeItems as an indented tree with box-drawing
// connectors. Completed tasks get a green ✔, working tasks an amber ▶ and
// hidden tasks are dimmed. Checklist badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}
	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.Name != "" {
			title += " " + StyleDim.Render(item.Name)
		}
		statusPrefix := ""
		switch {
		case item.Status == domain.TaskCompleted:
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		case item.Status == domain.TaskCancelled:
			statusPrefix = StyleRed.Render("✖ ")
			title = Dim(title)
		case item.Hidden:
			statusPrefix = StyleDim.Render("◌ ")
			title = Dim(title)
		case item.Status == domain.TaskWorking:
			statusPrefix = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		}

		content := prefix + statusPrefix + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := max(maxContentWidth-lipgloss.Width(li.content), 0)
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}
	return b.String()
}
