package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// ProjectStatusPill returns a colored status indicator for a project.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectOpen:
		return StyleGreen.Render("● Open")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.ProjectCancelled:
		return StyleRed.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// TaskStatusPill returns a colored status indicator for a task.
func TaskStatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskOpen:
		return StyleBlue.Render("○ Open")
	case domain.TaskWorking:
		return StyleYellow.Render("● Working")
	case domain.TaskPendingReview:
		return StylePurple.Render("◐ Pending Review")
	case domain.TaskOverdue:
		return StyleRed.Render("▲ Overdue")
	case domain.TaskCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.TaskCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// DocStatusPill returns a colored indicator for an invoice's submit state.
func DocStatusPill(status domain.DocStatus) string {
	switch status {
	case domain.DocDraft:
		return StyleYellow.Render("○ Draft")
	case domain.DocSubmitted:
		return StyleGreen.Render("● Submitted")
	case domain.DocCancelled:
		return StyleRed.Render("✖ Cancelled")
	default:
		return StyleDim.Render(status.String())
	}
}
