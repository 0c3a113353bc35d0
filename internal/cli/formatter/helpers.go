package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/naqd/internal/dashboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Date renders a calendar date, or a dim placeholder for nil.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Dim("--")
	}
	return t.Format("2006-01-02")
}

// Money renders an amount with the currency symbol, negative balances in
// green since they are customer credit.
func Money(symbol string, v float64) string {
	text := symbol + dashboard.FormatAmount(v)
	switch {
	case v > 0:
		return StyleYellow.Render(text)
	case v < 0:
		return StyleGreen.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// Ago renders a timestamp relative to now, e.g. "3 days ago".
func Ago(t time.Time) string {
	if t.IsZero() {
		return Dim("--")
	}
	return Dim(humanize.Time(t))
}

// OrDash returns s, or a dim "--" for the empty string.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
