package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/naqd/internal/dashboard"
)

// FormatDashboard renders the customer dashboard cards for the terminal.
func FormatDashboard(s *dashboard.Stats, symbol string) string {
	var b strings.Builder
	card := func(value, label string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-18s", label)), value))
	}
	card(StyleGreen.Render(fmt.Sprintf("%d", s.Ongoing)), "Ongoing Projects")
	card(StyleRed.Render(fmt.Sprintf("%d", s.Cancelled)), "Cancelled Projects")
	card(StyleFg.Render(fmt.Sprintf("%d", s.Completed)), "Completed Projects")
	card(StyleYellow.Render(fmt.Sprintf("%d", s.Unbilled)), "Unbilled Projects")
	card(Money(symbol, s.Balance), "Ledger Balance")
	return RenderBox(s.Customer, b.String())
}
