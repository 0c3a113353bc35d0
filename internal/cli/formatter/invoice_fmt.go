package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/naqd/internal/dashboard"
	"github.com/alexanderramin/naqd/internal/domain"
)

// FormatInvoiceList renders sales invoices with their totals.
func FormatInvoiceList(invoices []*domain.SalesInvoice, symbol string) string {
	if len(invoices) == 0 {
		return Dim("No invoices.")
	}
	headers := []string{"NAME", "CUSTOMER", "PROJECT", "STATUS", "POSTED", "TOTAL"}
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{
			Bold(inv.Name),
			inv.Customer,
			OrDash(inv.Project),
			DocStatusPill(inv.DocStatus),
			Date(&inv.PostingDate),
			symbol + dashboard.FormatAmount(inv.GrandTotal),
		})
	}
	return RenderBox("Sales Invoices", RenderTable(headers, rows, 5))
}

// FormatInvoice renders one invoice with its line items.
func FormatInvoice(inv *domain.SalesInvoice, symbol string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleBold.Render(inv.Name), DocStatusPill(inv.DocStatus)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CUSTOMER"), inv.Customer))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PROJECT "), OrDash(inv.Project)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("POSTED  "), Date(&inv.PostingDate)))
	b.WriteString(fmt.Sprintf("%s  %s\n\n", StyleDim.Render("DUE     "), Date(&inv.DueDate)))

	rows := make([][]string, 0, len(inv.Items))
	for _, it := range inv.Items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", it.Idx),
			it.ItemCode,
			dashboard.FormatAmount(it.Qty),
			dashboard.FormatAmount(it.Rate),
			dashboard.FormatAmount(it.Amount),
		})
	}
	b.WriteString(RenderTable([]string{"#", "ITEM", "QTY", "RATE", "AMOUNT"}, rows, 0, 2, 3, 4))
	b.WriteString(fmt.Sprintf("\n%s  %s\n", StyleHeader.Render("GRAND TOTAL"), Money(symbol, inv.GrandTotal)))
	return RenderBox("", b.String())
}

// FormatAutoRepeatList renders repeat schedules.
func FormatAutoRepeatList(schedules []*domain.AutoRepeat) string {
	if len(schedules) == 0 {
		return Dim("No repeat schedules.")
	}
	headers := []string{"NAME", "REFERENCE", "FREQUENCY", "NEXT", "STATUS"}
	rows := make([][]string, 0, len(schedules))
	for _, a := range schedules {
		status := StyleGreen.Render(string(a.Status))
		if a.Status != domain.AutoRepeatActive {
			status = Dim(string(a.Status))
		}
		rows = append(rows, []string{
			Bold(a.Name),
			a.ReferenceDoctype + " " + a.ReferenceName,
			string(a.Frequency),
			Date(&a.NextScheduleDate),
			status,
		})
	}
	return RenderBox("Auto Repeat", RenderTable(headers, rows))
}

// FormatCustomerList renders customers.
func FormatCustomerList(customers []*domain.Customer) string {
	if len(customers) == 0 {
		return Dim("No customers.")
	}
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{Bold(c.Name), OrDash(c.CustomerName), Ago(c.CreatedAt)})
	}
	return RenderBox("Customers", RenderTable([]string{"NAME", "CUSTOMER NAME", "CREATED"}, rows))
}
