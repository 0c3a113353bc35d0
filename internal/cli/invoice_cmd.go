package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/naqd/internal/cli/formatter"
	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/repository"
	"github.com/spf13/cobra"
)

func newInvoiceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Manage sales invoices",
	}
	cmd.AddCommand(
		newInvoiceListCmd(app),
		newInvoiceShowCmd(app),
		newInvoiceSetItemsCmd(app),
		newInvoiceSubmitCmd(app),
		newInvoiceCancelCmd(app),
	)
	return cmd
}

func parseDocStatus(s string) (*domain.DocStatus, error) {
	if s == "" {
		return nil, nil
	}
	for _, status := range []domain.DocStatus{domain.DocDraft, domain.DocSubmitted, domain.DocCancelled} {
		if strings.EqualFold(s, status.String()) || s == strconv.Itoa(int(status)) {
			return &status, nil
		}
	}
	return nil, fmt.Errorf("invalid docstatus %q (want Draft, Submitted or Cancelled)", s)
}

// parseItem reads CODE:QTY:RATE.
func parseItem(s string) (domain.SalesInvoiceItem, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return domain.SalesInvoiceItem{}, fmt.Errorf("invalid item %q (want CODE:QTY:RATE)", s)
	}
	qty, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return domain.SalesInvoiceItem{}, fmt.Errorf("invalid quantity in %q: %w", s, err)
	}
	rate, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return domain.SalesInvoiceItem{}, fmt.Errorf("invalid rate in %q: %w", s, err)
	}
	return domain.SalesInvoiceItem{ItemCode: parts[0], Qty: qty, Rate: rate}, nil
}

func newInvoiceListCmd(app *App) *cobra.Command {
	var customer, project, docstatus string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sales invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parseDocStatus(docstatus)
			if err != nil {
				return err
			}
			invoices, err := app.Invoices.List(cmd.Context(), repository.InvoiceFilter{
				Customer:  customer,
				Project:   project,
				DocStatus: status,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatInvoiceList(invoices, app.CurrencySymbol))
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Only this customer's invoices")
	cmd.Flags().StringVar(&project, "project", "", "Only invoices for this project")
	cmd.Flags().StringVar(&docstatus, "status", "", "Draft, Submitted or Cancelled")
	return cmd
}

func newInvoiceShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a sales invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := app.Invoices.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatInvoice(inv, app.CurrencySymbol))
			return nil
		},
	}
}

func newInvoiceSetItemsCmd(app *App) *cobra.Command {
	var raw []string

	cmd := &cobra.Command{
		Use:   "set-items NAME",
		Short: "Replace the line items of a draft invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := make([]domain.SalesInvoiceItem, 0, len(raw))
			for _, s := range raw {
				item, err := parseItem(s)
				if err != nil {
					return err
				}
				items = append(items, item)
			}
			inv, err := app.Invoices.UpdateItems(cmd.Context(), args[0], items)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatInvoice(inv, app.CurrencySymbol))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&raw, "item", nil, "Line item as CODE:QTY:RATE (repeatable)")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newInvoiceSubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit NAME",
		Short: "Submit a draft invoice and post it to the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := app.Invoices.Submit(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted %s for %s\n", inv.Name, app.CurrencySymbol+formatAmount(inv.GrandTotal))
			return nil
		},
	}
}

func newInvoiceCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel NAME",
		Short: "Cancel a submitted invoice and reverse its ledger entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := app.Invoices.Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled %s\n", inv.Name)
			return nil
		},
	}
}
