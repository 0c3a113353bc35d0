package cli

import (
	"fmt"

	"github.com/alexanderramin/naqd/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	var html bool

	cmd := &cobra.Command{
		Use:   "dashboard CUSTOMER",
		Short: "Show a customer's project and ledger summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if html {
				fmt.Fprintln(cmd.OutOrStdout(), app.Dashboards.RenderCustomerDashboard(cmd.Context(), args[0]))
				return nil
			}
			stats, err := app.Dashboards.GetCustomerDashboard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(stats, app.CurrencySymbol))
			return nil
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "Print the HTML fragment served to the customer form")
	return cmd
}
