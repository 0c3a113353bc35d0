package cli

import (
	"fmt"

	"github.com/alexanderramin/naqd/internal/cli/formatter"
	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/spf13/cobra"
)

func newCustomerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}
	cmd.AddCommand(newCustomerAddCmd(app), newCustomerListCmd(app))
	return cmd
}

func newCustomerAddCmd(app *App) *cobra.Command {
	var name, customerName string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Customer{Name: name, CustomerName: customerName}
			if err := app.Customers.Create(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created customer %s\n", c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Customer document name")
	cmd.Flags().StringVar(&customerName, "customer-name", "", "Display name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCustomerListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, err := app.Customers.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCustomerList(customers))
			return nil
		},
	}
}
