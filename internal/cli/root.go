// Package cli implements the naqd command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/naqd/internal/auth"
	"github.com/alexanderramin/naqd/internal/cli/formatter"
	"github.com/alexanderramin/naqd/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Customers   service.CustomerService
	Projects    service.ProjectService
	Tasks       service.TaskService
	Templates   service.TemplateService
	Invoices    service.InvoiceService
	Payments    service.PaymentService
	AutoRepeats service.AutoRepeatService
	Dashboards  service.DashboardService

	Tokens         *auth.TokenService
	CurrencySymbol string

	// Serve runs the HTTP API until ctx is cancelled.
	Serve func(ctx context.Context) error
}

// NewRootCmd creates the top-level "naqd" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "naqd",
		Short:         "Project templates, task chains and billing for ERP customers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newCustomerCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newTemplateCmd(app),
		newInvoiceCmd(app),
		newPaymentCmd(app),
		newRepeatCmd(app),
		newDashboardCmd(app),
		newTokenCmd(app),
	)

	return root
}

func printMessages(w io.Writer, msgs service.Messages) {
	if len(msgs) > 0 {
		fmt.Fprint(w, formatter.FormatMessages(msgs))
	}
}
