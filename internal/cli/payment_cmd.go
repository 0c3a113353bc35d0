package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/naqd/internal/dashboard"
	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/spf13/cobra"
)

func formatAmount(v float64) string {
	return dashboard.FormatAmount(v)
}

func newPaymentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Record customer payments",
	}
	cmd.AddCommand(newPaymentAddCmd(app))
	return cmd
}

func newPaymentAddCmd(app *App) *cobra.Command {
	var customer, reference, date string
	var amount float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a payment received from a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Payment{Customer: customer, Amount: amount, Reference: reference}
			if date != "" {
				posting, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid posting date %q: %w", date, err)
				}
				p.PostingDate = posting
			}
			if err := app.Payments.RecordPayment(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded payment %s of %s from %s\n",
				p.Name, app.CurrencySymbol+formatAmount(p.Amount), p.Customer)
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Paying customer")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount received")
	cmd.Flags().StringVar(&reference, "reference", "", "Bank or cheque reference")
	cmd.Flags().StringVar(&date, "date", "", "Posting date (YYYY-MM-DD), default today")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
