package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newTokenCmd(app *App) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Tokens == nil {
				return errors.New("auth.jwt_secret is not configured")
			}
			token, err := app.Tokens.GenerateToken(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "naqd", "Token subject")
	return cmd
}
