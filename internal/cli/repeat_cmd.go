package cli

import (
	"fmt"

	"github.com/alexanderramin/naqd/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRepeatCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repeat",
		Short: "Manage auto repeat schedules",
	}
	cmd.AddCommand(newRepeatListCmd(app), newRepeatRunCmd(app), newRepeatDisableCmd(app))
	return cmd
}

func newRepeatListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List repeat schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			schedules, err := app.AutoRepeats.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAutoRepeatList(schedules))
			return nil
		},
	}
}

func newRepeatRunCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Generate projects for every due schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.AutoRepeats.RunDue(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(result.Created) == 0 && len(result.Disabled) == 0 {
				fmt.Fprintln(out, "No schedules due.")
				return nil
			}
			for _, p := range result.Created {
				fmt.Fprintf(out, "Created project %s [%s] from %s\n", p.ProjectName, p.Name, p.AutoRepeat)
			}
			printMessages(out, result.Messages)
			return nil
		},
	}
}

func newRepeatDisableCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "disable NAME",
		Short: "Stop a repeat schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.AutoRepeats.Disable(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Disabled %s\n", args[0])
			return nil
		},
	}
}
