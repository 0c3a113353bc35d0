package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/naqd/internal/cli/formatter"
	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/repository"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectStatusCmd(app),
		newProjectCancelCmd(app),
		newProjectSyncChecklistsCmd(app),
	)
	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, customer, template, repeat, start string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project, copying tasks from a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				ProjectName:     name,
				Customer:        customer,
				ProjectTemplate: template,
				RepeatFrequency: domain.RepeatFrequency(repeat),
			}
			if start != "" {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				p.ExpectedStartDate = &startDate
			}

			msgs, err := app.Projects.Create(cmd.Context(), p)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created project %s [%s]\n", p.ProjectName, p.Name)
			if p.AutoRepeatInfo != "" {
				fmt.Fprintln(out, p.AutoRepeatInfo)
			}
			printMessages(out, msgs)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer")
	cmd.Flags().StringVar(&template, "template", "", "Project template to copy tasks from")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Repeat frequency (Daily, Weekly, Monthly, ...)")
	cmd.Flags().StringVar(&start, "start", "", "Expected start date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var customer, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context(), repository.ProjectFilter{
				Customer: customer,
				Status:   domain.ProjectStatus(status),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Only this customer's projects")
	cmd.Flags().StringVar(&status, "status", "", "Only projects in this status")
	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a project and its task chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByProject(cmd.Context(), p.Name, false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectInspect(p, tasks))
			return nil
		},
	}
}

func newProjectStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status NAME STATUS",
		Short: "Set a project's status (Open, Completed, Cancelled)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := app.Projects.SetStatus(cmd.Context(), args[0], domain.ProjectStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %s is now %s\n", args[0], args[1])
			printMessages(cmd.OutOrStdout(), msgs)
			return nil
		},
	}
}

func newProjectCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel NAME",
		Short: "Cancel a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := app.Projects.Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled project %s\n", args[0])
			printMessages(cmd.OutOrStdout(), msgs)
			return nil
		},
	}
}

func newProjectSyncChecklistsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-checklists NAME",
		Short: "Copy template checklists onto the project's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := app.Templates.SyncChecklists(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated checklists on %d task(s)\n", len(updated))
			for _, name := range updated {
				fmt.Fprintln(cmd.OutOrStdout(), "  "+name)
			}
			return nil
		},
	}
}
