package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/naqd/internal/cli/formatter"
	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage project tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskStatusCmd(app),
		newTaskCompleteCmd(app),
		newTaskCheckCmd(app),
	)
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var subject, description, project, after string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task, optionally after another task",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Task{
				Subject:      subject,
				Description:  description,
				Project:      project,
				PreviousTask: after,
			}
			msgs, err := app.Tasks.Create(cmd.Context(), t)
			if err != nil {
				return err
			}
			state := "visible"
			if !t.VisibleToUser {
				state = "hidden until " + t.PreviousTask + " completes"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s [%s], %s\n", t.Subject, t.Name, state)
			printMessages(cmd.OutOrStdout(), msgs)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Task subject")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&project, "project", "", "Project the task belongs to")
	cmd.Flags().StringVar(&after, "after", "", "Task that must complete first")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var visible bool

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.ListByProject(cmd.Context(), args[0], visible)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&visible, "visible", false, "Only tasks visible to users")
	return cmd
}

func newTaskStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status NAME STATUS",
		Short: "Set a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := app.Tasks.SetStatus(cmd.Context(), args[0], domain.TaskStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", args[0], args[1])
			printMessages(cmd.OutOrStdout(), msgs)
			return nil
		},
	}
}

func newTaskCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete NAME",
		Short: "Complete a task and reveal the tasks waiting on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := app.Tasks.Complete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed task %s\n", args[0])
			printMessages(cmd.OutOrStdout(), msgs)
			return nil
		},
	}
}

func newTaskCheckCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "check NAME IDX",
		Short: "Tick a checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[1])
			if err != nil || idx < 1 {
				return fmt.Errorf("invalid checklist index %q", args[1])
			}
			if err := app.Tasks.UpdateChecklistItem(cmd.Context(), args[0], idx, !undo); err != nil {
				return err
			}
			verb := "Checked"
			if undo {
				verb = "Unchecked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s item %d on %s\n", verb, idx, args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Untick instead")
	return cmd
}
