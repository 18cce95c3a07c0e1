package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App, out *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(app, out),
		newTaskListCmd(app, out),
		newTaskDoneCmd(app, out),
		newTaskRemoveCmd(app, out),
		newTaskSplitCmd(app, out),
	)
	return cmd
}

func newTaskAddCmd(app *App, out *printer) *cobra.Command {
	var (
		f        taskAddFields
		estimate int
	)
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task (prompts for the details when no title is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.title = strings.Join(args, " ")
			if cmd.Flags().Changed("estimate") {
				f.estimate = strconv.Itoa(estimate)
			}
			if strings.TrimSpace(f.title) == "" {
				if err := app.runForm(taskAddForm(&f, app.loc())); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
						return nil
					}
					return err
				}
			}
			task, err := applyTaskAdd(cmd.Context(), app, f)
			if err != nil {
				return err
			}
			return out.print(cmd, task, func() string {
				return fmt.Sprintf("%s %s %s", formatter.StyleGreen.Render("✔ Added"), formatter.TruncID(task.ID), task.Title)
			})
		},
	}
	cmd.Flags().StringVar(&f.deadline, "deadline", "", "Deadline (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "urgent, important, normal or low")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "Estimated minutes")
	cmd.Flags().StringVar(&f.parent, "parent", "", "Parent task ID")
	return cmd
}

// applyTaskAdd validates the collected fields and creates the task.
func applyTaskAdd(ctx context.Context, app *App, f taskAddFields) (*domain.Task, error) {
	req, err := f.request(app.loc())
	if err != nil {
		return nil, err
	}
	return app.Tasks.Add(ctx, req)
}

func newTaskListCmd(app *App, out *printer) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				tasks []*domain.Task
				err   error
			)
			switch status {
			case "open":
				tasks, err = app.Tasks.ListOpen(cmd.Context())
			case "done":
				tasks, err = app.Tasks.ListDone(cmd.Context())
			case "all":
				tasks, err = app.Tasks.List(cmd.Context())
			default:
				return fmt.Errorf("--status must be open, done or all, got %q", status)
			}
			if err != nil {
				return err
			}
			return out.print(cmd, tasks, func() string { return formatter.FormatTasks(tasks, app.now()) })
		},
	}
	cmd.Flags().StringVar(&status, "status", "open", "open, done or all")
	return cmd
}

func newTaskDoneCmd(app *App, out *printer) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task done (or set another status with --status)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := app.Tasks.UpdateStatus(cmd.Context(), args[0], domain.TaskStatus(status))
			if err != nil {
				return err
			}
			return out.print(cmd, task, func() string {
				return fmt.Sprintf("%s %s", formatter.StatusPill(task.Status), task.Title)
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", string(domain.TaskDone), "pending, in_progress, done or blocked")
	return cmd
}

func newTaskRemoveCmd(app *App, out *printer) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a task, or every task with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				n, err := app.Tasks.DeleteAll(cmd.Context())
				if err != nil {
					return err
				}
				return out.print(cmd, map[string]int64{"deleted": n}, func() string {
					return fmt.Sprintf("Deleted %d tasks", n)
				})
			}
			if len(args) == 0 {
				return fmt.Errorf("task id required (or --all)")
			}
			if err := app.Tasks.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return out.print(cmd, map[string]string{"deleted": args[0]}, func() string { return "Deleted " + args[0] })
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Delete every task")
	return cmd
}

func newTaskSplitCmd(app *App, out *printer) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "split <title>",
		Short: "Create a task with generated subtasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Tasks.GenerateSubtasks(cmd.Context(), strings.Join(args, " "), count)
			if err != nil {
				return err
			}
			return out.print(cmd, res, func() string { return formatter.FormatSubtasks(res) })
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 3, "Number of subtasks")
	return cmd
}
