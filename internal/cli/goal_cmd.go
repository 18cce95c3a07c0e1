package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/spf13/cobra"
)

func newGoalCmd(app *App, out *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Track longer-term goals",
	}
	cmd.AddCommand(newGoalAddCmd(app, out), newGoalListCmd(app, out), newGoalProgressCmd(app, out))
	return cmd
}

func newGoalAddCmd(app *App, out *printer) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.AddGoalRequest{Title: strings.Join(args, " ")}
			if target != "" {
				d, err := parseDate(target, app.loc())
				if err != nil {
					return err
				}
				req.TargetDate = &d
			}
			g, err := app.Goals.Add(cmd.Context(), req)
			if err != nil {
				return err
			}
			return out.print(cmd, g, func() string {
				return fmt.Sprintf("%s %s %s", formatter.StyleGreen.Render("✔ Goal"), formatter.TruncID(g.ID), g.Title)
			})
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "Target date (YYYY-MM-DD)")
	return cmd
}

func newGoalListCmd(app *App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			goals, err := app.Goals.List(cmd.Context())
			if err != nil {
				return err
			}
			return out.print(cmd, goals, func() string { return formatter.FormatGoals(goals, app.now()) })
		},
	}
}

func newGoalProgressCmd(app *App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <id> <percent>",
		Short: "Set a goal's progress (0-100)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("percent must be a number, got %q", args[1])
			}
			g, err := app.Goals.UpdateProgress(cmd.Context(), args[0], pct)
			if err != nil {
				return err
			}
			return out.print(cmd, g, func() string {
				return fmt.Sprintf("%s %s", g.Title, formatter.RenderProgress(g.Progress/100, 20))
			})
		},
	}
}
