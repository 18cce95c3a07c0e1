package cli

import (
	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPrioritizeCmd(app *App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:     "prioritize",
		Aliases: []string{"rank"},
		Short:   "Rank open tasks by score",
		RunE: func(cmd *cobra.Command, args []string) error {
			scored, err := app.Priority.Prioritize(cmd.Context())
			if err != nil {
				return err
			}
			return out.print(cmd, scored, func() string { return formatter.FormatScored(scored) })
		},
	}
}

func newNextCmd(app *App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Suggest the single best task to work on now",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Priority.SuggestNext(cmd.Context())
			if err != nil {
				return err
			}
			return out.print(cmd, s, func() string { return formatter.FormatSuggestion(s) })
		},
	}
}

func newFocusCmd(app *App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "focus",
		Short: "Show today's top three tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := app.Priority.FocusToday(cmd.Context())
			if err != nil {
				return err
			}
			return out.print(cmd, f, func() string { return formatter.FormatFocus(f) })
		},
	}
}

func newStagnantCmd(app *App, out *printer) *cobra.Command {
	var hours int
	cmd := &cobra.Command{
		Use:   "stagnant",
		Short: "List open tasks untouched for too long",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Priority.Stagnant(cmd.Context(), hours)
			if err != nil {
				return err
			}
			return out.print(cmd, r, func() string { return formatter.FormatStagnant(r) })
		},
	}
	cmd.Flags().IntVar(&hours, "hours", 48, "Age threshold in hours")
	return cmd
}

func newAutoScheduleCmd(app *App, out *printer) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "auto-schedule",
		Short: "Block time for the top tasks in the afternoon window",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Priority.AutoSchedule(cmd.Context(), count)
			if err != nil {
				return err
			}
			return out.print(cmd, r, func() string { return formatter.FormatAutoSchedule(r, app.now()) })
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 3, "Number of tasks to schedule")
	return cmd
}

func newProgressCmd(app *App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show task completion and goal progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Priority.Progress(cmd.Context())
			if err != nil {
				return err
			}
			return out.print(cmd, p, func() string { return formatter.FormatProgress(p) })
		},
	}
}
