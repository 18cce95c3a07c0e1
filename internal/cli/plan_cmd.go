package cli

import (
	"time"

	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// dayOrToday parses --date, defaulting to today in the app's zone.
func dayOrToday(app *App, date string) (time.Time, error) {
	day, err := parseDate(date, app.loc())
	if err != nil {
		return time.Time{}, err
	}
	if day.IsZero() {
		return app.now(), nil
	}
	return day, nil
}

func newPlanCmd(app *App, out *printer) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build the daily plan: free slots, allocations and reschedule hints",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dayOrToday(app, date)
			if err != nil {
				return err
			}
			summary, err := app.Planning.GenerateDailySummary(cmd.Context(), day)
			if err != nil {
				return err
			}
			return out.print(cmd, summary, func() string { return formatter.FormatDailySummary(summary, app.now()) })
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to plan (YYYY-MM-DD, default today)")
	return cmd
}

func newEvalCmd(app *App, out *printer) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate how much of the day's work got done",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dayOrToday(app, date)
			if err != nil {
				return err
			}
			ev, err := app.Planning.EvaluateDay(cmd.Context(), day)
			if err != nil {
				return err
			}
			return out.print(cmd, ev, func() string { return formatter.FormatEvaluation(ev) })
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to evaluate (YYYY-MM-DD, default today)")
	return cmd
}

func newTrendCmd(app *App, out *printer) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show the completion ratio over recent days",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := app.Planning.Trend(cmd.Context(), days)
			if err != nil {
				return err
			}
			return out.print(cmd, tr, func() string { return formatter.FormatTrend(tr) })
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "Number of days")
	return cmd
}
