package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newEventCmd(app *App, out *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage calendar events",
	}
	cmd.AddCommand(
		newEventAddCmd(app, out),
		newEventListCmd(app, out),
		newEventRecurringCmd(app, out),
		newEventShiftCmd(app, out),
		newEventRemoveCmd(app, out),
	)
	return cmd
}

func newEventAddCmd(app *App, out *printer) *cobra.Command {
	var f eventAddFields
	cmd := &cobra.Command{
		Use:   "add [title] --start <time> --end <time>",
		Short: "Schedule an event, checking for conflicts (prompts when times are missing)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.title = strings.Join(args, " ")
			if !f.complete() {
				if err := app.runForm(eventAddForm(&f, app.loc())); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
						return nil
					}
					return err
				}
			}
			req, err := f.request(app.loc())
			if err != nil {
				return err
			}
			res, err := app.Events.Schedule(cmd.Context(), req)
			if err != nil {
				return err
			}
			return out.print(cmd, res, func() string { return formatter.FormatScheduled(res, app.now()) })
		},
	}
	cmd.Flags().StringVar(&f.start, "start", "", "Start (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&f.end, "end", "", "End (YYYY-MM-DD HH:MM)")
	cmd.Flags().BoolVar(&f.force, "force", false, "Schedule even when it overlaps")
	return cmd
}

func newEventListCmd(app *App, out *printer) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, optionally for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDate(date, app.loc())
			if err != nil {
				return err
			}
			var events []*domain.Event
			if day.IsZero() {
				events, err = app.Events.List(cmd.Context())
			} else {
				events, err = app.Events.ListForDay(cmd.Context(), day)
			}
			if err != nil {
				return err
			}
			return out.print(cmd, events, func() string { return formatter.FormatEvents(events, app.now()) })
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD)")
	return cmd
}

var weekdays = map[string]int{
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

// parseWeekday accepts 0-6 (Sunday first) or an English day name.
func parseWeekday(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 && s[0] >= '0' && s[0] <= '6' {
		return int(s[0] - '0'), nil
	}
	if len(s) >= 3 {
		if d, ok := weekdays[s[:3]]; ok {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

func newEventRecurringCmd(app *App, out *printer) *cobra.Command {
	var (
		start, end, title string
		weeks             int
	)
	cmd := &cobra.Command{
		Use:   "recurring <weekday> --start HH:MM --end HH:MM",
		Short: "Create a weekly event for the next few weeks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseWeekday(args[0])
			if err != nil {
				return err
			}
			req := contract.NewRecurringEventRequest(day, start, end)
			req.Weeks = weeks
			if title != "" {
				req.Title = title
			}
			res, err := app.Events.ScheduleRecurring(cmd.Context(), req)
			if err != nil {
				return err
			}
			return out.print(cmd, res, func() string { return formatter.FormatRecurring(res, app.now()) })
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "Start clock (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End clock (HH:MM)")
	cmd.Flags().StringVar(&title, "title", "", "Event title")
	cmd.Flags().IntVar(&weeks, "weeks", 4, "Number of weeks")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newEventShiftCmd(app *App, out *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift [--] <minutes>",
		Short: "Move the next upcoming event; use -- before negative minutes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("minutes must be an integer, got %q", args[0])
			}
			res, err := app.Events.ShiftNext(cmd.Context(), minutes)
			if err != nil {
				return err
			}
			return out.print(cmd, res, func() string { return formatter.FormatShift(res, app.now()) })
		},
	}
	return cmd
}

func newEventRemoveCmd(app *App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Events.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return out.print(cmd, map[string]string{"deleted": args[0]}, func() string { return "Deleted " + args[0] })
		},
	}
}
