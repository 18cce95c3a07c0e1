package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var errNotInteractive = errors.New("missing arguments (run in a terminal to be prompted)")

func daybookHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateOptionalPositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func dateTimeValidator(loc *time.Location, required bool) func(string) error {
	return func(s string) error {
		if s == "" {
			if required {
				return fmt.Errorf("required")
			}
			return nil
		}
		if _, err := parseDateTime(s, loc); err != nil {
			return fmt.Errorf("use YYYY-MM-DD HH:MM")
		}
		return nil
	}
}

// taskAddFields holds the raw text of the task form. Flags pre-fill it.
type taskAddFields struct {
	title    string
	deadline string
	priority string
	estimate string
	parent   string
}

func taskAddForm(f *taskAddFields, loc *time.Location) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&f.title).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Default", ""),
					huh.NewOption("Urgent", string(domain.PriorityUrgent)),
					huh.NewOption("Important", string(domain.PriorityImportant)),
					huh.NewOption("Normal", string(domain.PriorityNormal)),
					huh.NewOption("Low", string(domain.PriorityLow)),
				).
				Value(&f.priority),
			huh.NewInput().
				Title("Deadline (YYYY-MM-DD HH:MM, blank for none)").
				Placeholder("2026-10-20 17:00").
				Value(&f.deadline).
				Validate(dateTimeValidator(loc, false)),
			huh.NewInput().
				Title("Estimated Minutes (blank for 30)").
				Placeholder("30").
				Value(&f.estimate).
				Validate(validateOptionalPositiveInt),
		),
	).WithTheme(daybookHuhTheme()).WithShowHelp(false)
}

func (f taskAddFields) request(loc *time.Location) (contract.AddTaskRequest, error) {
	req := contract.AddTaskRequest{Title: strings.TrimSpace(f.title)}
	if req.Title == "" {
		return req, fmt.Errorf("task title required")
	}
	if f.deadline != "" {
		d, err := parseDateTime(f.deadline, loc)
		if err != nil {
			return req, err
		}
		req.Deadline = &d
	}
	if f.priority != "" {
		p := domain.Priority(f.priority)
		req.Priority = &p
	}
	if f.estimate != "" {
		n, err := strconv.Atoi(f.estimate)
		if err != nil {
			return req, fmt.Errorf("estimate must be a number of minutes, got %q", f.estimate)
		}
		req.EstimatedMinutes = &n
	}
	if f.parent != "" {
		req.ParentTaskID = &f.parent
	}
	return req, nil
}

// eventAddFields holds the raw text of the event form. Flags pre-fill it.
type eventAddFields struct {
	title string
	start string
	end   string
	force bool
}

func eventAddForm(f *eventAddFields, loc *time.Location) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Event").
				Value(&f.title),
			huh.NewInput().
				Title("Start (YYYY-MM-DD HH:MM)").
				Placeholder("2026-10-20 10:00").
				Value(&f.start).
				Validate(dateTimeValidator(loc, true)),
			huh.NewInput().
				Title("End (YYYY-MM-DD HH:MM)").
				Placeholder("2026-10-20 11:00").
				Value(&f.end).
				Validate(dateTimeValidator(loc, true)),
		),
	).WithTheme(daybookHuhTheme()).WithShowHelp(false)
}

// complete reports whether the event can be scheduled without prompting.
// A blank title falls back to the service default.
func (f eventAddFields) complete() bool {
	return f.start != "" && f.end != ""
}

func (f eventAddFields) request(loc *time.Location) (contract.ScheduleEventRequest, error) {
	req := contract.ScheduleEventRequest{Title: strings.TrimSpace(f.title), Force: f.force}
	if f.start == "" || f.end == "" {
		return req, fmt.Errorf("--start and --end are required")
	}
	s, err := parseDateTime(f.start, loc)
	if err != nil {
		return req, err
	}
	e, err := parseDateTime(f.end, loc)
	if err != nil {
		return req, err
	}
	req.Start = s.Format(time.RFC3339)
	req.End = e.Format(time.RFC3339)
	return req, nil
}
