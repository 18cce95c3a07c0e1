package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/daybook/internal/agent"
	"github.com/alexanderramin/daybook/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the services the commands run against.
type App struct {
	Tasks     service.TaskService
	Events    service.EventService
	Goals     service.GoalService
	Planning  service.PlanningService
	Priority  service.PriorityService
	Assistant *agent.Assistant
	Location  *time.Location
	Now       func() time.Time
	Logger    *slog.Logger

	// HTTP is the API handler served by "serve" on Addr.
	HTTP      http.Handler
	Addr      string
	JWTSecret string

	// Interactive enables prompts for missing arguments and the chat view.
	Interactive bool
	// RunForm runs a prompt form; nil means form.Run.
	RunForm func(*huh.Form) error

	// Close releases the database; may be nil.
	Close func() error
}

func (a *App) runForm(form *huh.Form) error {
	if !a.Interactive {
		return errNotInteractive
	}
	if a.RunForm != nil {
		return a.RunForm(form)
	}
	return form.Run()
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now().In(a.loc())
	}
	return a.Now().In(a.loc())
}

func (a *App) loc() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}

// Loader builds an App from the config file at path ("" for the default).
type Loader func(configPath string) (*App, error)

// Globals are the flags shared by every command.
type Globals struct {
	ConfigPath string
	JSON       bool
}

func globalFlags(g *Globals) *pflag.FlagSet {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.StringVar(&g.ConfigPath, "config", "", "Path to config.toml (default ~/.config/daybook/config.toml)")
	fs.BoolVar(&g.JSON, "json", false, "Print raw JSON instead of formatted output")
	return fs
}

// NewRootCmd creates the top-level "daybook" command. The App is loaded
// once flags are parsed and closed after the command finishes.
func NewRootCmd(load Loader) *cobra.Command {
	g := &Globals{}
	app := &App{}

	root := &cobra.Command{
		Use:           "daybook",
		Short:         "Personal day planner and task prioritizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := load(g.ConfigPath)
			if err != nil {
				return err
			}
			*app = *loaded
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.Close != nil {
				return app.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().AddFlagSet(globalFlags(g))

	out := &printer{g: g}
	root.AddCommand(
		newServeCmd(app),
		newPlanCmd(app, out),
		newEvalCmd(app, out),
		newTrendCmd(app, out),
		newPrioritizeCmd(app, out),
		newNextCmd(app, out),
		newFocusCmd(app, out),
		newStagnantCmd(app, out),
		newAutoScheduleCmd(app, out),
		newProgressCmd(app, out),
		newTaskCmd(app, out),
		newEventCmd(app, out),
		newGoalCmd(app, out),
		newAskCmd(app, out),
		newChatCmd(app),
		newReflectCmd(app, out),
		newTokenCmd(app),
	)
	return root
}

// printer writes either the formatted text or the raw value as JSON.
type printer struct {
	g *Globals
}

func (p *printer) print(cmd *cobra.Command, v any, formatted func() string) error {
	w := cmd.OutOrStdout()
	if p.g.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, formatted())
	return err
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD, got %q", s)
	}
	return t, nil
}

// parseDateTime accepts "2006-01-02 15:04", "2006-01-02T15:04" or RFC3339.
func parseDateTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (use YYYY-MM-DD HH:MM)", s)
}

