package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/alexanderramin/daybook/internal/llm"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var errNoAssistant = errors.New("assistant not configured (set [llm] enabled = true)")

func newAskCmd(app *App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [message]",
		Short: "Ask the assistant in plain language (no message opens the chat)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Assistant == nil {
				return errNoAssistant
			}
			if len(args) == 0 {
				return runChat(cmd, app)
			}
			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Thinking...")
			res, err := app.Assistant.Chat(cmd.Context(), strings.Join(args, " "))
			stop()
			if err != nil {
				return err
			}
			return out.print(cmd, res, func() string { return formatChatResult(res) })
		},
	}
}

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Assistant == nil {
				return errNoAssistant
			}
			return runChat(cmd, app)
		},
	}
}

func runChat(cmd *cobra.Command, app *App) error {
	if !app.Interactive {
		return errNotInteractive
	}
	p := tea.NewProgram(newChatView(cmd.Context(), app.Assistant),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithContext(cmd.Context()),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func newReflectCmd(app *App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "reflect",
		Short: "Have the assistant review recent activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Assistant == nil {
				return errNoAssistant
			}
			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Reflecting...")
			r, err := app.Assistant.Reflect(cmd.Context())
			stop()
			if errors.Is(err, llm.ErrDisabled) {
				return errNoAssistant
			}
			if err != nil {
				return err
			}
			return out.print(cmd, r, func() string {
				var b strings.Builder
				section := func(title string, items []string) {
					if len(items) == 0 {
						return
					}
					fmt.Fprintf(&b, "%s\n", formatter.Header(title))
					for _, it := range items {
						fmt.Fprintf(&b, "  • %s\n", it)
					}
				}
				section("Improvements", r.Improvements)
				section("Issues", r.Issues)
				section("Next actions", r.NextActions)
				if b.Len() == 0 {
					return formatter.Dim("Nothing to report.")
				}
				return strings.TrimRight(b.String(), "\n")
			})
		},
	}
}
