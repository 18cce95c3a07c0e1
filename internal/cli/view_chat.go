package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/daybook/internal/agent"
	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// chatReplyMsg carries the assistant's answer to one message.
type chatReplyMsg struct {
	res *agent.ChatResult
	err error
}

type chatKeyMap struct {
	Send key.Binding
	Quit key.Binding
}

func (k chatKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Send, k.Quit} }

func (k chatKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var chatKeys = chatKeyMap{
	Send: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

// chatView is a multi-turn conversation with the assistant. Each message
// runs through the same plan/execute/answer cycle as "daybook ask".
type chatView struct {
	ctx       context.Context
	assistant *agent.Assistant
	input     textinput.Model
	spin      spinner.Model
	help      help.Model

	messages []string
	busy     bool
}

func newChatView(ctx context.Context, assistant *agent.Assistant) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Placeholder = "add task write report tomorrow 17:00"

	return &chatView{
		ctx:       ctx,
		assistant: assistant,
		input:     ti,
		spin:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple)),
		help:      help.New(),
		messages: []string{
			formatter.Header("daybook chat"),
			formatter.Dim("Type a request, /plan for the last plan, /quit to leave."),
		},
	}
}

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, chatKeys.Quit):
			return v, tea.Quit
		case key.Matches(msg, chatKeys.Send):
			if v.busy {
				return v, nil
			}
			input := strings.TrimSpace(v.input.Value())
			v.input.Reset()
			if input == "" {
				return v, nil
			}
			return v.handleInput(input)
		}

	case chatReplyMsg:
		v.busy = false
		if msg.err != nil {
			v.messages = append(v.messages, formatter.StyleRed.Render("Error: "+msg.err.Error()))
			return v, nil
		}
		v.messages = append(v.messages, formatChatResult(msg.res))
		return v, nil

	case spinner.TickMsg:
		if !v.busy {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) View() string {
	var b strings.Builder
	for _, m := range v.messages {
		b.WriteString(m)
		b.WriteString("\n")
	}
	if v.busy {
		b.WriteString(v.spin.View() + formatter.Dim(" Thinking..."))
	} else {
		b.WriteString(formatter.StylePurple.Render("daybook") + formatter.Dim("> "))
		b.WriteString(v.input.View())
	}
	b.WriteString("\n")
	b.WriteString(v.help.View(chatKeys))
	return b.String()
}

func (v *chatView) handleInput(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "/quit", "/exit", "/q", "quit", "exit":
		return v, tea.Quit
	case "/plan":
		v.messages = append(v.messages, formatPlanSnapshot(v.assistant.State().Snapshot()))
		return v, nil
	}

	v.messages = append(v.messages, formatter.Dim("You: ")+input)
	v.busy = true
	return v, tea.Batch(v.spin.Tick, v.send(input))
}

func (v *chatView) send(text string) tea.Cmd {
	return func() tea.Msg {
		res, err := v.assistant.Chat(v.ctx, text)
		return chatReplyMsg{res: res, err: err}
	}
}

// formatChatResult renders the answer followed by one line per executed call.
func formatChatResult(res *agent.ChatResult) string {
	var b strings.Builder
	b.WriteString(res.Answer)
	for _, r := range res.Results {
		b.WriteString("\n")
		if r.Error != "" {
			b.WriteString(formatter.StyleRed.Render("✗ " + r.Action + ": " + r.Error))
			continue
		}
		b.WriteString(formatter.Dim("✓ " + r.Action))
	}
	return b.String()
}

func formatPlanSnapshot(snap agent.Snapshot) string {
	if snap.Current == nil {
		return formatter.Dim("No plan yet.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", formatter.Bold("Plan"), formatter.Dim(formatter.TruncID(snap.Current.ID)))
	for _, in := range snap.Current.Intents {
		fmt.Fprintf(&b, "\n  %-28s %s", in.Action, formatter.Dim(string(in.Status)))
	}
	return b.String()
}
