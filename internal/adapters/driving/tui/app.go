package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

// focusArea identifies which panel receives key input.
type focusArea int

const (
	focusChat focusArea = iota
	focusReport
)

// replyMsg carries the assistant's reply for one turn.
type replyMsg struct {
	text string
	err  error
}

// refreshMsg signals that the poller replaced the snapshot.
type refreshMsg struct{}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.
				BorderForeground(lipgloss.Color("62"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("35"))

	assistantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// App is the TUI application. It implements tea.Model.
type App struct {
	ports   *Ports
	ctx     context.Context
	refresh <-chan struct{}

	input      textinput.Model
	chatView   viewport.Model
	reportView viewport.Model

	transcript []domain.ChatMessage
	focus      focusArea
	waiting    bool
	err        error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	input := textinput.New()
	input.Placeholder = "Ask about the estate..."
	input.Focus()

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		input:      input,
		transcript: ports.Chat.History(),
	}, nil
}

// WithContext sets the context used for chat turns.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithRefresh sets the channel signalled after each snapshot replacement.
func (a *App) WithRefresh(ch <-chan struct{}) *App {
	a.refresh = ch
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.waitRefresh())
}

// waitRefresh blocks on the refresh channel and converts signals to
// messages. Re-armed after every refreshMsg.
func (a *App) waitRefresh() tea.Cmd {
	if a.refresh == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-a.ctx.Done():
			return nil
		case _, ok := <-a.refresh:
			if !ok {
				return nil
			}
			return refreshMsg{}
		}
	}
}

// send runs one chat turn off the UI goroutine.
func (a *App) send(question string) tea.Cmd {
	return func() tea.Msg {
		reply, err := a.ports.Chat.Send(a.ctx, question)
		return replyMsg{text: reply, err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case replyMsg:
		a.waiting = false
		a.err = msg.err
		if msg.err == nil {
			a.transcript = append(a.transcript, domain.ChatMessage{
				Role:    domain.RoleAssistant,
				Content: msg.text,
			})
		}
		a.chatView.SetContent(a.renderTranscript())
		a.chatView.GotoBottom()
		// Tool rounds may have changed the report or notes.
		a.reportView.SetContent(reportContent(a.ports))
		return a, nil

	case refreshMsg:
		a.reportView.SetContent(reportContent(a.ports))
		return a, a.waitRefresh()
	}

	return a, a.updateFocused(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "tab":
		if a.focus == focusChat {
			a.focus = focusReport
			a.input.Blur()
		} else {
			a.focus = focusChat
			a.input.Focus()
		}
		return a, nil

	case "ctrl+n":
		if a.waiting {
			return a, nil
		}
		return a, a.submit(a.ports.Chat.InterviewPrompt())

	case "enter":
		if a.focus != focusChat || a.waiting {
			return a, nil
		}
		question := strings.TrimSpace(a.input.Value())
		if question == "" {
			return a, nil
		}
		a.input.Reset()
		return a, a.submit(question)
	}

	return a, a.updateFocused(msg)
}

// submit records the user message and starts the turn.
func (a *App) submit(question string) tea.Cmd {
	a.transcript = append(a.transcript, domain.ChatMessage{
		Role:    domain.RoleUser,
		Content: question,
	})
	a.waiting = true
	a.err = nil
	a.chatView.SetContent(a.renderTranscript())
	a.chatView.GotoBottom()
	return a.send(question)
}

// updateFocused routes remaining messages to the focused component.
func (a *App) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if a.focus == focusChat {
		a.input, cmd = a.input.Update(msg)
		return cmd
	}
	a.reportView, cmd = a.reportView.Update(msg)
	return cmd
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	// Two columns, minus borders and the input/status rows.
	panelWidth := width/2 - 4
	panelHeight := height - 7
	if panelWidth < 10 {
		panelWidth = 10
	}
	if panelHeight < 3 {
		panelHeight = 3
	}

	if !a.ready {
		a.chatView = viewport.New(panelWidth, panelHeight)
		a.reportView = viewport.New(panelWidth, panelHeight)
		a.ready = true
	} else {
		a.chatView.Width = panelWidth
		a.chatView.Height = panelHeight
		a.reportView.Width = panelWidth
		a.reportView.Height = panelHeight
	}

	a.input.Width = width - 6
	a.chatView.SetContent(a.renderTranscript())
	a.chatView.GotoBottom()
	a.reportView.SetContent(reportContent(a.ports))
}

func (a *App) renderTranscript() string {
	if len(a.transcript) == 0 {
		return "Ask anything about the estate, or press Ctrl+N to start the interview."
	}

	wrap := lipgloss.NewStyle().Width(a.chatView.Width)
	var b strings.Builder
	for _, m := range a.transcript {
		label := assistantStyle.Render("Assistant")
		if m.Role == domain.RoleUser {
			label = userStyle.Render("You")
		}
		b.WriteString(label + "\n")
		b.WriteString(wrap.Render(m.Content) + "\n\n")
	}
	return b.String()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	chatStyle, reportStyle := focusedPanelStyle, panelStyle
	if a.focus == focusReport {
		chatStyle, reportStyle = panelStyle, focusedPanelStyle
	}

	chatPanel := chatStyle.Render(
		titleStyle.Render("Chat") + "\n" + a.chatView.View())
	reportPanel := reportStyle.Render(
		titleStyle.Render("Report") + "\n" + a.reportView.View())

	status := "Tab: switch panel · Ctrl+N: interview · Ctrl+C: quit"
	if a.waiting {
		status = "Thinking..."
	}
	if a.err != nil {
		status = errorStyle.Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, reportPanel),
		a.input.View(),
		statusStyle.Render(status),
	)
}
