// Package tui renders the conversational front-end: a scrolling
// conversation history with per-answer source badges.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Armankhatri7/RAGAgent/internal/domain"
)

// Workflow is the TUI-facing subset of the workflow agent.
type Workflow interface {
	Run(ctx context.Context, query string) (domain.State, error)
}

const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

// message is one conversation turn. History is append-only for the
// lifetime of the session.
type message struct {
	role    string
	content string
}

// Model is the Bubble Tea model for the chat UI.
type Model struct {
	agent    Workflow
	input    textinput.Model
	viewport viewport.Model
	history  []message
	errLine  string
	status   string
	waiting  bool
	ready    bool
}

type answerMsg struct {
	state domain.State
}

type workflowErrMsg struct {
	err error
}

// New creates a chat model around the given workflow agent.
func New(agent Workflow) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the ingested PDF or the general web"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{agent: agent, input: ti, viewport: vp, status: "Ready."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and workflow completion events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + ih + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderHistory())
		return m, nil

	case answerMsg:
		m.waiting = false
		m.status = "Ready."
		m.history = append(m.history, message{role: roleAssistant, content: renderAnswer(msg.state)})
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil

	case workflowErrMsg:
		// The failed turn stays in history as the user message only;
		// the error is shown inline and never appended as an answer.
		m.waiting = false
		m.status = "Ready."
		m.errLine = errorStyle.Render("Error: " + msg.err.Error())
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			m.history = append(m.history, message{role: roleUser, content: q})
			m.errLine = ""
			m.waiting = true
			m.status = "Deciding route and processing..."
			m.input.SetValue("")
			m.viewport.SetContent(m.renderHistory())
			m.viewport.GotoBottom()
			return m, m.runWorkflow(q)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runWorkflow invokes the agent off the update loop and reports back
// with either an answer or an inline error.
func (m Model) runWorkflow(query string) tea.Cmd {
	agent := m.agent
	return func() tea.Msg {
		state, err := agent.Run(context.Background(), query)
		if err != nil {
			return workflowErrMsg{err: err}
		}
		return answerMsg{state: state}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Agentic RAG Explorer")
	status := statusStyle.Render(m.status)
	input := inputBoxStyle.Render(m.input.View())
	return header + "\n" + m.viewport.View() + "\n" + input + "\n" + status
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return "Ask something to get started."
	}
	var sb strings.Builder
	for i, msg := range m.history {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		switch msg.role {
		case roleUser:
			sb.WriteString(userStyle.Render("You: ") + msg.content)
		default:
			sb.WriteString(msg.content)
		}
	}
	if m.errLine != "" {
		sb.WriteString("\n\n" + m.errLine)
	}
	return sb.String()
}

// renderAnswer prefixes the answer with a colored badge for its source.
func renderAnswer(state domain.State) string {
	var badge string
	switch state.Source {
	case domain.SourcePDF:
		badge = pdfBadgeStyle.Render(" PDF ")
	case domain.SourceWeb:
		badge = webBadgeStyle.Render(" WEB ")
	default:
		badge = unknownBadgeStyle.Render(" ? ")
	}
	return badge + " " + state.Answer
}

var (
	headerStyle       = lipgloss.NewStyle().Bold(true)
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	inputBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle         = lipgloss.NewStyle().Bold(true)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	pdfBadgeStyle     = lipgloss.NewStyle().Background(lipgloss.Color("#dcfce7")).Foreground(lipgloss.Color("#166534")).Bold(true)
	webBadgeStyle     = lipgloss.NewStyle().Background(lipgloss.Color("#dbeafe")).Foreground(lipgloss.Color("#1e40af")).Bold(true)
	unknownBadgeStyle = lipgloss.NewStyle().Background(lipgloss.Color("8")).Foreground(lipgloss.Color("15")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
