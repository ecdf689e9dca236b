package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/scout"
)

const (
	inputHeight  = 3
	statusHeight = 1
	gapHeight    = 2 // newlines between sections
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the scout TUI.
type Model struct {
	// Input is the message editor. Exported for test access.
	Input textarea.Model
	// Viewport is the scrollable conversation. Exported for test access.
	Viewport viewport.Model
	// Spinner animates the thinking indicator.
	Spinner spinner.Model

	ctx     context.Context
	session *scout.Session
	theme   scout.Theme
	styles  Styles
	changes notifier

	snap    scout.Snapshot
	replies map[scout.MessageID]*ModelMessageBlock

	// run counts sends and clears. A SendDoneMsg from an earlier run is stale.
	run      int
	err      error
	sending  bool
	clearing bool
	ready    bool
}

// New creates a TUI Model bound to session. The session should already be
// started; its current snapshot is shown on the first frame.
func New(session *scout.Session, theme scout.Theme) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask about IDOS, identity standards, access management..."
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.Focus()

	styles := NewStyles(theme)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.Thinking

	changes := newNotifier()
	session.OnChange(changes.notify)

	return Model{
		Input:   ta,
		Spinner: sp,
		ctx:     context.Background(),
		session: session,
		theme:   theme,
		styles:  styles,
		changes: changes,
		snap:    session.Snapshot(),
		replies: make(map[scout.MessageID]*ModelMessageBlock),
	}
}

// Pending reports whether a send is in flight. Input is not accepted while
// it is.
func (m Model) Pending() bool { return m.sending || m.snap.Pending }

// Snapshot returns the conversation state the model last rendered.
func (m Model) Snapshot() scout.Snapshot { return m.snap }

// Err returns the error of the last finished send or clear, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.changes.wait(), m.Spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StoreChangedMsg:
		m = m.refresh()
		return m, m.changes.wait()

	case SendDoneMsg:
		if msg.run != m.run {
			return m.refresh(), nil
		}
		m.sending = false
		m.err = msg.Err
		m = m.refresh()
		return m, m.Input.Focus()

	case ClearDoneMsg:
		m.clearing = false
		m.sending = false
		m.err = msg.Err
		m = m.refresh()
		m.Viewport.GotoTop()
		return m, m.Input.Focus()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		if m.snap.Awaiting {
			m = m.render()
		}
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	if !m.Pending() {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	vpHeight := max(msg.Height-inputHeight-statusHeight-gapHeight, 1)
	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Input.SetWidth(msg.Width)
	m = m.render()
	m.Viewport.GotoBottom()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyCtrlL:
		if m.clearing {
			return m, nil
		}
		m.clearing = true
		m.run++
		return m, clearConversation(m.ctx, m.session)

	case tea.KeyEnter:
		if !msg.Alt {
			return m.submit()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	// Rune keys go only to the editor so typing never scrolls.
	if msg.Type != tea.KeyRunes {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	if !m.Pending() {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.Pending() {
		return m, nil
	}
	text := strings.TrimSpace(m.Input.Value())
	if text == "" {
		return m, nil
	}
	m.Input.Reset()
	m.Input.Blur()
	m.sending = true
	m.run++
	m.Viewport.GotoBottom()
	return m, sendMessage(m.ctx, m.session, text, m.run)
}

// refresh reads a new snapshot and re-renders, following the bottom of the
// conversation when the view is already there.
func (m Model) refresh() Model {
	follow := m.Viewport.AtBottom()
	m.snap = m.session.Snapshot()
	m = m.render()
	if follow {
		m.Viewport.GotoBottom()
	}
	return m
}

func (m Model) render() Model {
	if !m.ready {
		return m
	}
	m.Viewport.SetContent(m.renderContent())
	return m
}

func (m Model) renderContent() string {
	blocks := m.blocks()
	var b strings.Builder
	var prev MessageBlock
	for _, block := range blocks {
		b.WriteString(blockSeparator(prev, block))
		b.WriteString(block.View(m.Viewport.Width))
		prev = block
	}
	return b.String()
}

// blocks maps the snapshot to renderable blocks. Reply blocks are reused
// across snapshots by message ID so their render cache survives streaming.
func (m Model) blocks() []MessageBlock {
	var out []MessageBlock
	seen := make(map[scout.MessageID]bool, len(m.snap.Messages))
	for _, msg := range m.snap.Messages {
		if msg.Role == scout.RoleUser {
			out = append(out, NewUserMessageBlock(msg.Text, msg.Timestamp, m.styles))
			continue
		}
		if msg.Streaming && msg.Text == "" && len(msg.Citations) == 0 {
			out = append(out, NewThinkingBlock(m.Spinner.View(), m.styles))
			continue
		}
		seen[msg.ID] = true
		reply, ok := m.replies[msg.ID]
		if !ok {
			reply = NewModelMessageBlock(msg.Timestamp, m.theme, m.styles)
			m.replies[msg.ID] = reply
		}
		reply.SetText(msg.Text)
		out = append(out, reply)
		if len(msg.Citations) > 0 {
			out = append(out, NewSourcesBlock(msg.Citations, m.styles))
		}
	}
	for id := range m.replies {
		if !seen[id] {
			delete(m.replies, id)
		}
	}
	if m.snap.Err != "" {
		out = append(out, NewErrorBlock(m.snap.Err, m.styles))
	}
	return out
}

func (m Model) statusLine() string {
	cfg := m.session.Config()
	grounding := "off"
	if cfg.SearchGrounding {
		grounding = "active"
	}
	status := m.styles.Muted.Render(fmt.Sprintf("Powered by %s • Search grounding %s", cfg.Model, grounding))
	if m.Pending() {
		status = m.styles.Thinking.Render("Researching...") + m.styles.Muted.Render(" • ") + status
	}
	hints := m.styles.Muted.Render("Enter send · Alt+Enter newline · Ctrl+L clear · Ctrl+C quit")
	gap := m.Viewport.Width - lipgloss.Width(status) - lipgloss.Width(hints)
	if gap < 2 {
		return status
	}
	return status + strings.Repeat(" ", gap) + hints
}

func sendMessage(ctx context.Context, session *scout.Session, text string, run int) tea.Cmd {
	return func() tea.Msg {
		return SendDoneMsg{Err: session.Send(ctx, text), run: run}
	}
}

func clearConversation(ctx context.Context, session *scout.Session) tea.Cmd {
	return func() tea.Msg {
		return ClearDoneMsg{Err: session.Clear(ctx)}
	}
}
