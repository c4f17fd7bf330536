package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/apex/log"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/liveresults/internal/config"
	"github.com/diogo/liveresults/internal/feed"
	"github.com/diogo/liveresults/internal/models"
	"github.com/diogo/liveresults/internal/render"
)

// Message types for the TUI
type (
	// feedEventMsg carries one connection event into Update
	feedEventMsg feed.Event
	// feedDoneMsg is sent once the event stream is closed
	feedDoneMsg struct{}
	// copiedMsg reports the outcome of a clipboard copy
	copiedMsg struct {
		err error
	}
)

// Source is the connection the view listens to
type Source interface {
	Events() <-chan feed.Event
	Close() error
}

// ModelOption configures a Model
type ModelOption func(*Model)

// WithLogger sets the logger used for dropped frames
func WithLogger(logger log.Interface) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMarkdownOptions sets the options used for answer bodies
func WithMarkdownOptions(opts render.Options) ModelOption {
	return func(m *Model) {
		m.markdown = opts
	}
}

// WithClipboard replaces the clipboard writer
func WithClipboard(write func(string) error) ModelOption {
	return func(m *Model) {
		if write != nil {
			m.copy = write
		}
	}
}

// Model represents the results view state
type Model struct {
	source   Source
	endpoint string
	logger   log.Interface
	markdown render.Options
	copy     func(string) error

	// UI components
	viewport viewport.Model

	// State
	log       models.MessageLog
	connected bool
	streaming bool // event stream still open
	dropped   int  // malformed frames, never rendered
	notice    string
	ready     bool

	// Dimensions
	width  int
	height int
}

// NewModel creates a results view reading from source.
// The view starts disconnected and shows the banner until the source opens.
func NewModel(source Source, endpoint string, opts ...ModelOption) Model {
	m := Model{
		source:    source,
		endpoint:  endpoint,
		logger:    log.Log,
		markdown:  render.DefaultOptions(),
		copy:      clipboard.WriteAll,
		streaming: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts listening for connection events
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.source.Events())
}

// waitForEvent returns a command that blocks for the next connection event
func waitForEvent(events <-chan feed.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return feedDoneMsg{}
		}
		return feedEventMsg(ev)
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(0, 0)
			m.ready = true
		}
		m.layout()
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "y":
			answer, ok := m.log.LatestAnswer()
			if !ok {
				m.notice = "No answer to copy yet"
				return m, nil
			}
			return m, m.copyAnswer(answer)

		case "g", "home":
			m.viewport.GotoTop()
			return m, nil

		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}

	case feedEventMsg:
		m.handleEvent(feed.Event(msg))
		return m, waitForEvent(m.source.Events())

	case feedDoneMsg:
		m.streaming = false
		m.connected = false
		m.layout()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.logger.WithError(msg.err).Warn("clipboard copy failed")
			m.notice = "Copy failed"
		} else {
			m.notice = "Answer copied"
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleEvent applies one connection event to the model
func (m *Model) handleEvent(ev feed.Event) {
	switch ev.Kind {
	case feed.EventOpened:
		m.connected = true
		m.layout()

	case feed.EventReceived:
		if _, err := m.log.Ingest(ev.Data); err != nil {
			m.dropped++
			m.logger.WithError(err).WithField("bytes", len(ev.Data)).Warn("dropping malformed frame")
			return
		}
		follow := m.viewport.AtBottom()
		m.updateViewport()
		if follow {
			m.viewport.GotoBottom()
		}

	case feed.EventClosed:
		m.connected = false
		if ev.Err != nil {
			m.logger.WithError(ev.Err).Debug("connection ended with error")
		}
		m.layout()
	}
}

// copyAnswer writes answer to the clipboard off the update loop
func (m Model) copyAnswer(answer string) tea.Cmd {
	write := m.copy
	return func() tea.Msg {
		return copiedMsg{err: write(answer)}
	}
}

// Connected reports whether the connection is currently open
func (m Model) Connected() bool {
	return m.connected
}

// Messages returns the parsed messages in arrival order
func (m Model) Messages() []models.DisplayMessage {
	return m.log.Messages()
}

// Dropped returns how many malformed frames were discarded
func (m Model) Dropped() int {
	return m.dropped
}

// contentWidth is the usable width inside the outer margins
func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// layout sizes the viewport around the header, banner and status bar
func (m *Model) layout() {
	if !m.ready {
		return
	}

	headerHeight := 3 // Header panel with border
	panelFrame := 2   // Messages panel border
	statusHeight := 1 // Status bar
	bannerHeight := 0
	if !m.connected {
		bannerHeight = 1
	}

	vpHeight := m.height - headerHeight - panelFrame - statusHeight - bannerHeight
	if vpHeight < 3 {
		vpHeight = 3
	}

	m.viewport.Width = m.contentWidth() - messagesAreaStyle.GetHorizontalPadding()
	m.viewport.Height = vpHeight
}

// updateViewport refreshes the viewport content with rendered cards
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	cards := NewCardRenderer(m.viewport.Width, m.markdown)
	m.viewport.SetContent(cards.RenderAll(m.log.Messages()))
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return hintStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.contentWidth()

	// ═══════════════════════════════════════════════════════════════
	// HEADER
	// ═══════════════════════════════════════════════════════════════
	status := offlineStyle.Render("○ offline")
	if m.connected {
		status = onlineStyle.Render("● live")
	}
	headerContent := lipgloss.JoinHorizontal(
		lipgloss.Center,
		titleStyle.Render("◆ Live Results"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.endpoint),
		hintStyle.Render("  •  "),
		status,
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// ═══════════════════════════════════════════════════════════════
	// DISCONNECTED BANNER
	// ═══════════════════════════════════════════════════════════════
	if !m.connected {
		sections = append(sections, m.renderBanner(contentWidth))
	}

	// ═══════════════════════════════════════════════════════════════
	// MESSAGES AREA
	// ═══════════════════════════════════════════════════════════════
	var messagesContent string
	if m.log.Len() == 0 {
		messagesContent = m.renderWaiting()
	} else {
		messagesContent = m.viewport.View()
	}

	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)
	sections = append(sections, messagesPanel)

	// ═══════════════════════════════════════════════════════════════
	// STATUS BAR
	// ═══════════════════════════════════════════════════════════════
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderBanner renders the warning shown while not connected
func (m Model) renderBanner(width int) string {
	return DisconnectedBanner(width, !m.streaming)
}

// DisconnectedBanner renders the warning shown while not connected.
// ended marks a connection that will not come back.
func DisconnectedBanner(width int, ended bool) string {
	text := "⚠ Not connected to the results server"
	if ended {
		text += " (connection ended)"
	}
	return bannerStyle.Width(width).Render(text)
}

// renderWaiting renders the placeholder shown before the first card
func (m Model) renderWaiting() string {
	width := m.viewport.Width
	height := m.viewport.Height

	content := waitingStyle.Width(width).Render("Waiting for results...")

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"q", "Quit"},
		{"↑↓", "Scroll"},
		{"g/G", "Top/Bottom"},
		{"y", "Copy answer"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := strings.Join(items, "  │  ")
	if m.notice != "" {
		bar += "  │  " + noticeStyle.Render(m.notice)
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// Run opens a connection to cfg.Endpoint and shows the results view until
// the user quits or ctx is cancelled. The connection is released exactly
// once on every exit path.
func Run(ctx context.Context, cfg config.Config, logger log.Interface) error {
	if logger == nil {
		logger = log.Log
	}

	opts, ok := render.ApplyConfig(cfg)
	if !ok {
		logger.WithField("theme", cfg.TUITheme).Warn("unknown TUI theme, keeping default")
	}
	UpdateTheme()

	conn := feed.Open(ctx, cfg.Endpoint, feed.WithLogger(logger))
	defer conn.Close()

	m := NewModel(conn, cfg.Endpoint,
		WithLogger(logger),
		WithMarkdownOptions(opts),
	)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
