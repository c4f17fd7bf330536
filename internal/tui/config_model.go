package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/liveresults/internal/config"
	"github.com/diogo/liveresults/internal/render"
)

// configView represents the current view in the config menu
type configView int

const (
	viewMain configView = iota
	viewEndpointEdit
	viewThemeSelect    // Markdown theme
	viewTUIThemeSelect // TUI color theme
)

// menuItem is one row of the main settings menu
type menuItem struct {
	label string
	key   string // config key; empty for Exit
}

// Main menu rows, in display order
var menuItems = []menuItem{
	{"Endpoint", "endpoint"},
	{"Markdown Theme", "markdown.style"},
	{"TUI Theme", "tui_theme"},
	{"Emoji", "markdown.enable_emoji"},
	{"Keep Line Breaks", "markdown.preserve_newlines"},
	{"Wrap Tables", "markdown.table_wrap"},
	{"Inline Table Links", "markdown.inline_table_links"},
	{"Exit", ""},
}

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel represents the config TUI state
type ConfigModel struct {
	config     config.Config
	configPath string
	save       func(config.Config) error

	// Navigation
	view           configView
	cursor         int
	themeCursor    int // Markdown theme cursor
	tuiThemeCursor int // TUI theme cursor

	endpointInput textinput.Model

	// Feedback
	feedback        string
	feedbackErr     bool
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates a config TUI model editing cfg.
// Every change is written with save.
func NewConfigModel(cfg config.Config, save func(config.Config) error) ConfigModel {
	if save == nil {
		save = config.SaveConfig
	}
	configPath, _ := config.GetConfigPath()

	ti := textinput.New()
	ti.Placeholder = config.DefaultEndpoint
	ti.CharLimit = 512
	ti.Prompt = "› "

	return ConfigModel{
		config:          cfg,
		configPath:      configPath,
		save:            save,
		view:            viewMain,
		themeCursor:     indexOf(render.ThemeNames(), cfg.Markdown.Style, render.ThemeDark),
		tuiThemeCursor:  indexOf(render.TUIThemeNames(), cfg.TUITheme, render.TokyoNightTheme.Name),
		endpointInput:   ti,
		feedbackTimeout: 2 * time.Second,
	}
}

// indexOf returns the position of value in names, falling back to def
func indexOf(names []string, value, def string) int {
	if value == "" {
		value = def
	}
	for i, n := range names {
		if n == value {
			return i
		}
	}
	return 0
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// Config returns the settings as currently edited
func (m ConfigModel) Config() config.Config {
	return m.config
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.endpointInput.Width = m.contentWidth() - 8
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""
		m.feedbackErr = false

	case tea.KeyMsg:
		if m.view == viewEndpointEdit {
			return m.updateEndpointEdit(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc", "q":
			if m.view != viewMain {
				m.view = viewMain
			} else {
				return m, tea.Quit
			}

		case "up", "k":
			m.moveCursor(-1)

		case "down", "j":
			m.moveCursor(1)

		case "enter", " ":
			return m.handleSelect()
		}

	default:
		if m.view == viewEndpointEdit {
			var cmd tea.Cmd
			m.endpointInput, cmd = m.endpointInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// moveCursor moves the cursor of the current view by delta, wrapping around
func (m *ConfigModel) moveCursor(delta int) {
	wrap := func(cur, n int) int {
		return ((cur+delta)%n + n) % n
	}

	switch m.view {
	case viewMain:
		m.cursor = wrap(m.cursor, len(menuItems))
	case viewThemeSelect:
		m.themeCursor = wrap(m.themeCursor, len(render.ThemeNames()))
	case viewTUIThemeSelect:
		m.tuiThemeCursor = wrap(m.tuiThemeCursor, len(render.TUIThemeNames()))
	}
}

// updateEndpointEdit handles keys while the endpoint is being typed
func (m ConfigModel) updateEndpointEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.endpointInput.Blur()
		m.view = viewMain
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.endpointInput.Value())
		m.endpointInput.Blur()
		m.view = viewMain
		return m.apply("endpoint", value, "Endpoint set to "+value)
	}

	var cmd tea.Cmd
	m.endpointInput, cmd = m.endpointInput.Update(msg)
	return m, cmd
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewMain:
		item := menuItems[m.cursor]
		switch item.key {
		case "":
			return m, tea.Quit

		case "endpoint":
			m.view = viewEndpointEdit
			m.endpointInput.SetValue(m.config.Endpoint)
			m.endpointInput.CursorEnd()
			return m, m.endpointInput.Focus()

		case "markdown.style":
			m.view = viewThemeSelect
			return m, nil

		case "tui_theme":
			m.view = viewTUIThemeSelect
			return m, nil

		default:
			current, _ := config.Get(m.config, item.key)
			enabled := current != "true"
			state := "disabled"
			if enabled {
				state = "enabled"
			}
			return m.apply(item.key, strconv.FormatBool(enabled), fmt.Sprintf("%s %s", item.label, state))
		}

	case viewThemeSelect:
		theme := render.ThemeNames()[m.themeCursor]
		m.view = viewMain
		return m.apply("markdown.style", theme, "Markdown theme set to "+theme)

	case viewTUIThemeSelect:
		theme := render.TUIThemeNames()[m.tuiThemeCursor]
		m.view = viewMain

		// Apply the new TUI theme immediately
		render.SetTUITheme(theme)
		UpdateTheme()

		return m.apply("tui_theme", theme, "TUI theme set to "+theme)
	}

	return m, nil
}

// apply sets key to value, saves, and reports the outcome
func (m ConfigModel) apply(key, value, success string) (tea.Model, tea.Cmd) {
	next := m.config
	err := config.Set(&next, key, value)
	if err == nil {
		err = m.save(next)
	}

	if err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
		m.feedbackErr = true
	} else {
		m.config = next
		m.feedback = success
		m.feedbackErr = false
	}
	return m, clearFeedback(m.feedbackTimeout)
}

func (m ConfigModel) contentWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	return w
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return hintStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.contentWidth()

	// ═══════════════════════════════════════════════════════════════
	// HEADER
	// ═══════════════════════════════════════════════════════════════
	header := headerStyle.Width(contentWidth).Render(titleStyle.Render("◆ Configuration"))
	sections = append(sections, header)

	// ═══════════════════════════════════════════════════════════════
	// PATHS PANEL
	// ═══════════════════════════════════════════════════════════════
	pathsContent := lipgloss.JoinVertical(lipgloss.Left,
		sectionTitleStyle.Render("📁 Paths"),
		fmt.Sprintf("   Config:  %s", pathStyle.Render(m.configPath)),
		fmt.Sprintf("   Log:     %s", pathStyle.Render(m.config.LogFile)),
	)
	sections = append(sections, panelStyle.Width(contentWidth).Render(pathsContent))

	// ═══════════════════════════════════════════════════════════════
	// SETTINGS/MENU PANEL
	// ═══════════════════════════════════════════════════════════════
	var settingsContent string
	switch m.view {
	case viewMain:
		settingsContent = m.renderMainMenu()
	case viewEndpointEdit:
		settingsContent = m.renderEndpointEdit()
	case viewThemeSelect:
		settingsContent = m.renderThemeSelect()
	case viewTUIThemeSelect:
		settingsContent = m.renderTUIThemeSelect()
	}
	sections = append(sections, panelStyle.Width(contentWidth).Render(settingsContent))

	// ═══════════════════════════════════════════════════════════════
	// FEEDBACK MESSAGE
	// ═══════════════════════════════════════════════════════════════
	if m.feedback != "" {
		if m.feedbackErr {
			sections = append(sections, errorStyle.Render("✗ "+m.feedback))
		} else {
			sections = append(sections, feedbackStyle.Render("✓ "+m.feedback))
		}
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderMainMenu renders the main settings menu
func (m ConfigModel) renderMainMenu() string {
	labelWidth := 0
	for _, item := range menuItems {
		labelWidth = max(labelWidth, lipgloss.Width(item.label))
	}

	items := []string{sectionTitleStyle.Render("⚙ Settings"), ""}
	for i, item := range menuItems {
		if item.key == "" {
			items = append(items, "")
		}

		cursor, style := menuCursor(m.cursor == i)
		row := cursor + style.Render(item.label)
		if item.key != "" {
			value, _ := config.Get(m.config, item.key)
			row += strings.Repeat(" ", labelWidth-lipgloss.Width(item.label)+4) + m.renderValue(value)
		}
		items = append(items, row)
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderEndpointEdit renders the endpoint input
func (m ConfigModel) renderEndpointEdit() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		sectionTitleStyle.Render("🔌 Results Server"),
		"",
		m.endpointInput.View(),
		"",
		hintStyle.Render("ws:// or wss:// URL"),
	)
}

// renderThemeSelect renders the markdown theme selection sub-menu
func (m ConfigModel) renderThemeSelect() string {
	current := m.config.Markdown.Style
	if current == "" {
		current = render.ThemeDark
	}

	items := []string{sectionTitleStyle.Render("🎨 Select Markdown Theme"), ""}
	for i, theme := range render.AvailableThemes() {
		items = append(items, renderChoice(m.themeCursor == i, theme.Name, theme.Description, theme.Name == current))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderTUIThemeSelect renders the TUI color theme selection sub-menu
func (m ConfigModel) renderTUIThemeSelect() string {
	current := m.config.TUITheme
	if current == "" {
		current = render.TokyoNightTheme.Name
	}

	items := []string{sectionTitleStyle.Render("🎨 Select TUI Theme"), ""}
	for i, theme := range render.AvailableTUIThemes() {
		items = append(items, renderChoice(m.tuiThemeCursor == i, theme.Name, theme.Description, theme.Name == current))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderValue renders a setting value, styling booleans
func (m ConfigModel) renderValue(value string) string {
	switch value {
	case "true":
		return enabledStyle.Render("enabled")
	case "false":
		return disabledStyle.Render("disabled")
	default:
		return valueStyle.Render(value)
	}
}

// renderStatusBar renders the bottom status bar
func (m ConfigModel) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"↑↓", "Navigate"},
		{"Enter", "Select"},
		{"Esc", "Exit"},
	}
	switch m.view {
	case viewEndpointEdit:
		shortcuts = shortcuts[1:]
		shortcuts[0].desc = "Save"
		shortcuts[1].desc = "Cancel"
	case viewThemeSelect, viewTUIThemeSelect:
		shortcuts[2].desc = "Back"
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

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// menuCursor returns the cursor marker and label style for a row
func menuCursor(selected bool) (string, lipgloss.Style) {
	if selected {
		return cursorStyle.Render("▸ "), menuSelectedStyle
	}
	return "  ", menuItemStyle
}

// renderChoice renders one "name - description" row of a selection list
func renderChoice(selected bool, name, description string, current bool) string {
	cursor, style := menuCursor(selected)
	row := cursor + style.Render(fmt.Sprintf("%s - %s", name, description))
	if current {
		row += enabledStyle.Render(" (current)")
	}
	return row
}

// RunConfig starts the config TUI on the saved configuration
func RunConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if cfg.TUITheme != "" {
		render.SetTUITheme(cfg.TUITheme)
		UpdateTheme()
	}

	p := tea.NewProgram(
		NewConfigModel(cfg, config.SaveConfig),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
