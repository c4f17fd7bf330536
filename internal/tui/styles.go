// Package tui provides the terminal results view for liveresults.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/liveresults/internal/errors"
	"github.com/diogo/liveresults/internal/render"
)

// Color variables (updated from theme)
var (
	colorBorder lipgloss.Color

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorLink      lipgloss.Color
	colorSuccess   lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	onlineStyle  lipgloss.Style
	offlineStyle lipgloss.Style

	// Disconnection banner
	bannerStyle lipgloss.Style

	messagesAreaStyle lipgloss.Style
	waitingStyle      lipgloss.Style

	// Result cards
	cardStyle         lipgloss.Style
	cardLabelStyle    lipgloss.Style
	sectionTitleStyle lipgloss.Style
	bulletStyle       lipgloss.Style
	linkStyle         lipgloss.Style
	resultStyle       lipgloss.Style
	resultTitleStyle  lipgloss.Style
	resultDateStyle   lipgloss.Style
	serverErrorStyle  lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	noticeStyle     lipgloss.Style

	// Config menu
	panelStyle        lipgloss.Style
	pathStyle         lipgloss.Style
	menuItemStyle     lipgloss.Style
	menuSelectedStyle lipgloss.Style
	cursorStyle       lipgloss.Style
	valueStyle        lipgloss.Style
	enabledStyle      lipgloss.Style
	disabledStyle     lipgloss.Style
	feedbackStyle     lipgloss.Style

	errorStyle lipgloss.Style
)

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorLink = theme.Link
	colorSuccess = theme.Success
	colorWarning = theme.Warning
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	onlineStyle = lipgloss.NewStyle().
		Foreground(colorSuccess).
		Bold(true)

	offlineStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	bannerStyle = lipgloss.NewStyle().
		Foreground(colorWarning).
		Bold(true).
		PaddingLeft(1)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	waitingStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true).
		Align(lipgloss.Center)

	cardStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1)

	cardLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	sectionTitleStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	bulletStyle = lipgloss.NewStyle().
		Foreground(colorSecondary)

	linkStyle = lipgloss.NewStyle().
		Foreground(colorLink).
		Underline(true)

	resultStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(colorAccent).
		PaddingLeft(1)

	resultTitleStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true).
		Underline(true)

	resultDateStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	serverErrorStyle = lipgloss.NewStyle().
		Foreground(colorError)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Italic(true)

	panelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	pathStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	menuItemStyle = lipgloss.NewStyle().
		Foreground(colorText)

	menuSelectedStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	cursorStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	valueStyle = lipgloss.NewStyle().
		Foreground(colorSecondary)

	enabledStyle = lipgloss.NewStyle().
		Foreground(colorSuccess)

	disabledStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	feedbackStyle = lipgloss.NewStyle().
		Foreground(colorSuccess).
		PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)
}

// FormatError returns a styled error message with additional context.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", err)))

	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	switch {
	case errors.IsConnectionError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check that the results server is running, or pass --url"))
	case errors.IsConfigError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Run 'liveresults config show' to see valid keys"))
	}

	return sb.String()
}
