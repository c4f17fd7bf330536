package render

import "github.com/charmbracelet/glamour/styles"

// Markdown style names accepted in the config file
const (
	ThemeDark       = "dark"
	ThemeLight      = "light"
	ThemeTokyoNight = "tokyonight"
	ThemeDracula    = "dracula"
	ThemePink       = "pink"
	ThemeASCII      = "ascii"
	ThemeNoTTY      = "notty"
)

// minWidth keeps glamour from wrapping every word on narrow terminals
const minWidth = 20

// ResolveStyle maps a configured style to the name glamour expects.
// Unknown names are passed through so that a JSON style path still works.
func ResolveStyle(style string) string {
	switch style {
	case "":
		return styles.DarkStyle
	case ThemeTokyoNight:
		return styles.TokyoNightStyle
	default:
		return style
	}
}

// IsBuiltinStyle reports whether style names one of glamour's styles.
func IsBuiltinStyle(style string) bool {
	_, ok := styles.DefaultStyles[ResolveStyle(style)]
	return ok
}

// ThemeInfo describes a markdown style for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes lists the markdown styles that need no file.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemeDark, Description: "Dark theme (default)"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: ThemeTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: ThemeDracula, Description: "Dracula color scheme"},
		{Name: ThemePink, Description: "Pink accents"},
		{Name: ThemeASCII, Description: "ASCII-only output"},
		{Name: ThemeNoTTY, Description: "Plain text (no styling)"},
	}
}

// ThemeNames returns just the markdown style names.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
