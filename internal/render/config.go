package render

import (
	"os"

	"github.com/diogo/liveresults/internal/config"
)

// OptionsFromConfig builds render options from the loaded configuration.
// GLAMOUR_STYLE takes precedence over the config file.
func OptionsFromConfig(cfg config.Config) Options {
	opts := FromMarkdownConfig(cfg.Markdown)

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}

	return opts
}

// ApplyConfig activates the TUI theme named in cfg and returns the markdown
// options to render with. An unknown theme name keeps the current theme.
func ApplyConfig(cfg config.Config) (Options, bool) {
	ok := true
	if cfg.TUITheme != "" {
		ok = SetTUITheme(cfg.TUITheme)
	}
	return OptionsFromConfig(cfg), ok
}
