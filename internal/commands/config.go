package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/liveresults/internal/config"
	apierrors "github.com/diogo/liveresults/internal/errors"
	"github.com/diogo/liveresults/internal/render"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: `Show or change liveresults settings. Without a subcommand an
interactive menu opens. Settings are stored as JSON in the config directory
(~/.liveresults, or $LIVERESULTS_HOME). Environment variables and flags take
precedence over the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.orDefault().TUI.RunConfig()
		},
	}

	cmd.AddCommand(newConfigShowCmd(deps))
	cmd.AddCommand(newConfigGetCmd(deps))
	cmd.AddCommand(newConfigSetCmd(deps))
	cmd.AddCommand(newConfigThemesCmd(deps))

	return cmd
}

// Backward compatibility global
var configCmd = NewConfigCmd(nil)

func newConfigShowCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := deps.orDefault().Out

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			fmt.Fprintf(out, "# %s\n%s\n", path, data)
			return nil
		},
	}
}

func newConfigGetCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Print one setting",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			value, err := config.Get(cfg, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(deps.orDefault().Out, value)
			return nil
		},
	}
}

func newConfigSetCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change one setting",
		Long:      "Change one setting and save it.\n\nKeys:\n  " + strings.Join(config.Keys(), "\n  "),
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := deps.orDefault().Out
			key, value := args[0], args[1]

			if key == "tui_theme" {
				if _, ok := render.GetTUIThemeByName(value); !ok {
					return apierrors.NewConfigError(key,
						"unknown theme, expected one of "+strings.Join(render.TUIThemeNames(), ", "))
				}
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			if err := config.Set(&cfg, key, value); err != nil {
				return err
			}

			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Fprintf(out, "✓ %s = %s\n", key, value)
			return nil
		},
	}
}

func newConfigThemesCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List TUI themes and markdown styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := deps.orDefault().Out

			fmt.Fprintln(out, "TUI themes (tui_theme):")
			for _, theme := range render.AvailableTUIThemes() {
				fmt.Fprintf(out, "  %-12s %s\n", theme.Name, theme.Description)
			}

			fmt.Fprintln(out, "\nMarkdown styles (markdown.style):")
			for _, theme := range render.AvailableThemes() {
				fmt.Fprintf(out, "  %-12s %s\n", theme.Name, theme.Description)
			}
			return nil
		},
	}
}
