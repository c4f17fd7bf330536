// Package commands provides CLI commands for liveresults.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diogo/liveresults/internal/config"
	"github.com/diogo/liveresults/internal/tui"
)

var (
	// Global flags
	urlFlag     string
	themeFlag   string
	logFileFlag string
	envFileFlag string
	debugFlag   bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "liveresults",
	Short: "Live viewer for streamed search results",
	Long: `liveresults connects to a results server over WebSocket and shows every
message it receives as a card: the answer, its sources and any additional
results. The view is read-only and ends when you quit or the server closes
the connection.

Examples:
  liveresults                                  Open the live view
  liveresults --url ws://results.local:8080/ws Connect to another server
  liveresults tail                             Print cards to stdout
  liveresults config set tui_theme nord        Change the color theme`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadEnvFile(envFileFlag)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check for version flag
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Fprintf(cmd.OutOrStdout(), "liveresults %s (built %s)\n", Version, BuildTime)
			return nil
		}

		return runView(cmd.Context(), NewDependencies())
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, tui.FormatError(err))
		stop()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&urlFlag, "url", "u", "", "Results server WebSocket URL (default "+config.DefaultEndpoint+")")
	rootCmd.PersistentFlags().StringVarP(&themeFlag, "theme", "t", "", "TUI color theme (tokyonight, catppuccin, nord, dracula)")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", ".env", "Load environment variables from this file if it exists")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log debug diagnostics")
	rootCmd.Flags().StringVar(&logFileFlag, "log-file", "", "Write diagnostics to this file instead of the configured one")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	// Add subcommands
	rootCmd.AddCommand(tailCmd)
	rootCmd.AddCommand(configCmd)
}

// resolveConfig loads the config file and applies the environment and flags
func resolveConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}

	if urlFlag != "" {
		cfg.Endpoint = urlFlag
	}
	if themeFlag != "" {
		cfg.TUITheme = themeFlag
	}
	if logFileFlag != "" {
		cfg.LogFile = logFileFlag
	}

	if err := config.ValidateEndpoint(cfg.Endpoint); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runView opens the results view with logging sent to the configured file
func runView(ctx context.Context, deps *Dependencies) error {
	deps = deps.orDefault()

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	logger, closer, err := newFileLogger(cfg.LogFile, debugFlag)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.WithField("endpoint", cfg.Endpoint).Info("starting results view")
	err = deps.TUI.Run(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Error("results view failed")
	}
	return err
}
