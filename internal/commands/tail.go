package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/diogo/liveresults/internal/feed"
	"github.com/diogo/liveresults/internal/models"
	"github.com/diogo/liveresults/internal/render"
	"github.com/diogo/liveresults/internal/tui"
)

// defaultWidth is used when stdout is not a terminal
const defaultWidth = 80

// NewTailCmd creates a new tail command
func NewTailCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "tail",
		Short: "Print results to stdout as they arrive",
		Long: `Connect to the results server and print each message as a card on
stdout. Diagnostics go to stderr. The command exits when the server closes
the connection or on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTail(cmd.Context(), deps.orDefault())
		},
	}
}

// Backward compatibility global
var tailCmd = NewTailCmd(nil)

func runTail(ctx context.Context, deps *Dependencies) error {
	logger := newConsoleLogger(deps.Err, debugFlag)

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	opts, ok := render.ApplyConfig(cfg)
	if !ok {
		logger.WithField("theme", cfg.TUITheme).Warn("unknown TUI theme, keeping default")
	}
	tui.UpdateTheme()

	width := getTerminalWidth(deps.Out)
	cards := tui.NewCardRenderer(width, opts)

	conn := feed.Open(ctx, cfg.Endpoint, feed.WithLogger(logger))
	defer conn.Close()

	return tailEvents(conn.Events(), cards, width, deps.Out, logger)
}

// tailEvents prints one card per valid frame until the stream ends.
// The disconnection banner is printed whenever the connection closes; one
// that never opened is also reported as an error.
func tailEvents(events <-chan feed.Event, cards tui.CardRenderer, width int, out io.Writer, logger log.Interface) error {
	var messages models.MessageLog
	opened := false

	for ev := range events {
		switch ev.Kind {
		case feed.EventOpened:
			opened = true

		case feed.EventReceived:
			msg, err := messages.Ingest(ev.Data)
			if err != nil {
				logger.WithError(err).WithField("bytes", len(ev.Data)).Warn("dropping malformed frame")
				continue
			}
			fmt.Fprintln(out, cards.Render(messages.Len()-1, msg))
			fmt.Fprintln(out)

		case feed.EventClosed:
			fmt.Fprintln(out, tui.DisconnectedBanner(width, true))
			if !opened && ev.Err != nil {
				return ev.Err
			}
			return nil
		}
	}

	// Released before the server closed, e.g. on interrupt
	return nil
}

// getTerminalWidth returns the terminal width of w or a default value
func getTerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
