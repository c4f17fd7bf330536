package commands

import (
	"context"
	"io"
	"os"

	"github.com/apex/log"

	"github.com/diogo/liveresults/internal/config"
	"github.com/diogo/liveresults/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	Run(ctx context.Context, cfg config.Config, logger log.Interface) error
	RunConfig() error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// TUI is the terminal user interface.
	TUI TUIInterface

	// Out receives rendered output; Err receives diagnostics.
	Out io.Writer
	Err io.Writer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) Run(ctx context.Context, cfg config.Config, logger log.Interface) error {
	return tui.Run(ctx, cfg, logger)
}

func (d *DefaultTUI) RunConfig() error {
	return tui.RunConfig()
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI: &DefaultTUI{},
		Out: os.Stdout,
		Err: os.Stderr,
	}
}

// orDefault fills in any dependency left nil
func (d *Dependencies) orDefault() *Dependencies {
	def := NewDependencies()
	if d == nil {
		return def
	}
	out := *d
	if out.TUI == nil {
		out.TUI = def.TUI
	}
	if out.Out == nil {
		out.Out = def.Out
	}
	if out.Err == nil {
		out.Err = def.Err
	}
	return &out
}
