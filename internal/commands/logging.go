package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/text"
)

// logLevel returns the level for the --debug flag
func logLevel(debug bool) log.Level {
	if debug {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// nopCloser is returned when there is no log file to release
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newFileLogger opens path for appending and logs to it with the text
// handler. The TUI owns the terminal, so its diagnostics go to a file.
// The returned closer releases the file.
func newFileLogger(path string, debug bool) (*log.Logger, io.Closer, error) {
	if path == "" {
		return &log.Logger{Handler: discard.New(), Level: logLevel(debug)}, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &log.Logger{Handler: text.New(f), Level: logLevel(debug)}, f, nil
}

// newConsoleLogger logs to w with the cli handler
func newConsoleLogger(w io.Writer, debug bool) *log.Logger {
	return &log.Logger{Handler: cli.New(w), Level: logLevel(debug)}
}
