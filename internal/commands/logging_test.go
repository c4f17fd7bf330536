package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/charmbracelet/x/ansi"
)

func TestLogLevel(t *testing.T) {
	if logLevel(false) != log.InfoLevel {
		t.Error("default level should be info")
	}
	if logLevel(true) != log.DebugLevel {
		t.Error("--debug should enable debug level")
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "liveresults.log")

	logger, closer, err := newFileLogger(path, false)
	if err != nil {
		t.Fatalf("newFileLogger: %v", err)
	}
	logger.WithField("endpoint", "ws://x.test/ws").Info("connected")
	logger.Debug("hidden")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := ansi.Strip(string(data))
	if !strings.Contains(out, "connected") || !strings.Contains(out, "endpoint=ws://x.test/ws") {
		t.Errorf("log file = %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug entries should be filtered at info level")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("log file mode = %o, want 600", perm)
	}
}

func TestNewFileLogger_Empty(t *testing.T) {
	logger, closer, err := newFileLogger("", true)
	if err != nil {
		t.Fatalf("newFileLogger: %v", err)
	}
	logger.Info("dropped")
	if _, ok := closer.(nopCloser); !ok {
		t.Errorf("closer = %T, want nopCloser", closer)
	}
	for i := 0; i < 2; i++ {
		if err := closer.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	}
}

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newConsoleLogger(&buf, true)

	logger.Debug("dialing")
	logger.Warn("dropping malformed frame")

	out := buf.String()
	for _, want := range []string{"dialing", "dropping malformed frame"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q: %q", want, out)
		}
	}
}
