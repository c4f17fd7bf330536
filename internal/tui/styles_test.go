package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	apierrors "github.com/diogo/liveresults/internal/errors"
	"github.com/diogo/liveresults/internal/render"
)

func TestFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
		absent   []string
	}{
		{
			name:     "nil",
			err:      nil,
			contains: nil,
		},
		{
			name:     "connection error",
			err:      apierrors.NewConnectionError("ws://x.test/ws", "connect failed", errors.New("refused")),
			contains: []string{"connect failed", "Endpoint: ws://x.test/ws", "results server is running"},
		},
		{
			name:     "wrapped connection error",
			err:      fmt.Errorf("tail: %w", apierrors.NewConnectionError("ws://y.test/ws", "", errors.New("eof"))),
			contains: []string{"tail:", "Endpoint: ws://y.test/ws"},
		},
		{
			name:     "config error",
			err:      apierrors.NewConfigError("endpoint", "scheme must be ws or wss"),
			contains: []string{"endpoint", "config show"},
			absent:   []string{"Endpoint:"},
		},
		{
			name:     "plain error",
			err:      errors.New("something else"),
			contains: []string{"something else"},
			absent:   []string{"Hint:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(FormatError(tt.err))
			if tt.err == nil && got != "" {
				t.Errorf("FormatError(nil) = %q, want empty", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("FormatError() = %q, missing %q", got, want)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(got, unwanted) {
					t.Errorf("FormatError() = %q, should not contain %q", got, unwanted)
				}
			}
		})
	}
}

func TestUpdateTheme(t *testing.T) {
	original := render.GetTUITheme().Name
	t.Cleanup(func() {
		render.SetTUITheme(original)
		UpdateTheme()
	})

	for _, name := range render.TUIThemeNames() {
		if !render.SetTUITheme(name) {
			t.Fatalf("SetTUITheme(%q) failed", name)
		}
		UpdateTheme()

		theme := render.GetTUITheme()
		if colorPrimary != theme.Primary {
			t.Errorf("%s: colorPrimary = %v, want %v", name, colorPrimary, theme.Primary)
		}
		if colorLink != theme.Link {
			t.Errorf("%s: colorLink = %v, want %v", name, colorLink, theme.Link)
		}
		if got := cardStyle.GetBorderTopForeground(); got != theme.Primary {
			t.Errorf("%s: card border = %v, want %v", name, got, theme.Primary)
		}
	}
}
