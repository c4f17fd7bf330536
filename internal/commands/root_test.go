package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apex/log"

	"github.com/diogo/liveresults/internal/config"
	apierrors "github.com/diogo/liveresults/internal/errors"
)

// isolate points the config directory at a temp dir and resets global flags
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv(config.EnvHome, dir)
	t.Setenv(config.EnvEndpoint, "")
	t.Setenv(config.EnvLogFile, "")
	t.Setenv(config.EnvTheme, "")
	t.Setenv("GLAMOUR_STYLE", "notty")

	url, theme, logFile, debug := urlFlag, themeFlag, logFileFlag, debugFlag
	urlFlag, themeFlag, logFileFlag, debugFlag = "", "", "", false
	t.Cleanup(func() {
		urlFlag, themeFlag, logFileFlag, debugFlag = url, theme, logFile, debug
	})

	return dir
}

// fakeTUI records the configuration it was started with
type fakeTUI struct {
	calls       int
	configCalls int
	cfg         config.Config
	logger      log.Interface
	err         error
}

func (f *fakeTUI) Run(ctx context.Context, cfg config.Config, logger log.Interface) error {
	f.calls++
	f.cfg = cfg
	f.logger = logger
	return f.err
}

func (f *fakeTUI) RunConfig() error {
	f.configCalls++
	return f.err
}

func TestRootCommand_Help(t *testing.T) {
	cmd := rootCmd
	if cmd.Use != "liveresults" {
		t.Errorf("Expected use 'liveresults', got %s", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}

	if cmd.Args == nil {
		t.Error("Args validation should be configured")
	}
}

func TestRootCommand_Flags(t *testing.T) {
	persistent := []string{"url", "theme", "env-file", "debug"}
	for _, name := range persistent {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}

	local := []string{"log-file", "version"}
	for _, name := range local {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}

	if f := rootCmd.PersistentFlags().Lookup("url"); f.Shorthand != "u" {
		t.Errorf("url shorthand = %q, want u", f.Shorthand)
	}
	if f := rootCmd.Flags().Lookup("version"); f.Shorthand != "v" {
		t.Errorf("version shorthand = %q, want v", f.Shorthand)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := map[string]bool{"tail": false, "config": false}
	for _, sub := range rootCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		_ = rootCmd.Flags().Set("version", "false")
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(out.String(), "liveresults "+Version) {
		t.Errorf("version output = %q", out.String())
	}
}

func TestResolveConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     string
		flag    string
		want    string
		wantErr bool
	}{
		{
			name: "default",
			want: config.DefaultEndpoint,
		},
		{
			name: "config file",
			file: "ws://file.test/ws",
			want: "ws://file.test/ws",
		},
		{
			name: "env beats file",
			file: "ws://file.test/ws",
			env:  "ws://env.test/ws",
			want: "ws://env.test/ws",
		},
		{
			name: "flag beats env",
			file: "ws://file.test/ws",
			env:  "ws://env.test/ws",
			flag: "wss://flag.test/ws",
			want: "wss://flag.test/ws",
		},
		{
			name:    "invalid scheme",
			flag:    "http://flag.test/ws",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			if tt.file != "" {
				cfg := config.DefaultConfig()
				cfg.Endpoint = tt.file
				if err := config.SaveConfig(cfg); err != nil {
					t.Fatalf("SaveConfig: %v", err)
				}
			}
			if tt.env != "" {
				t.Setenv(config.EnvEndpoint, tt.env)
			}
			urlFlag = tt.flag

			cfg, err := resolveConfig()
			if tt.wantErr {
				if !apierrors.IsConfigError(err) {
					t.Errorf("expected config error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveConfig: %v", err)
			}
			if cfg.Endpoint != tt.want {
				t.Errorf("Endpoint = %s, want %s", cfg.Endpoint, tt.want)
			}
		})
	}
}

func TestResolveConfig_ThemeAndLogFlags(t *testing.T) {
	isolate(t)
	themeFlag = "nord"
	logFileFlag = "/tmp/custom.log"

	cfg, err := resolveConfig()
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.TUITheme != "nord" {
		t.Errorf("TUITheme = %s, want nord", cfg.TUITheme)
	}
	if cfg.LogFile != "/tmp/custom.log" {
		t.Errorf("LogFile = %s", cfg.LogFile)
	}
}

func TestRunView(t *testing.T) {
	dir := isolate(t)
	urlFlag = "ws://view.test/ws"
	logFileFlag = filepath.Join(dir, "logs", "view.log")

	fake := &fakeTUI{}
	if err := runView(context.Background(), &Dependencies{TUI: fake}); err != nil {
		t.Fatalf("runView: %v", err)
	}

	if fake.calls != 1 {
		t.Fatalf("TUI ran %d times, want 1", fake.calls)
	}
	if fake.cfg.Endpoint != "ws://view.test/ws" {
		t.Errorf("TUI endpoint = %s", fake.cfg.Endpoint)
	}
	if fake.logger == nil {
		t.Error("TUI should receive a logger")
	}

	data, err := os.ReadFile(logFileFlag)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "starting results view") {
		t.Errorf("log file = %q", data)
	}
}

func TestRunView_Error(t *testing.T) {
	dir := isolate(t)
	logFileFlag = filepath.Join(dir, "view.log")

	boom := errors.New("boom")
	fake := &fakeTUI{err: boom}
	if err := runView(context.Background(), &Dependencies{TUI: fake}); !errors.Is(err, boom) {
		t.Fatalf("runView error = %v, want boom", err)
	}

	data, _ := os.ReadFile(logFileFlag)
	if !strings.Contains(string(data), "results view failed") {
		t.Errorf("failure should be logged, got %q", data)
	}
}

func TestRunView_InvalidEndpoint(t *testing.T) {
	isolate(t)
	urlFlag = "not a url"

	fake := &fakeTUI{}
	err := runView(context.Background(), &Dependencies{TUI: fake})
	if !apierrors.IsConfigError(err) {
		t.Errorf("expected config error, got %v", err)
	}
	if fake.calls != 0 {
		t.Error("TUI should not start with an invalid endpoint")
	}
}
