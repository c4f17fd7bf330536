// Package config handles configuration for liveresults.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	apierrors "github.com/diogo/liveresults/internal/errors"
)

// DefaultEndpoint is the results server the view connects to unless overridden
const DefaultEndpoint = "ws://localhost:8080/ws"

// Environment variables that override the config file
const (
	EnvEndpoint = "LIVERESULTS_ENDPOINT"
	EnvLogFile  = "LIVERESULTS_LOG_FILE"
	EnvHome     = "LIVERESULTS_HOME"
	EnvTheme    = "LIVERESULTS_THEME"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // glamour style name or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	// Endpoint is the WebSocket address of the results server.
	Endpoint string `json:"endpoint"`
	// LogFile receives diagnostic logs while the TUI owns the terminal.
	LogFile  string         `json:"log_file,omitempty"`
	TUITheme string         `json:"tui_theme,omitempty"`
	Markdown MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	cfg := Config{
		Endpoint: DefaultEndpoint,
		TUITheme: "tokyonight",
		Markdown: DefaultMarkdownConfig(),
	}
	if dir, err := GetConfigDir(); err == nil {
		cfg.LogFile = filepath.Join(dir, "liveresults.log")
	}
	return cfg
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvHome)); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".liveresults"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadEnvFile loads a .env file into the process environment.
// A missing file is not an error.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadConfig loads the configuration from disk and applies environment overrides
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ApplyEnv(cfg), nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	return ApplyEnv(cfg), nil
}

// ApplyEnv returns cfg with environment variable overrides applied
func ApplyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.TUITheme = v
	}
	return cfg
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ValidateEndpoint checks that endpoint is an absolute ws:// or wss:// URL
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return apierrors.NewConfigError("endpoint", err.Error())
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return apierrors.NewConfigError("endpoint", "scheme must be ws or wss")
	}
	if u.Host == "" {
		return apierrors.NewConfigError("endpoint", "missing host")
	}
	return nil
}

// Keys returns the settable configuration keys
func Keys() []string {
	return []string{
		"endpoint",
		"log_file",
		"tui_theme",
		"markdown.style",
		"markdown.enable_emoji",
		"markdown.preserve_newlines",
		"markdown.table_wrap",
		"markdown.inline_table_links",
	}
}

// Set assigns value to the setting named key
func Set(cfg *Config, key, value string) error {
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, apierrors.NewConfigError(key, "expected true or false")
		}
		return b, nil
	}

	switch key {
	case "endpoint":
		if err := ValidateEndpoint(value); err != nil {
			return err
		}
		cfg.Endpoint = value
	case "log_file":
		cfg.LogFile = value
	case "tui_theme":
		cfg.TUITheme = value
	case "markdown.style":
		cfg.Markdown.Style = value
	case "markdown.enable_emoji":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Markdown.EnableEmoji = b
	case "markdown.preserve_newlines":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Markdown.PreserveNewLines = b
	case "markdown.table_wrap":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Markdown.TableWrap = b
	case "markdown.inline_table_links":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Markdown.InlineTableLinks = b
	default:
		return apierrors.NewConfigError(key, "unknown key")
	}
	return nil
}

// Get returns the value of the setting named key as text
func Get(cfg Config, key string) (string, error) {
	switch key {
	case "endpoint":
		return cfg.Endpoint, nil
	case "log_file":
		return cfg.LogFile, nil
	case "tui_theme":
		return cfg.TUITheme, nil
	case "markdown.style":
		return cfg.Markdown.Style, nil
	case "markdown.enable_emoji":
		return strconv.FormatBool(cfg.Markdown.EnableEmoji), nil
	case "markdown.preserve_newlines":
		return strconv.FormatBool(cfg.Markdown.PreserveNewLines), nil
	case "markdown.table_wrap":
		return strconv.FormatBool(cfg.Markdown.TableWrap), nil
	case "markdown.inline_table_links":
		return strconv.FormatBool(cfg.Markdown.InlineTableLinks), nil
	default:
		return "", apierrors.NewConfigError(key, "unknown key")
	}
}
