// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for cmdconsole.
//
// Configuration file location:
//   - ~/.cmdconsole/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/cmdconsole/internal/kv"
	"github.com/jeranaias/cmdconsole/internal/logging"
	"github.com/jeranaias/cmdconsole/internal/util"
)

// Limits for console.history_size.
const (
	MinHistorySize = 1
	MaxHistorySize = 10000
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete cmdconsole configuration.
type Config struct {
	Console ConsoleConfig `toml:"console"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

// ConsoleConfig contains interpreter settings.
type ConsoleConfig struct {
	// PromptSymbol is echoed before each submitted line
	PromptSymbol string `toml:"prompt_symbol"`
	// WelcomeMessage is written when the console starts
	WelcomeMessage string `toml:"welcome_message"`
	// AboutText is printed by the about command
	AboutText string `toml:"about_text"`
	// HistorySize is the maximum number of remembered lines
	HistorySize int `toml:"history_size"`
	// HistoryKey is the storage key holding the history
	HistoryKey string `toml:"history_key"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Backend is "memory", "file" or "sqlite"
	Backend string `toml:"backend"`
	// Path is the backing file. Empty uses a file in the config directory.
	Path string `toml:"path"`
}

// UIConfig contains appearance settings for the full-screen console.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme string `toml:"theme"`
	// BackgroundColor, TextColor and PromptColor accept "#rrggbb", "#rgb"
	// or an ANSI color number. Empty uses the theme color.
	BackgroundColor string `toml:"background_color"`
	TextColor       string `toml:"text_color"`
	PromptColor     string `toml:"prompt_color"`
	// Width and Height bound the console box. Zero fills the terminal.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// StartHidden starts the console minimized
	StartHidden bool `toml:"start_hidden"`
}

// LoggingConfig contains diagnostic logging settings.
type LoggingConfig struct {
	Enabled bool   `toml:"enabled"`
	Level   string `toml:"level"`
	// Path is the log file. Empty uses console.log in the config directory.
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Console: ConsoleConfig{
			PromptSymbol:   ">",
			WelcomeMessage: "Command Console v1.0.0\nType \"help\" for available commands.",
			HistorySize:    100,
			HistoryKey:     "console.history",
		},
		Storage: StorageConfig{
			Backend: kv.BackendFile,
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the cmdconsole configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".cmdconsole"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// StoragePath returns the storage file, defaulting by backend.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	switch c.Storage.Backend {
	case kv.BackendSQLite:
		return filepath.Join(dir, "console.db"), nil
	default:
		return filepath.Join(dir, "history.json"), nil
	}
}

// LogPath returns the log file, defaulting to the config directory.
func (c *Config) LogPath() (string, error) {
	if c.Logging.Path != "" {
		return c.Logging.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "console.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads the configuration from the default path, falling back to
// defaults when the file does not exist. Environment overrides are applied last.
func Load() (*Config, error) {
	return finish(Read(""))
}

// LoadFromPath loads configuration from a specific TOML file with full validation.
// Keys missing from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	return finish(Read(path))
}

// Read decodes the configuration and applies environment overrides without
// validating, so callers can layer further overrides first. An empty path
// reads the default file, or returns defaults when it does not exist.
func Read(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		def, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		if _, statErr := os.Stat(def); statErr != nil {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		path = def
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	return cfg, nil
}

func finish(cfg *Config, err error) (*Config, error) {
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration as TOML with owner-only permissions.
func SaveToPath(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# cmdconsole configuration file\n")
	buf.WriteString("# Generated by cmdconsole - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFileWithDir(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// DEFAULTS AND OVERRIDES
// =============================================================================

// SetDefaults fills empty fields with default values.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Console.PromptSymbol == "" {
		c.Console.PromptSymbol = d.Console.PromptSymbol
	}
	if c.Console.HistorySize == 0 {
		c.Console.HistorySize = d.Console.HistorySize
	}
	if c.Console.HistoryKey == "" {
		c.Console.HistoryKey = d.Console.HistoryKey
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
}

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported variables:
//   - CMDCONSOLE_PROMPT: overrides console.prompt_symbol
//   - CMDCONSOLE_HISTORY_SIZE: overrides console.history_size
//   - CMDCONSOLE_STORE: overrides storage.backend
//   - CMDCONSOLE_STORE_PATH: overrides storage.path
//   - CMDCONSOLE_THEME: overrides ui.theme
//   - CMDCONSOLE_LOG_LEVEL: overrides logging.level and enables logging
//   - CMDCONSOLE_LOG_FILE: overrides logging.path and enables logging
func (c *Config) ApplyEnvOverrides() {
	if prompt := os.Getenv("CMDCONSOLE_PROMPT"); prompt != "" {
		c.Console.PromptSymbol = prompt
	}

	if size := os.Getenv("CMDCONSOLE_HISTORY_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			c.Console.HistorySize = n
		}
	}

	if backend := os.Getenv("CMDCONSOLE_STORE"); backend != "" {
		c.Storage.Backend = backend
	}
	if path := os.Getenv("CMDCONSOLE_STORE_PATH"); path != "" {
		c.Storage.Path = path
	}

	if theme := os.Getenv("CMDCONSOLE_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if level := os.Getenv("CMDCONSOLE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
		c.Logging.Enabled = true
	}
	if path := os.Getenv("CMDCONSOLE_LOG_FILE"); path != "" {
		c.Logging.Path = path
		c.Logging.Enabled = true
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ErrInvalid is matched by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Is lets errors.Is match ErrInvalid.
func (e ValidateErrors) Is(target error) bool {
	return target == ErrInvalid
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Console.HistorySize < MinHistorySize || c.Console.HistorySize > MaxHistorySize {
		errs = append(errs, ValidationError{
			Field:   "console.history_size",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinHistorySize, MaxHistorySize, c.Console.HistorySize),
		})
	}
	if strings.ContainsAny(c.Console.PromptSymbol, "\r\n") {
		errs = append(errs, ValidationError{
			Field:   "console.prompt_symbol",
			Message: "must be a single line",
		})
	}

	validBackend := false
	for _, b := range kv.Backends() {
		if c.Storage.Backend == b {
			validBackend = true
		}
	}
	if !validBackend {
		errs = append(errs, ValidationError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: %s", c.Storage.Backend, strings.Join(kv.Backends(), ", ")),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[c.UI.Theme] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}
	for field, value := range map[string]string{
		"ui.background_color": c.UI.BackgroundColor,
		"ui.text_color":       c.UI.TextColor,
		"ui.prompt_color":     c.UI.PromptColor,
	} {
		if value != "" && !ValidColor(value) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("invalid color '%s', use #rrggbb, #rgb or 0-255", value),
			})
		}
	}
	if c.UI.Width < 0 {
		errs = append(errs, ValidationError{Field: "ui.width", Message: "must not be negative"})
	}
	if c.UI.Height < 0 {
		errs = append(errs, ValidationError{Field: "ui.height", Message: "must not be negative"})
	}

	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidColor reports whether s is a hex color or an ANSI color number.
func ValidColor(s string) bool {
	if n, err := strconv.Atoi(s); err == nil {
		return n >= 0 && n <= 255
	}
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}
