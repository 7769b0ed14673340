// Package config holds UI constants and the casccopy YAML configuration.
package config

import (
	"fmt"
	"time"

	"casccopy/internal/validation"
)

// UI configuration
const (
	DefaultTableHeight = 20
	MinTableHeight     = 5

	// Table column widths
	LastColumnWidth = 12
	FileColumnWidth = 32
	URLColumnWidth  = 48

	// StatusTimeout is how long a notification stays in the status bar
	StatusTimeout = 4 * time.Second
)

// Notification buffer between the copy pipeline and the TUI event loop
const NotificationBuffer = 16

// Config represents a config.yaml file. All values are optional; CLI flags
// override them.
type Config struct {
	Clipboard   string   `yaml:"clipboard"`
	Timeout     Duration `yaml:"timeout"`
	LogLevel    string   `yaml:"log_level"`
	ContainerID string   `yaml:"container_id"`
	Messages    Messages `yaml:"messages"`
}

// Messages are default notification messages for triggers that set none.
// Empty values keep the notification disabled.
type Messages struct {
	Success        string `yaml:"success"`
	EmptyFile      string `yaml:"empty_file"`
	Error          string `yaml:"error"`
	ClipboardError string `yaml:"clipboard_error"`
}

// Defaults returns the configuration used when no file exists
func Defaults() *Config {
	return &Config{
		Clipboard:   "auto",
		LogLevel:    "warn",
		ContainerID: "casc-bundle-files-table",
	}
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	if err := validation.ValidateBackend(c.Clipboard); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	if err := validation.ValidateContainerID(c.ContainerID); err != nil {
		return fmt.Errorf("container_id: %w", err)
	}
	if c.Timeout.Duration < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", c.Timeout.Duration)
	}
	return nil
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}
