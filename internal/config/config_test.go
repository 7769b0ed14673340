package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestUIConstants(t *testing.T) {
	// Verify UI constants are sensible
	if DefaultTableHeight < MinTableHeight {
		t.Errorf("DefaultTableHeight (%d) should be >= MinTableHeight (%d)", DefaultTableHeight, MinTableHeight)
	}

	totalWidth := LastColumnWidth + FileColumnWidth + URLColumnWidth
	if totalWidth < 60 || totalWidth > 120 {
		t.Errorf("Total column width (%d) seems unreasonable", totalWidth)
	}

	if StatusTimeout < time.Second {
		t.Errorf("StatusTimeout (%v) is too short to read", StatusTimeout)
	}
}

func TestDefaultsAreValid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Errorf("Defaults should validate, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("CASCCOPY_TEST_MSG", "Copied to clipboard")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
clipboard: osc52
timeout: 15s
log_level: debug
messages:
  success: ${CASCCOPY_TEST_MSG}
  error: ${CASCCOPY_UNSET_VAR:-Download failed}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Clipboard != "osc52" {
		t.Errorf("Expected clipboard osc52, got %q", cfg.Clipboard)
	}
	if cfg.Timeout.Duration != 15*time.Second {
		t.Errorf("Expected 15s timeout, got %v", cfg.Timeout.Duration)
	}
	if cfg.Messages.Success != "Copied to clipboard" {
		t.Errorf("Expected env expansion, got %q", cfg.Messages.Success)
	}
	if cfg.Messages.Error != "Download failed" {
		t.Errorf("Expected default expansion, got %q", cfg.Messages.Error)
	}
	// Unset keys keep their defaults
	if cfg.ContainerID != "casc-bundle-files-table" {
		t.Errorf("Expected default container id, got %q", cfg.ContainerID)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	invalidCases := []string{
		"clipboard: pasteboard\n",
		"timeout: soon\n",
		"timeout: -1s\n",
		"container_id: \"has space\"\n",
		"clipboard: [\n",
	}

	for _, content := range invalidCases {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("Expected %q to be rejected", content)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected missing explicit config to fail")
	}
}

func TestLoadDefaultWithoutFile(t *testing.T) {
	t.Setenv("CASCCOPY_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if cfg.Clipboard != "auto" {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("CASCCOPY_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if path != filepath.Join("/tmp/xdg", "casccopy", "config.yaml") {
		t.Errorf("Unexpected path %q", path)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("CASCCOPY_HOST", "ci.example.com")

	tests := []struct {
		input    string
		expected string
	}{
		{"https://${CASCCOPY_HOST}/f.txt", "https://ci.example.com/f.txt"},
		{"${CASCCOPY_NOPE}", ""},
		{"${CASCCOPY_NOPE:-fallback}", "fallback"},
		{"plain $HOME text", "plain $HOME text"},
	}

	for _, test := range tests {
		if got := ExpandEnv(test.input); got != test.expected {
			t.Errorf("ExpandEnv(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}
