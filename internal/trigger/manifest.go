package trigger

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"casccopy/internal/config"
	"casccopy/internal/validation"
)

// Manifest declares a container and its triggers without any page markup
type Manifest struct {
	Container string            `yaml:"container"`
	BaseURL   string            `yaml:"base_url"`
	Messages  config.Messages   `yaml:"messages"`
	Triggers  []ManifestTrigger `yaml:"triggers"`
}

// ManifestTrigger is one trigger entry of a manifest
type ManifestTrigger struct {
	ID                    string `yaml:"id"`
	Label                 string `yaml:"label"`
	URL                   string `yaml:"url"`
	SuccessMessage        string `yaml:"success_message"`
	EmptyFileMessage      string `yaml:"empty_file_message"`
	ErrorMessage          string `yaml:"error_message"`
	ClipboardErrorMessage string `yaml:"clipboard_error_message"`
}

// LoadManifest reads and parses a manifest file
func LoadManifest(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest builds a container from manifest YAML. ${VAR} references
// are expanded before parsing. Every trigger becomes a direct child of the
// container root; manifest-level messages fill the messages a trigger leaves
// unset.
func ParseManifest(data []byte) (*Container, error) {
	var m Manifest
	if err := yaml.Unmarshal([]byte(config.ExpandEnv(string(data))), &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if m.Container == "" {
		m.Container = DefaultContainerID
	}
	if err := validation.ValidateContainerID(m.Container); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	var base *url.URL
	if m.BaseURL != "" {
		if err := validation.ValidateURL(m.BaseURL); err != nil {
			return nil, fmt.Errorf("invalid base_url: %w", err)
		}
		base, _ = url.Parse(m.BaseURL)
	}

	c := NewContainer(m.Container)
	for i, entry := range m.Triggers {
		if err := validation.ValidateTriggerID(entry.ID); err != nil {
			return nil, fmt.Errorf("trigger %d: %w", i, err)
		}

		rawURL := strings.TrimSpace(entry.URL)
		if rawURL != "" {
			ref, err := url.Parse(rawURL)
			if err != nil {
				return nil, fmt.Errorf("trigger %s: invalid url %q: %w", entry.ID, rawURL, err)
			}
			if base != nil {
				ref = base.ResolveReference(ref)
			}
			rawURL = ref.String()
		}

		t := Trigger{
			ID:                    entry.ID,
			Label:                 entry.Label,
			URL:                   rawURL,
			SuccessMessage:        entry.SuccessMessage,
			EmptyFileMessage:      entry.EmptyFileMessage,
			ErrorMessage:          entry.ErrorMessage,
			ClipboardErrorMessage: entry.ClipboardErrorMessage,
		}
		if err := c.AddTrigger(Source(entry.ID), c.Root(), t.WithDefaults(m.Messages)); err != nil {
			return nil, fmt.Errorf("trigger %s: %w", entry.ID, err)
		}
	}

	return c, nil
}
