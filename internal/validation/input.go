package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"casccopy/internal/clipboard"
)

// Identifier patterns
var (
	containerIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_\-:.]*$`)
	triggerIDPattern   = regexp.MustCompile(`^[^\s]+$`)
)

// ValidateURL validates an absolute http(s) resource locator
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("url cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("url is not parseable: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("url must include a host")
	}

	return nil
}

// ValidateContainerID validates a delegation container element id
func ValidateContainerID(id string) error {
	if id == "" {
		return fmt.Errorf("container id cannot be empty")
	}

	if !containerIDPattern.MatchString(id) {
		return fmt.Errorf("container id must start with a letter and contain no whitespace, got %q", id)
	}

	return nil
}

// ValidateTriggerID validates a manifest trigger id
func ValidateTriggerID(id string) error {
	if id == "" {
		return fmt.Errorf("trigger id cannot be empty")
	}

	if !triggerIDPattern.MatchString(id) {
		return fmt.Errorf("trigger id cannot contain whitespace, got %q", id)
	}

	return nil
}

// ValidateBackend validates a clipboard backend name
func ValidateBackend(backend string) error {
	name := strings.ToLower(strings.TrimSpace(backend))
	if name == "" {
		return nil
	}

	for _, known := range clipboard.Backends {
		if name == known {
			return nil
		}
	}

	return fmt.Errorf("unsupported clipboard backend %q (supported: %s)", backend, strings.Join(clipboard.Backends, ", "))
}
