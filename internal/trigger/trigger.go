// Package trigger models copy triggers and the delegation container that
// holds them.
//
// A Container is an arena of triggers plus an index from activation source to
// element. Every element keeps a link to its parent, so an activation on a
// nested element resolves to the closest enclosing trigger the way a click on
// a span inside a link resolves to the link.
package trigger

import (
	"path"
	"strings"

	"casccopy/internal/config"
)

// Markup contract of the bundle files table
const (
	DefaultContainerID = "casc-bundle-files-table"
	ActionAttribute    = "data-action"
	ActionCopy         = "copy-in-clipboard"
)

// Dataset keys read from a trigger's data-* attributes
const (
	KeySuccessMessage        = "successMessage"
	KeyEmptyFileMessage      = "emptyFileMessage"
	KeyErrorMessage          = "errorMessage"
	KeyClipboardErrorMessage = "clipboardErrorMessage"
)

// Trigger is a UI element that copies a remote file's content on activation.
// Triggers are declared statically and never mutated at runtime.
type Trigger struct {
	ID    string
	Label string
	URL   string

	// Optional notification messages. Empty means no notification.
	SuccessMessage        string
	EmptyFileMessage      string
	ErrorMessage          string
	ClipboardErrorMessage string

	// Data holds every data-* attribute, keyed like a DOM dataset
	Data map[string]string
}

// FromDataset builds a trigger from a dataset map
func FromDataset(id, rawURL string, data map[string]string) Trigger {
	return Trigger{
		ID:                    id,
		URL:                   rawURL,
		SuccessMessage:        data[KeySuccessMessage],
		EmptyFileMessage:      data[KeyEmptyFileMessage],
		ErrorMessage:          data[KeyErrorMessage],
		ClipboardErrorMessage: data[KeyClipboardErrorMessage],
		Data:                  data,
	}
}

// HasURL reports whether the trigger carries a resource locator
func (t Trigger) HasURL() bool {
	return strings.TrimSpace(t.URL) != ""
}

// DisplayName returns the label, falling back to the file name of the URL
func (t Trigger) DisplayName() string {
	if t.Label != "" {
		return t.Label
	}
	if t.HasURL() {
		if base := path.Base(strings.TrimRight(t.URL, "/")); base != "." && base != "/" {
			return base
		}
		return t.URL
	}
	return t.ID
}

// WithDefaults fills unset messages from configured defaults
func (t Trigger) WithDefaults(m config.Messages) Trigger {
	if t.SuccessMessage == "" {
		t.SuccessMessage = m.Success
	}
	if t.EmptyFileMessage == "" {
		t.EmptyFileMessage = m.EmptyFile
	}
	if t.ErrorMessage == "" {
		t.ErrorMessage = m.Error
	}
	if t.ClipboardErrorMessage == "" {
		t.ClipboardErrorMessage = m.ClipboardError
	}
	return t
}

// DatasetKey converts a data-* attribute name to its dataset key
// ("data-success-message" -> "successMessage"). ok is false for
// attributes outside the data-* namespace.
func DatasetKey(attr string) (key string, ok bool) {
	name, found := strings.CutPrefix(strings.ToLower(attr), "data-")
	if !found {
		return "", false
	}

	var b strings.Builder
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch == '-' && i+1 < len(name) && name[i+1] >= 'a' && name[i+1] <= 'z' {
			b.WriteByte(name[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(ch)
	}
	return b.String(), true
}
