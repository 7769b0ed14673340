// Package clipboard places text on the user's clipboard.
//
// Writers are capabilities: a write may fail (no clipboard utility, no
// display, terminal refusing OSC52) and callers must not assume the text
// landed unless Write returned nil.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnavailable reports that no clipboard mechanism accepted the text
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer copies text to a clipboard
type Writer interface {
	Write(ctx context.Context, text string) error
}

// Backend names accepted by New
const (
	BackendAuto    = "auto"
	BackendSystem  = "system"
	BackendCommand = "command"
	BackendOSC52   = "osc52"
)

// Backends lists every backend name in display order
var Backends = []string{BackendAuto, BackendSystem, BackendCommand, BackendOSC52}

// New builds the writer for a configured backend. out receives OSC52
// sequences and should be the controlling terminal.
func New(backend string, out io.Writer) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendAuto:
		return Fallback{NewSystem(), NewCommand(), NewOSC52(out)}, nil
	case BackendSystem:
		return NewSystem(), nil
	case BackendCommand:
		return NewCommand(), nil
	case BackendOSC52:
		return NewOSC52(out), nil
	default:
		return nil, fmt.Errorf("unsupported clipboard backend: %s (supported: %s)", backend, strings.Join(Backends, ", "))
	}
}

// Fallback tries each writer in order and stops at the first success
type Fallback []Writer

// Write implements Writer
func (f Fallback) Write(ctx context.Context, text string) error {
	var errs []error
	for _, w := range f {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := w.Write(ctx, text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}

// BestEffort swallows write failures. Use it where the caller must never
// observe a clipboard failure; success is then unverifiable.
type BestEffort struct {
	W Writer
}

// Write implements Writer and always returns nil
func (b BestEffort) Write(ctx context.Context, text string) error {
	if b.W != nil {
		_ = b.W.Write(ctx, text)
	}
	return nil
}

var (
	_ Writer = Fallback(nil)
	_ Writer = BestEffort{}
)
