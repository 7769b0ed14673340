package clipboard

import (
	"context"
	"fmt"

	atotto "github.com/atotto/clipboard"
)

// System writes to the OS clipboard through github.com/atotto/clipboard
type System struct{}

// NewSystem creates a system clipboard writer
func NewSystem() *System {
	return &System{}
}

// Write implements Writer
func (s *System) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if atotto.Unsupported {
		return fmt.Errorf("system: %w", ErrUnavailable)
	}
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("system: %w", err)
	}
	return nil
}

var _ Writer = (*System)(nil)
