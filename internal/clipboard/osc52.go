package clipboard

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// OSC52 asks the terminal to set its clipboard. It works over SSH and in
// containers without a display, but the terminal may silently ignore it.
type OSC52 struct {
	out    io.Writer
	getenv func(string) string
}

// NewOSC52 creates a writer emitting OSC52 sequences to out
func NewOSC52(out io.Writer) *OSC52 {
	return &OSC52{out: out, getenv: os.Getenv}
}

// Write implements Writer
func (o *OSC52) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if o.out == nil {
		return fmt.Errorf("osc52: no terminal: %w", ErrUnavailable)
	}

	seq := osc52.New(text)
	switch {
	case o.getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(o.getenv("TERM"), "screen"):
		seq = seq.Screen()
	}

	// one write per sequence so a shared terminal never sees it split
	if _, err := io.WriteString(o.out, seq.String()); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

var _ Writer = (*OSC52)(nil)
