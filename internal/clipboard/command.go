package clipboard

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// candidate is a clipboard utility invocation
type candidate struct {
	name string
	args []string
}

// Command pipes text into the first clipboard utility found on PATH
type Command struct {
	candidates []candidate
	lookPath   func(string) (string, error)
}

// NewCommand creates a writer for the current platform's clipboard utilities
func NewCommand() *Command {
	return &Command{
		candidates: platformCandidates(runtime.GOOS),
		lookPath:   exec.LookPath,
	}
}

func platformCandidates(goos string) []candidate {
	switch goos {
	case "darwin": // macOS
		return []candidate{{name: "pbcopy"}}
	case "windows":
		return []candidate{{name: "clip"}}
	default:
		// Wayland first, then X11 utilities
		return []candidate{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
		}
	}
}

// Write implements Writer
func (c *Command) Write(ctx context.Context, text string) error {
	var tried []string
	for _, cand := range c.candidates {
		path, err := c.lookPath(cand.name)
		if err != nil {
			continue
		}
		tried = append(tried, cand.name)

		cmd := exec.CommandContext(ctx, path, cand.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			// try the next utility
			continue
		}
		return nil
	}

	if len(tried) == 0 {
		return fmt.Errorf("command: no clipboard utility found: %w", ErrUnavailable)
	}
	return fmt.Errorf("command: %s failed: %w", strings.Join(tried, ", "), ErrUnavailable)
}

var _ Writer = (*Command)(nil)
