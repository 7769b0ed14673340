package cmd

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"casccopy/internal/config"
	"casccopy/internal/notify"
	"casccopy/internal/remotecopy"
)

var browseCmd = &cobra.Command{
	Use:   "browse <page-url|page.html|manifest.yaml>",
	Short: "Interactive bundle files table",
	Long: `Show the copy triggers of a bundle files table in a terminal UI.

Select a file and press Enter (or yy) to copy its content to the clipboard.
Notifications appear in the status bar and the Last column keeps each file's
latest outcome.

Examples:
  casccopy browse https://ci.example.com/casc-bundle-export/
  casccopy browse bundle.yaml
  casccopy browse page.html --base-url https://ci.example.com/casc-bundle-export/`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

var browseBaseURL string

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().StringVar(&browseBaseURL, "base-url", "", "Resolve relative links of a local page against this URL")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	source := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs only go to --log-file
	logger, closeLog, err := openLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	getter := newGetter(cfg)
	load, err := newContainerLoader(source, browseBaseURL, cfg, getter)
	if err != nil {
		return err
	}

	// OSC52 sequences bypass the renderer's stdout
	var term io.Writer
	if tty, err := openTerminal(); err == nil {
		defer func() { _ = tty.Close() }()
		term = tty
	} else {
		logger.Sugar().Debugf("no controlling terminal for osc52: %v", err)
	}

	writer, err := newClipboard(cfg.Clipboard, term)
	if err != nil {
		return err
	}

	notifications := notify.NewChannel(config.NotificationBuffer)
	settled := make(chan remotecopy.Result, config.NotificationBuffer)
	controller := remotecopy.New(getter, writer, notifications,
		remotecopy.WithLogger(logger),
		remotecopy.WithDefaultMessages(cfg.Messages),
		remotecopy.OnSettled(deliverSettled(settled)),
	)

	// Try interactive mode first, fallback to static mode
	model := newBrowserModel(cmd.Context(), source, load, controller, notifications.Events(), settled)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		logger.Sugar().Warnf("interactive mode failed, falling back to static listing: %v", err)
		return runStaticBrowse(cmd, source, load)
	}

	return nil
}

// openTerminal opens the controlling terminal; replaced in tests
var openTerminal = func() (io.WriteCloser, error) {
	return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
}

// deliverSettled hands results to the event loop without blocking the
// caller. Missing-URL results settle on the UI goroutine itself, inside
// Update, so a full buffer must never stall it.
func deliverSettled(ch chan<- remotecopy.Result) func(remotecopy.Result) {
	return func(r remotecopy.Result) {
		select {
		case ch <- r:
		default:
			go func() { ch <- r }()
		}
	}
}

func runStaticBrowse(cmd *cobra.Command, source string, load containerLoader) error {
	container, err := load(cmd.Context())
	if err != nil {
		return err
	}

	renderTriggerTable(cmd.OutOrStdout(), source, container)
	cmd.Printf("\nUse 'casccopy copy URL' to copy a file\n")
	return nil
}
