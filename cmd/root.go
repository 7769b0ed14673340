package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"casccopy/internal/clipboard"
	"casccopy/internal/config"
	"casccopy/internal/fetch"
	"casccopy/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "casccopy",
	Short: "Copy configuration bundle files to the clipboard",
	Long: `casccopy copies the content of remote configuration-bundle files into the
system clipboard and reports the outcome as a notification.

It reads the copy buttons of a bundle files table (an HTML page or a YAML
manifest), fetches the referenced file with a single GET and writes its
content to the clipboard.

Common usage:
  casccopy copy https://ci.example.com/casc-bundle-export/jenkins.yaml
  casccopy browse https://ci.example.com/casc-bundle-export/
  casccopy browse bundle.yaml              # Manifest without a page
  casccopy list page.html --base-url https://ci.example.com/casc-bundle-export/`,
	Version:       "1.0.0",
	SilenceErrors: true,
	SilenceUsage:  true,
}

var (
	configPath       string
	verbose          bool
	clipboardBackend string
	logFile          string
)

// Factories replaced in tests
var (
	newClipboard = clipboard.New
	newGetter    = func(cfg *config.Config) fetch.Getter {
		return fetch.NewClient(fetch.Config{Timeout: cfg.Timeout.Duration})
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/casccopy/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
	flags.StringVar(&clipboardBackend, "clipboard", "", "Clipboard backend: auto, system, command, osc52")
	flags.StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig resolves the config file and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("clipboard") {
		cfg.Clipboard = clipboardBackend
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogger returns a logger on --log-file, or on fallback when no file is
// set. A nil fallback discards logs. The returned close func is never nil.
func openLogger(cfg *config.Config, fallback io.Writer) (*log.Logger, func(), error) {
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger, err := log.New(f, cfg.LogLevel)
		if err != nil {
			_ = f.Close()
			return nil, nil, err
		}
		return logger, func() {
			_ = logger.Sync()
			_ = f.Close()
		}, nil
	}

	if fallback == nil {
		return log.Nop(), func() {}, nil
	}
	logger, err := log.New(fallback, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}
