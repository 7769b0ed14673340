package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"casccopy/internal/errors"
	"casccopy/internal/notify"
	"casccopy/internal/remotecopy"
	"casccopy/internal/trigger"
	"casccopy/internal/validation"
)

var copyCmd = &cobra.Command{
	Use:   "copy <url>",
	Short: "Copy a remote file's content to the clipboard",
	Long: `Fetch a file with a single GET and copy its content to the clipboard.

Notifications are printed only for the messages that are set, either with the
flags below or with the messages section of the config file.

Examples:
  casccopy copy https://ci.example.com/casc-bundle-export/jenkins.yaml
  casccopy copy --success-message "Copied!" --error-message "Failed" URL`,
	Args: cobra.ExactArgs(1),
	RunE: runCopy,
}

var (
	copySuccessMessage        string
	copyEmptyFileMessage      string
	copyErrorMessage          string
	copyClipboardErrorMessage string
)

// copySource is the activation source of the single trigger a copy builds
const copySource trigger.Source = "copy"

func init() {
	rootCmd.AddCommand(copyCmd)

	copyCmd.Flags().StringVar(&copySuccessMessage, "success-message", "", "Message shown after a successful copy")
	copyCmd.Flags().StringVar(&copyEmptyFileMessage, "empty-file-message", "", "Message shown when the file is empty")
	copyCmd.Flags().StringVar(&copyErrorMessage, "error-message", "", "Message shown when the file cannot be fetched")
	copyCmd.Flags().StringVar(&copyClipboardErrorMessage, "clipboard-error-message", "", "Message shown when the clipboard rejects the content")
}

func runCopy(cmd *cobra.Command, args []string) error {
	rawURL := args[0]
	if err := validation.ValidateURL(rawURL); err != nil {
		return errors.WrapValidationError(err, rawURL)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	writer, err := newClipboard(cfg.Clipboard, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	container := trigger.NewContainer(cfg.ContainerID)
	t := trigger.Trigger{
		URL:                   rawURL,
		SuccessMessage:        copySuccessMessage,
		EmptyFileMessage:      copyEmptyFileMessage,
		ErrorMessage:          copyErrorMessage,
		ClipboardErrorMessage: copyClipboardErrorMessage,
	}
	if err := container.AddTrigger(copySource, container.Root(), t); err != nil {
		return err
	}

	var result remotecopy.Result
	controller := remotecopy.New(
		newGetter(cfg),
		writer,
		notify.NewConsole(cmd.OutOrStdout()),
		remotecopy.WithLogger(logger),
		remotecopy.WithDefaultMessages(cfg.Messages),
		remotecopy.OnSettled(func(r remotecopy.Result) { result = r }),
	)
	controller.Attach(container)

	ev := trigger.NewEvent(copySource)
	container.Dispatch(cmd.Context(), ev)
	controller.Wait()

	if result.Copied() {
		return nil
	}
	if ce, ok := errors.As(result.Err); ok {
		return fmt.Errorf("%s", ce.UserFriendlyMessage())
	}
	return fmt.Errorf("copy failed: %s", result.Outcome)
}
