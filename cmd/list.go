package cmd

import (
	"fmt"
	"io"
	"strings"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"casccopy/internal/trigger"
)

var listCmd = &cobra.Command{
	Use:   "list <page-url|page.html|manifest.yaml>",
	Short: "List the copy triggers of a bundle files table",
	Long: `Print every copy trigger found in a bundle files table with its URL and
configured messages.

Examples:
  casccopy list https://ci.example.com/casc-bundle-export/
  casccopy list bundle.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

var listBaseURL string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listBaseURL, "base-url", "", "Resolve relative links of a local page against this URL")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	load, err := newContainerLoader(args[0], listBaseURL, cfg, newGetter(cfg))
	if err != nil {
		return err
	}
	container, err := load(cmd.Context())
	if err != nil {
		return err
	}

	renderTriggerTable(cmd.OutOrStdout(), args[0], container)
	return nil
}

// renderTriggerTable prints the static listing used by list and the browse fallback
func renderTriggerTable(w io.Writer, source string, container *trigger.Container) {
	fmt.Fprintf(w, "📋 %s (#%s)\n\n", source, container.ID())

	triggers := container.Triggers()
	if len(triggers) == 0 {
		fmt.Fprintln(w, "No copy triggers found in this table")
		return
	}

	t := prettytable.NewWriter()
	t.SetStyle(prettytable.StyleRounded)
	t.AppendHeader(prettytable.Row{"#", "File", "URL", "Messages"})

	for i, tr := range triggers {
		u := tr.URL
		if !tr.HasURL() {
			u = "(none)"
		}
		t.AppendRow(prettytable.Row{i + 1, tr.DisplayName(), u, messageSummary(tr)})
	}

	fmt.Fprintln(w, t.Render())
}

// messageSummary names the notifications a trigger will show
func messageSummary(t trigger.Trigger) string {
	var set []string
	if t.SuccessMessage != "" {
		set = append(set, "success")
	}
	if t.EmptyFileMessage != "" {
		set = append(set, "empty")
	}
	if t.ErrorMessage != "" {
		set = append(set, "error")
	}
	if t.ClipboardErrorMessage != "" {
		set = append(set, "clipboard")
	}
	if len(set) == 0 {
		return "-"
	}
	return strings.Join(set, ", ")
}
