package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Generate reference documentation",
	Long:   `Write the casccopy command reference (man pages, Markdown or YAML) into a directory.`,
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runDocs,
}

var (
	docsDir    string
	docsFormat string
)

// docGenerators maps a --format value to the cobra/doc tree writer for it
var docGenerators = map[string]func(root *cobra.Command, dir string) error{
	"man": func(root *cobra.Command, dir string) error {
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   strings.ToUpper(root.Name()),
			Section: "1",
			Source:  root.Name(),
			Manual:  "casccopy remote clipboard copy",
		}, dir)
	},
	"md":   doc.GenMarkdownTree,
	"yaml": doc.GenYamlTree,
}

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().StringVar(&docsDir, "output", "./docs", "directory the reference is written to")
	docsCmd.Flags().StringVar(&docsFormat, "format", "man",
		fmt.Sprintf("reference format (%s)", strings.Join(docFormats(), ", ")))
}

func docFormats() []string {
	formats := make([]string, 0, len(docGenerators))
	for name := range docGenerators {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

func runDocs(cmd *cobra.Command, _ []string) error {
	generate, ok := docGenerators[strings.ToLower(docsFormat)]
	if !ok {
		return fmt.Errorf("unknown docs format %q (want one of: %s)", docsFormat, strings.Join(docFormats(), ", "))
	}

	dir := filepath.Clean(docsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	root := cmd.Root()
	root.DisableAutoGenTag = true
	if err := generate(root, dir); err != nil {
		return fmt.Errorf("writing %s reference: %w", docsFormat, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s reference to %s\n", docsFormat, dir)
	return nil
}
