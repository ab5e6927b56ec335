package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsDir string

var generateDocsCmd = &cobra.Command{
	Use:    "generate-docs",
	Short:  "Generate shell completions and man pages",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runGenerateDocs,
}

func init() {
	generateDocsCmd.Flags().StringVarP(&docsDir, "dir", "d", "target/doc", "Output directory for generated documentation")

	rootCmd.AddCommand(generateDocsCmd)
}

func runGenerateDocs(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	manDir := filepath.Join(docsDir, "man")
	completionDir := filepath.Join(docsDir, "completions")

	for _, dir := range []string{manDir, completionDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}

	root := cmd.Root()
	header := &doc.GenManHeader{Title: "OPSOPS", Section: "1", Source: "opsops " + version}
	if err := doc.GenManTree(root, header, manDir); err != nil {
		return fmt.Errorf("generating man pages: %w", err)
	}
	fmt.Fprintf(out, "Generated man pages in: %s\n", manDir)

	completions := []struct {
		file string
		gen  func(path string) error
	}{
		{file: "opsops.fish", gen: func(p string) error { return root.GenFishCompletionFile(p, true) }},
		{file: "opsops.bash", gen: func(p string) error { return root.GenBashCompletionFileV2(p, true) }},
		{file: "_opsops", gen: root.GenZshCompletionFile},
	}
	for _, c := range completions {
		path := filepath.Join(completionDir, c.file)
		if err := c.gen(path); err != nil {
			return fmt.Errorf("generating %s: %w", c.file, err)
		}
		fmt.Fprintf(out, "Generated completions at: %s\n", path)
	}

	fmt.Fprintln(out, "\nTo install:")
	fmt.Fprintln(out, "  Man pages:          mkdir -p ~/.local/share/man/man1")
	fmt.Fprintf(out, "                      cp %s/*.1 ~/.local/share/man/man1/\n", manDir)
	fmt.Fprintln(out, "                      mandb  # Update man database")
	fmt.Fprintln(out, "  Fish completions:   mkdir -p ~/.config/fish/completions")
	fmt.Fprintf(out, "                      cp %s/opsops.fish ~/.config/fish/completions/\n", completionDir)
	return nil
}
