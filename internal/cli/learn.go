package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aichaku-dev/aichaku/internal/methodology"
	"github.com/aichaku-dev/aichaku/internal/template"
)

var learnCmd = &cobra.Command{
	Use:   "learn <methodology>",
	Short: "Show an overview of a methodology",
	Long: `Learn renders the bundled overview document for a methodology.
On a terminal the markdown is rendered with styling; otherwise the raw
markdown is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runLearn,
}

func init() {
	learnCmd.Flags().Bool("plain", false, "print raw markdown without terminal styling")
	rootCmd.AddCommand(learnCmd)
}

func runLearn(cmd *cobra.Command, args []string) error {
	id := methodology.ID(args[0])
	reg := methodology.Default

	if !reg.Exists(id) {
		known := make([]string, 0, reg.Len())
		for _, k := range reg.ListAll() {
			known = append(known, string(k))
		}
		return fmt.Errorf("unknown methodology %q (available: %s)", id, strings.Join(known, ", "))
	}

	fsys, err := template.EmbeddedTemplates()
	if err != nil {
		return err
	}
	content, err := template.NewDeployer(fsys, reg).ExtractTemplate(string(id) + "/ABOUT.md")
	if err != nil {
		return fmt.Errorf("no overview document for %q: %w", id, err)
	}

	out := cmd.OutOrStdout()
	if getBoolFlag(cmd, "plain") || !stdoutIsTerminal() {
		fmt.Fprint(out, string(content))
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprint(out, string(content))
		return nil
	}
	rendered, err := renderer.Render(string(content))
	if err != nil {
		fmt.Fprint(out, string(content))
		return nil
	}
	fmt.Fprint(out, rendered)
	return nil
}

// stdoutIsTerminal reports whether styled output should be produced.
func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
