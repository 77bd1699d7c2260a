package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aichaku-dev/aichaku/internal/cli/wizard"
	"github.com/aichaku-dev/aichaku/internal/core/project"
	"github.com/aichaku-dev/aichaku/internal/methodology"
	"github.com/aichaku-dev/aichaku/internal/template"
	"github.com/aichaku-dev/aichaku/internal/ui"
	"github.com/aichaku-dev/aichaku/pkg/models"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize methodology documentation in a project",
	Long: `Init creates the .aichaku/ directory, scaffolds documentation
templates for the selected methodologies, and records the selection in
the project configuration.

Without --methodologies, a TTY gets an interactive wizard and a
non-TTY run falls back to the default methodology set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringSlice("methodologies", nil, "methodology ids to scaffold (default: registry defaults)")
	initCmd.Flags().String("name", "", "project name used in scaffolded documents (default: directory name)")
	initCmd.Flags().String("scope", string(models.ScopeLocal), "install scope: local or global")
	initCmd.Flags().Bool("force", false, "reinitialize even if .aichaku/ already exists")
	initCmd.Flags().Bool("non-interactive", false, "never prompt, even on a TTY")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	name := getStringFlag(cmd, "name")
	selection := getStringSliceFlag(cmd, "methodologies")

	// The wizard only runs when stdin is a terminal and the user gave no
	// explicit selection.
	if len(selection) == 0 && !getBoolFlag(cmd, "non-interactive") && stdinIsTerminal() {
		defaultName := name
		if defaultName == "" {
			if abs, err := filepath.Abs(root); err == nil {
				defaultName = filepath.Base(abs)
			}
		}
		answers, err := wizard.Run(defaultName, wizard.OptionsFromRegistry(methodology.Default))
		if err != nil {
			if errors.Is(err, wizard.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), cliDim.Render("Init cancelled."))
				return nil
			}
			return err
		}
		name = answers.ProjectName
		selection = answers.Methodologies
	}

	ids := make([]methodology.ID, len(selection))
	for i, s := range selection {
		ids[i] = methodology.ID(s)
	}

	deployer, err := newEmbeddedDeployer(false)
	if err != nil {
		return err
	}

	progress := ui.NewProgress(ui.DefaultTheme(), ui.NewHeadlessManager())
	spin := progress.Spinner("Scaffolding methodology documentation")

	initializer := project.NewInitializer(methodology.Default, deployer, newCLILogger())
	result, err := initializer.Init(cmd.Context(), project.InitOptions{
		ProjectRoot:   root,
		ProjectName:   name,
		Methodologies: ids,
		Scope:         models.InstallScope(getStringFlag(cmd, "scope")),
		Force:         getBoolFlag(cmd, "force"),
	})
	spin.Stop()
	if err != nil {
		return err
	}

	names := make([]string, len(result.Methodologies))
	for i, id := range result.Methodologies {
		names[i] = registryDisplayName(id)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderSuccessCard("Aichaku initialized",
		renderKeyValueLines([]kvPair{
			{key: "Methodologies", value: joinComma(names)},
			{key: "Files created", value: fmt.Sprintf("%d", len(result.CreatedFiles))},
			{key: "Directories", value: fmt.Sprintf("%d", len(result.CreatedDirs))},
		})))
	for _, w := range result.Warnings {
		fmt.Fprintln(out, cliWarn.Render("! ")+w)
	}
	return nil
}

// stdinIsTerminal reports whether the process has an interactive stdin.
func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// newEmbeddedDeployer builds a deployer over the embedded assets with
// strict template rendering enabled.
func newEmbeddedDeployer(force bool) (template.Deployer, error) {
	fsys, err := template.EmbeddedTemplates()
	if err != nil {
		return nil, err
	}
	renderer := template.NewRenderer(fsys)
	if force {
		return template.NewForceDeployer(fsys, methodology.Default, renderer), nil
	}
	return template.NewDeployerWithRenderer(fsys, methodology.Default, renderer), nil
}

// registryDisplayName resolves an id to its registry name, falling back
// to title-casing the id for entries the registry no longer knows.
func registryDisplayName(id methodology.ID) string {
	if entry, ok := methodology.Default.Entry(id); ok {
		return entry.Name
	}
	return displayName(string(id))
}

func joinComma(items []string) string {
	return strings.Join(items, ", ")
}
