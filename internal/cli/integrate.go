package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aichaku-dev/aichaku/internal/config"
	"github.com/aichaku-dev/aichaku/internal/core/project"
	"github.com/aichaku-dev/aichaku/internal/defs"
	"github.com/aichaku-dev/aichaku/internal/methodology"
)

var integrateCmd = &cobra.Command{
	Use:   "integrate [path]",
	Short: "Write methodology guidance into CLAUDE.md",
	Long: `Integrate writes the project's methodology selection into a marked
block in the CLAUDE.md directive file, so the AI assistant knows which
methodologies the project follows. Content outside the marked block is
never modified, and re-running replaces the block in place.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIntegrate,
}

func init() {
	rootCmd.AddCommand(integrateCmd)
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	// The stored selection decides what goes in the block; an empty or
	// missing selection tracks the registry defaults, same as init.
	var ids []methodology.ID
	if cfg, err := config.NewLoader().Load(filepath.Join(root, defs.AichakuDir)); err == nil {
		for _, s := range cfg.Methodologies.Selected {
			ids = append(ids, methodology.ID(s))
		}
	}

	integrator := project.NewIntegrator(methodology.Default, newCLILogger())
	result, err := integrator.Integrate(root, ids)
	if err != nil {
		return err
	}

	verb := "updated"
	if result.Created {
		verb = "created"
	}
	names := make([]string, len(result.Methodologies))
	for i, id := range result.Methodologies {
		names[i] = registryDisplayName(id)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderSuccessCard("CLAUDE.md "+verb,
		renderKeyValueLines([]kvPair{
			{key: "File", value: result.Path},
			{key: "Methodologies", value: joinComma(names)},
		})))
	return nil
}
