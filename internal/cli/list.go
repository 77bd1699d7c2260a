package cli

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aichaku-dev/aichaku/internal/config"
	"github.com/aichaku-dev/aichaku/internal/core/project"
	"github.com/aichaku-dev/aichaku/internal/defs"
	"github.com/aichaku-dev/aichaku/internal/discovery"
	"github.com/aichaku-dev/aichaku/internal/methodology"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available methodologies",
	Long: `List shows every methodology aichaku can scaffold, with the
default set marked. With --installed it instead inspects the project at
--root and shows what is scaffolded there, including orphaned
directories whose methodology is no longer available.

With --remote the list is fetched from the configured discovery source;
when the source is unreachable the built-in set is shown instead.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().Bool("installed", false, "show what is installed in the project instead of the catalog")
	listCmd.Flags().Bool("remote", false, "fetch the methodology list from the discovery source")
	listCmd.Flags().String("root", ".", "project root to inspect with --installed")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if getBoolFlag(cmd, "installed") {
		return listInstalled(cmd)
	}
	if getBoolFlag(cmd, "remote") {
		return listRemote(cmd)
	}
	return listCatalog(cmd)
}

// listCatalog prints the registry contents in declared order.
func listCatalog(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	reg := methodology.Default

	fmt.Fprintln(out, cliTitle.Render("Available methodologies"))
	for _, id := range reg.ListAll() {
		entry, ok := reg.Entry(id)
		if !ok {
			continue
		}
		marker := "  "
		if entry.Default {
			marker = cliOK.Render("* ")
		}
		fmt.Fprintf(out, "%s%s %s\n", marker, entry.Name, cliDim.Render("("+string(entry.ID)+")"))
		if entry.Description != "" {
			fmt.Fprintf(out, "    %s\n", cliDim.Render(entry.Description))
		}
	}
	fmt.Fprintln(out, cliDim.Render("* installed by default"))
	return nil
}

// listInstalled inspects the project and reports scaffolded methodologies.
func listInstalled(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	root := getStringFlag(cmd, "root")

	detector := project.NewDetector(methodology.Default, newCLILogger())
	if !detector.IsInstalled(root) {
		fmt.Fprintln(out, cliDim.Render("No .aichaku/ directory found. Run 'aichaku init' first."))
		return nil
	}

	inst, err := detector.Detect(root)
	if err != nil {
		return fmt.Errorf("inspect project: %w", err)
	}

	fmt.Fprintln(out, cliTitle.Render("Installed methodologies"))
	if len(inst.Methodologies) == 0 {
		fmt.Fprintln(out, cliDim.Render("  (none scaffolded yet)"))
	}
	for _, id := range inst.Methodologies {
		fmt.Fprintf(out, "  %s %s\n", registryDisplayName(id), cliDim.Render("("+string(id)+")"))
	}
	for _, orphan := range inst.Orphaned {
		fmt.Fprintf(out, "  %s %s\n",
			displayName(orphan),
			cliWarn.Render("(no longer available — kept as-is)"))
	}
	return nil
}

// listRemote fetches the methodology list from the discovery source
// configured for the project, falling back to the default source URL when
// the project has no discovery configuration.
func listRemote(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	sourceURL := config.DefaultDiscoveryURL
	timeout := time.Duration(config.DefaultDiscoveryTimeout) * time.Second
	configDir := filepath.Join(getStringFlag(cmd, "root"), defs.AichakuDir)
	if cfg, err := config.NewLoader().Load(configDir); err == nil {
		if cfg.Discovery.SourceURL != "" {
			sourceURL = cfg.Discovery.SourceURL
		}
		if cfg.Discovery.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.Discovery.TimeoutSeconds) * time.Second
		}
	}

	source := discovery.NewHTTPSource(sourceURL, &http.Client{Timeout: timeout})
	svc := discovery.NewService(source, methodology.Default, newCLILogger())

	ids, fromRemote := svc.Methodologies(cmd.Context())
	if fromRemote {
		fmt.Fprintln(out, cliTitle.Render("Methodologies (remote)"))
	} else {
		fmt.Fprintln(out, cliTitle.Render("Methodologies")+" "+cliWarn.Render("(remote unavailable, showing built-in)"))
	}
	for _, id := range ids {
		fmt.Fprintf(out, "  %s %s\n", registryDisplayName(id), cliDim.Render("("+string(id)+")"))
	}
	return nil
}
