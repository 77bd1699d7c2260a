package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aichaku-dev/aichaku/internal/core/project"
	"github.com/aichaku-dev/aichaku/internal/methodology"
	"github.com/aichaku-dev/aichaku/internal/ui"
	"github.com/aichaku-dev/aichaku/internal/update"
	"github.com/aichaku-dev/aichaku/pkg/version"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade [path]",
	Short: "Refresh scaffolded methodology documentation",
	Long: `Upgrade re-deploys the documentation templates for the project's
selected methodologies, bringing them up to date with this aichaku
release. Documents in .aichaku/user/ and methodology directories that
are no longer available are left untouched.

With --check, upgrade only queries for a newer aichaku release and
reports the result without changing anything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpgrade,
}

func init() {
	upgradeCmd.Flags().Bool("check", false, "only check for a newer aichaku release")
	rootCmd.AddCommand(upgradeCmd)
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	if getBoolFlag(cmd, "check") {
		return runUpgradeCheck(cmd)
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	detector := project.NewDetector(methodology.Default, newCLILogger())
	if !detector.IsInstalled(root) {
		return fmt.Errorf("no .aichaku/ directory in %s; run 'aichaku init' first", root)
	}

	deployer, err := newEmbeddedDeployer(true)
	if err != nil {
		return err
	}

	progress := ui.NewProgress(ui.DefaultTheme(), ui.NewHeadlessManager())
	spin := progress.Spinner("Refreshing methodology documentation")

	upgrader := update.NewUpgrader(methodology.Default, detector, deployer, newCLILogger())
	result, err := upgrader.Upgrade(cmd.Context(), root)
	spin.Stop()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	refreshed := make([]string, len(result.Report.Valid))
	for i, id := range result.Report.Valid {
		refreshed[i] = registryDisplayName(id)
	}
	fmt.Fprintln(out, renderSuccessCard("Upgrade complete",
		renderKeyValueLines([]kvPair{
			{key: "Methodologies", value: joinComma(refreshed)},
			{key: "Files refreshed", value: fmt.Sprintf("%d", len(result.RefreshedFiles))},
		})))

	for _, id := range result.Report.Unknown {
		fmt.Fprintln(out, cliWarn.Render("! ")+
			fmt.Sprintf("%q is no longer available; its documents were not touched", id))
	}
	if len(result.Report.Orphaned) > 0 {
		fmt.Fprintln(out, cliWarn.Render("! ")+
			"orphaned methodology directories: "+strings.Join(result.Report.Orphaned, ", "))
	}
	return nil
}

// runUpgradeCheck queries the release endpoint and reports whether a newer
// aichaku version is available.
func runUpgradeCheck(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	checker := update.NewChecker(update.DefaultReleaseURL, nil)
	latest, err := checker.CheckLatest(cmd.Context())
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}

	current := version.GetVersion()
	if latest.IsNewer(current) {
		fmt.Fprintf(out, "%s %s → %s\n%s\n",
			cliWarn.Render("Update available:"), current, latest.Version,
			cliDim.Render(latest.URL))
		return nil
	}
	fmt.Fprintf(out, "%s aichaku %s is up to date\n", cliOK.Render("✓"), current)
	return nil
}
