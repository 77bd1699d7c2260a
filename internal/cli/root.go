// Package cli wires the aichaku command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aichaku-dev/aichaku/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "aichaku",
	Short: "Aichaku: methodology documentation for AI-assisted projects",
	Long: `Aichaku scaffolds and maintains project-management methodology
documentation (Shape Up, Scrum, Kanban, Lean, XP, Scrumban) inside
projects that use an AI coding assistant.

It installs per-methodology document templates under .aichaku/, keeps
them up to date across releases, and tells the assistant which
methodologies a project follows.`,
	Version: version.GetVersion(),
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("aichaku %s\n", version.GetVersion()))
}

// newCLILogger returns the slog logger used by command implementations.
// Logging is silent unless AICHAKU_DEBUG is set, keeping command output
// clean for scripting.
func newCLILogger() *slog.Logger {
	if os.Getenv("AICHAKU_DEBUG") != "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// getStringSliceFlag retrieves a string slice flag value from the command.
func getStringSliceFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return val
}
