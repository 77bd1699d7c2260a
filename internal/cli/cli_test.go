package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aichaku-dev/aichaku/internal/defs"
)

// execute runs the root command with args and captures its output.
// The cli package shares a single rootCmd, so these tests do not run in
// parallel.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag in the command tree to its default so
// that consecutive Execute calls in one process do not leak values.
// Slice flags accumulate across parses, hence the Replace path.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(interface{ Replace([]string) error }); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestListCatalog(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	for _, want := range []string{"Shape Up", "(shape-up)", "Kanban", "(xp)", "installed by default"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestLearnPlain(t *testing.T) {
	out, err := execute(t, "learn", "shape-up", "--plain")
	if err != nil {
		t.Fatalf("learn failed: %v", err)
	}
	if !strings.Contains(out, "# Shape Up") {
		t.Errorf("learn output missing overview heading:\n%s", out)
	}
}

func TestLearnUnknownMethodology(t *testing.T) {
	_, err := execute(t, "learn", "waterfall")
	if err == nil {
		t.Fatal("learn with unknown methodology succeeded, want error")
	}
	if !strings.Contains(err.Error(), "waterfall") || !strings.Contains(err.Error(), "shape-up") {
		t.Errorf("error should name the unknown id and the available ids, got: %v", err)
	}
}

func TestInitNonInteractiveScaffoldsDefaults(t *testing.T) {
	root := t.TempDir()

	out, err := execute(t, "init", root, "--non-interactive", "--name", "demo")
	if err != nil {
		t.Fatalf("init failed: %v\noutput:\n%s", err, out)
	}

	// Default methodologies scaffolded, non-defaults not.
	for _, id := range []string{"shape-up", "scrum", "kanban", "lean"} {
		dir := filepath.Join(root, defs.AichakuDir, defs.MethodologiesDir, id)
		if _, statErr := os.Stat(dir); statErr != nil {
			t.Errorf("expected scaffolded directory %s: %v", dir, statErr)
		}
	}
	for _, id := range []string{"xp", "scrumban"} {
		dir := filepath.Join(root, defs.AichakuDir, defs.MethodologiesDir, id)
		if _, statErr := os.Stat(dir); statErr == nil {
			t.Errorf("non-default methodology %s should not be scaffolded", id)
		}
	}

	cfgFile := filepath.Join(root, defs.AichakuDir, "config", defs.ProjectYAML)
	data, readErr := os.ReadFile(cfgFile)
	if readErr != nil {
		t.Fatalf("project config not written: %v", readErr)
	}
	if !strings.Contains(string(data), "demo") {
		t.Errorf("project config missing project name:\n%s", data)
	}
}

func TestInitExplicitSelection(t *testing.T) {
	root := t.TempDir()

	_, err := execute(t, "init", root, "--methodologies", "xp", "--non-interactive")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, statErr := os.Stat(filepath.Join(root, defs.AichakuDir, defs.MethodologiesDir, "xp")); statErr != nil {
		t.Errorf("xp should be scaffolded: %v", statErr)
	}
	if _, statErr := os.Stat(filepath.Join(root, defs.AichakuDir, defs.MethodologiesDir, "shape-up")); statErr == nil {
		t.Error("shape-up should not be scaffolded with an explicit xp selection")
	}
}

func TestInitRejectsUnknownMethodology(t *testing.T) {
	root := t.TempDir()

	_, err := execute(t, "init", root, "--methodologies", "waterfall", "--non-interactive")
	if err == nil {
		t.Fatal("init with unknown methodology succeeded, want error")
	}
	if !strings.Contains(err.Error(), "waterfall") {
		t.Errorf("error should name the unknown id, got: %v", err)
	}
}

func TestInitRefusesReinitWithoutForce(t *testing.T) {
	root := t.TempDir()

	if _, err := execute(t, "init", root, "--methodologies", "kanban", "--non-interactive"); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if _, err := execute(t, "init", root, "--methodologies", "kanban", "--non-interactive"); err == nil {
		t.Fatal("second init without --force succeeded, want error")
	}
	if out, err := execute(t, "init", root, "--methodologies", "kanban", "--non-interactive", "--force"); err != nil {
		t.Fatalf("init --force failed: %v\noutput:\n%s", err, out)
	}
}

func TestListInstalled(t *testing.T) {
	root := t.TempDir()

	if _, err := execute(t, "init", root, "--methodologies", "scrum", "--non-interactive"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	// An orphaned directory from an older release.
	orphan := filepath.Join(root, defs.AichakuDir, defs.MethodologiesDir, "six-sigma")
	if err := os.MkdirAll(orphan, 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "list", "--installed", "--root", root)
	if err != nil {
		t.Fatalf("list --installed failed: %v", err)
	}
	if !strings.Contains(out, "Scrum") {
		t.Errorf("installed listing missing Scrum:\n%s", out)
	}
	if !strings.Contains(out, "Six Sigma") || !strings.Contains(out, "no longer available") {
		t.Errorf("installed listing should flag the orphaned directory:\n%s", out)
	}
}

func TestListInstalledWithoutProject(t *testing.T) {
	out, err := execute(t, "list", "--installed", "--root", t.TempDir())
	if err != nil {
		t.Fatalf("list --installed failed: %v", err)
	}
	if !strings.Contains(out, "aichaku init") {
		t.Errorf("should point the user at init:\n%s", out)
	}
}

func TestUpgradeRefreshesTemplates(t *testing.T) {
	root := t.TempDir()

	if _, err := execute(t, "init", root, "--methodologies", "kanban", "--non-interactive"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	// Simulate a stale template from a previous release.
	board := filepath.Join(root, defs.AichakuDir, defs.MethodologiesDir, "kanban", "kanban-board.md")
	if err := os.WriteFile(board, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	// User documents must survive the upgrade untouched.
	userDoc := filepath.Join(root, defs.AichakuDir, defs.UserDir, "notes.md")
	if err := os.WriteFile(userDoc, []byte("my notes"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "upgrade", root)
	if err != nil {
		t.Fatalf("upgrade failed: %v\noutput:\n%s", err, out)
	}

	refreshed, err := os.ReadFile(board)
	if err != nil {
		t.Fatal(err)
	}
	if string(refreshed) == "stale" {
		t.Error("upgrade did not refresh the stale template")
	}

	kept, err := os.ReadFile(userDoc)
	if err != nil {
		t.Fatal(err)
	}
	if string(kept) != "my notes" {
		t.Error("upgrade modified a user document")
	}
}

func TestIntegrateWritesDirectiveBlock(t *testing.T) {
	root := t.TempDir()

	if _, err := execute(t, "init", root, "--methodologies", "scrum", "--non-interactive"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	out, err := execute(t, "integrate", root)
	if err != nil {
		t.Fatalf("integrate failed: %v\noutput:\n%s", err, out)
	}

	data, err := os.ReadFile(filepath.Join(root, defs.ClaudeMD))
	if err != nil {
		t.Fatalf("CLAUDE.md not written: %v", err)
	}
	if !strings.Contains(string(data), "Scrum") {
		t.Errorf("CLAUDE.md missing the stored selection:\n%s", data)
	}
}

func TestIntegrateRequiresInstallation(t *testing.T) {
	if _, err := execute(t, "integrate", t.TempDir()); err == nil {
		t.Fatal("integrate without installation succeeded, want error")
	}
}

func TestUpgradeRequiresInstallation(t *testing.T) {
	_, err := execute(t, "upgrade", t.TempDir())
	if err == nil {
		t.Fatal("upgrade without installation succeeded, want error")
	}
	if !strings.Contains(err.Error(), "aichaku init") {
		t.Errorf("error should point the user at init, got: %v", err)
	}
}
