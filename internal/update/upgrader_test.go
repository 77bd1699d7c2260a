package update

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/aichaku-dev/aichaku/internal/core/project"
	"github.com/aichaku-dev/aichaku/internal/methodology"
	"github.com/aichaku-dev/aichaku/internal/template"
)

func upgradeTestRegistry(t *testing.T) *methodology.Registry {
	t.Helper()

	r, err := methodology.NewRegistry(methodology.Definition{
		Entries: []methodology.Entry{
			{ID: "shape-up", Name: "Shape Up", Default: true, Templates: []string{"pitch.md"}},
			{ID: "kanban", Name: "Kanban", Templates: []string{"kanban-board.md"}},
		},
	})
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return r
}

func upgradeTestFS() fstest.MapFS {
	return fstest.MapFS{
		"shape-up/pitch.md":      &fstest.MapFile{Data: []byte("# Pitch v2\n")},
		"kanban/kanban-board.md": &fstest.MapFile{Data: []byte("# Board v2\n")},
	}
}

// scaffold writes a minimal existing installation under root.
func scaffold(t *testing.T, root string, methodologies []string, selectedYAML string) {
	t.Helper()

	for _, m := range methodologies {
		if err := os.MkdirAll(filepath.Join(root, ".aichaku", "methodologies", m), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	cfgDir := filepath.Join(root, ".aichaku", "config")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if selectedYAML != "" {
		if err := os.WriteFile(filepath.Join(cfgDir, "methodologies.yaml"), []byte(selectedYAML), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestValidateSelection(t *testing.T) {
	t.Parallel()

	u := NewUpgrader(upgradeTestRegistry(t), nil, nil, nil)
	report := u.ValidateSelection([]methodology.ID{"shape-up", "rup", "kanban"})

	if !slices.Equal(report.Valid, []methodology.ID{"shape-up", "kanban"}) {
		t.Errorf("Valid = %v", report.Valid)
	}
	if !slices.Equal(report.Unknown, []methodology.ID{"rup"}) {
		t.Errorf("Unknown = %v", report.Unknown)
	}
	if report.Clean() {
		t.Error("Clean() = true with unknown entries")
	}
}

func TestUpgradeRefreshesValidMethodologies(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	scaffold(t, root, []string{"shape-up", "rup"},
		"methodologies:\n  selected:\n    - shape-up\n    - rup\n")

	// Stale template that the force deployer must refresh.
	stale := filepath.Join(root, ".aichaku", "methodologies", "shape-up", "pitch.md")
	if err := os.WriteFile(stale, []byte("# Pitch v1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := upgradeTestRegistry(t)
	fsys := upgradeTestFS()
	u := NewUpgrader(reg,
		project.NewDetector(reg, nil),
		template.NewForceDeployer(fsys, reg, template.NewRenderer(fsys)),
		nil)

	result, err := u.Upgrade(context.Background(), root)
	if err != nil {
		t.Fatalf("Upgrade() error = %v", err)
	}

	if !slices.Equal(result.Report.Valid, []methodology.ID{"shape-up"}) {
		t.Errorf("Report.Valid = %v, want [shape-up]", result.Report.Valid)
	}
	if !slices.Equal(result.Report.Unknown, []methodology.ID{"rup"}) {
		t.Errorf("Report.Unknown = %v, want [rup]", result.Report.Unknown)
	}
	if !slices.Equal(result.Report.Orphaned, []string{"rup"}) {
		t.Errorf("Report.Orphaned = %v, want [rup]", result.Report.Orphaned)
	}

	data, err := os.ReadFile(stale)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# Pitch v2\n" {
		t.Errorf("pitch.md = %q, want refreshed content", data)
	}
}

func TestUpgradeEmptySelectionUsesDefaults(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	scaffold(t, root, nil, "")

	reg := upgradeTestRegistry(t)
	fsys := upgradeTestFS()
	u := NewUpgrader(reg, nil, template.NewForceDeployer(fsys, reg, template.NewRenderer(fsys)), nil)

	result, err := u.Upgrade(context.Background(), root)
	if err != nil {
		t.Fatalf("Upgrade() error = %v", err)
	}
	if !slices.Equal(result.Report.Valid, []methodology.ID{"shape-up"}) {
		t.Errorf("Report.Valid = %v, want registry defaults", result.Report.Valid)
	}
	if len(result.RefreshedFiles) != 1 {
		t.Errorf("RefreshedFiles = %v, want one file", result.RefreshedFiles)
	}
}
