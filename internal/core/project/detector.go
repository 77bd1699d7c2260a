package project

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/aichaku-dev/aichaku/internal/defs"
	"github.com/aichaku-dev/aichaku/internal/methodology"
)

// Installation describes an existing .aichaku/ tree found in a project.
type Installation struct {
	Root          string          // project root containing .aichaku/
	Methodologies []methodology.ID // scaffolded methodology directories, registry order first
	Orphaned      []string        // methodology directories no longer in the registry
}

// Detector identifies existing Aichaku installations on the filesystem.
type Detector interface {
	// IsInstalled reports whether root contains a .aichaku/ directory.
	IsInstalled(root string) bool

	// Detect inspects root and returns what is scaffolded there. The
	// upgrade flow uses Orphaned to report methodologies that were removed
	// from the registry after the user installed them.
	Detect(root string) (*Installation, error)
}

// installDetector is the concrete implementation of Detector.
type installDetector struct {
	registry *methodology.Registry
	logger   *slog.Logger
}

// NewDetector creates a Detector backed by the given registry.
// A nil registry falls back to the compiled-in default registry.
func NewDetector(reg *methodology.Registry, logger *slog.Logger) Detector {
	if reg == nil {
		reg = methodology.Default
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &installDetector{registry: reg, logger: logger}
}

// IsInstalled reports whether root contains a .aichaku/ directory.
func (d *installDetector) IsInstalled(root string) bool {
	info, err := os.Stat(filepath.Join(filepath.Clean(root), defs.AichakuDir))
	return err == nil && info.IsDir()
}

// Detect scans .aichaku/methodologies/ and classifies each directory as a
// known methodology or an orphan.
func (d *installDetector) Detect(root string) (*Installation, error) {
	root = filepath.Clean(root)
	inst := &Installation{Root: root}

	methodologiesDir := filepath.Join(root, defs.AichakuDir, defs.MethodologiesDir)
	entries, err := os.ReadDir(methodologiesDir)
	if err != nil {
		if os.IsNotExist(err) {
			// Installed but nothing scaffolded yet, or not installed at all.
			return inst, nil
		}
		return nil, err
	}

	present := make(map[methodology.ID]bool)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := methodology.ID(entry.Name())
		if d.registry.Exists(id) {
			present[id] = true
		} else {
			inst.Orphaned = append(inst.Orphaned, entry.Name())
		}
	}

	// Report known methodologies in registry order for stable output.
	for _, id := range d.registry.ListAll() {
		if present[id] {
			inst.Methodologies = append(inst.Methodologies, id)
		}
	}
	sort.Strings(inst.Orphaned)

	d.logger.Debug("detected installation",
		"root", root,
		"methodologies", len(inst.Methodologies),
		"orphaned", len(inst.Orphaned))

	return inst, nil
}
