package project

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aichaku-dev/aichaku/internal/defs"
	"github.com/aichaku-dev/aichaku/internal/methodology"
)

// Markers delimit the aichaku-managed block inside CLAUDE.md. Everything
// between them is replaced on each integrate run; everything outside is
// the user's and is never touched.
const (
	integrationStartMarker = "<!-- aichaku:start -->"
	integrationEndMarker   = "<!-- aichaku:end -->"
)

// IntegrateResult summarizes an integrate run.
type IntegrateResult struct {
	Path          string           // path of the directive file that was written
	Created       bool             // true when the file did not exist before
	Methodologies []methodology.ID // selection written into the block
}

// Integrator maintains the methodology guidance block in the project's
// AI assistant directive file (CLAUDE.md).
type Integrator interface {
	// Integrate writes or refreshes the guidance block for the given
	// selection. An empty selection falls back to the registry defaults.
	Integrate(root string, ids []methodology.ID) (*IntegrateResult, error)
}

type claudeIntegrator struct {
	registry *methodology.Registry
	logger   *slog.Logger
}

// NewIntegrator creates an Integrator backed by the given registry.
// A nil registry falls back to the compiled-in default registry.
func NewIntegrator(reg *methodology.Registry, logger *slog.Logger) Integrator {
	if reg == nil {
		reg = methodology.Default
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &claudeIntegrator{registry: reg, logger: logger}
}

// Integrate rewrites the marked block in CLAUDE.md, creating the file when
// absent. Content outside the markers survives byte for byte.
func (c *claudeIntegrator) Integrate(root string, ids []methodology.ID) (*IntegrateResult, error) {
	root = filepath.Clean(root)
	if _, err := os.Stat(filepath.Join(root, defs.AichakuDir)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotInstalled, root)
	}

	if len(ids) == 0 {
		ids = c.registry.ListDefaults()
	}
	for _, id := range ids {
		if !c.registry.Exists(id) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMethodology, id)
		}
	}

	path := filepath.Join(root, defs.ClaudeMD)
	result := &IntegrateResult{Path: path, Methodologies: ids}

	existing, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		result.Created = true
	case err != nil:
		return nil, fmt.Errorf("integrate: read %s: %w", path, err)
	}

	updated := spliceBlock(string(existing), c.renderBlock(ids))
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return nil, fmt.Errorf("integrate: write %s: %w", path, err)
	}

	c.logger.Info("directive file updated",
		"path", path,
		"created", result.Created,
		"methodologies", len(ids))
	return result, nil
}

// renderBlock produces the managed block, markers included.
func (c *claudeIntegrator) renderBlock(ids []methodology.ID) string {
	var b strings.Builder
	b.WriteString(integrationStartMarker + "\n")
	b.WriteString("## Project Methodologies\n\n")
	b.WriteString("This project uses Aichaku. Follow these methodologies and keep the\n")
	b.WriteString("documents under `" + defs.AichakuDir + "/" + defs.MethodologiesDir + "/` up to date:\n\n")
	for _, id := range ids {
		entry, ok := c.registry.Entry(id)
		if !ok {
			continue
		}
		if entry.Description != "" {
			fmt.Fprintf(&b, "- **%s** (`%s`): %s\n", entry.Name, entry.ID, entry.Description)
		} else {
			fmt.Fprintf(&b, "- **%s** (`%s`)\n", entry.Name, entry.ID)
		}
	}
	b.WriteString("\nUser documents under `" + defs.AichakuDir + "/" + defs.UserDir + "/` are authoritative.\n")
	b.WriteString(integrationEndMarker)
	return b.String()
}

// spliceBlock replaces the marked region of content with block, or appends
// the block when no markers are present. A start marker without an end
// marker is treated as absent rather than eating the rest of the file.
func spliceBlock(content, block string) string {
	start := strings.Index(content, integrationStartMarker)
	if start >= 0 {
		rest := content[start:]
		if end := strings.Index(rest, integrationEndMarker); end >= 0 {
			after := rest[end+len(integrationEndMarker):]
			return content[:start] + block + after
		}
	}

	if content == "" {
		return block + "\n"
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + block + "\n"
}
