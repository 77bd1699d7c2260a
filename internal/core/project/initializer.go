package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aichaku-dev/aichaku/internal/config"
	"github.com/aichaku-dev/aichaku/internal/defs"
	"github.com/aichaku-dev/aichaku/internal/methodology"
	"github.com/aichaku-dev/aichaku/internal/template"
	"github.com/aichaku-dev/aichaku/pkg/models"
)

// InitOptions configures the project initialization.
type InitOptions struct {
	ProjectRoot   string              // Absolute or relative path to the project root.
	ProjectName   string              // Name of the project; defaults to the root directory name.
	Methodologies []methodology.ID    // Explicit selection; empty means registry defaults.
	Scope         models.InstallScope // Install scope; defaults to local.
	Force         bool                // If true, allow reinitializing an existing project.
}

// InitResult summarizes the outcome of project initialization.
type InitResult struct {
	CreatedDirs   []string         // Directories that were created.
	CreatedFiles  []string         // Files that were created.
	SkippedFiles  []string         // Existing files left untouched.
	Methodologies []methodology.ID // The selection that was scaffolded.
	Warnings      []string         // Non-fatal warnings during initialization.
}

// Initializer handles project scaffolding and setup.
type Initializer interface {
	// Init scaffolds an Aichaku installation with the given options.
	Init(ctx context.Context, opts InitOptions) (*InitResult, error)
}

// projectInitializer is the concrete implementation of Initializer.
type projectInitializer struct {
	registry *methodology.Registry
	deployer template.Deployer
	logger   *slog.Logger
}

// NewInitializer creates an Initializer with the given dependencies.
// A nil registry falls back to the compiled-in default registry.
func NewInitializer(reg *methodology.Registry, deployer template.Deployer, logger *slog.Logger) Initializer {
	if reg == nil {
		reg = methodology.Default
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &projectInitializer{
		registry: reg,
		deployer: deployer,
		logger:   logger,
	}
}

// aichakuDirs lists the directories to create under .aichaku/.
var aichakuDirs = []string{
	"config",
	defs.MethodologiesDir,
	defs.UserDir,
}

// Init resolves the selection, creates the .aichaku/ tree, deploys the
// methodology templates, and persists the project configuration.
func (p *projectInitializer) Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	root, err := p.resolveRoot(opts.ProjectRoot)
	if err != nil {
		return nil, err
	}

	aichakuRoot := filepath.Join(root, defs.AichakuDir)
	if _, err := os.Stat(aichakuRoot); err == nil && !opts.Force {
		return nil, fmt.Errorf("%w: %s (use --force to reinitialize)", ErrProjectExists, aichakuRoot)
	}

	selection, err := p.resolveSelection(opts.Methodologies)
	if err != nil {
		return nil, err
	}

	result := &InitResult{Methodologies: selection}

	// Create the directory skeleton.
	for _, dir := range aichakuDirs {
		path := filepath.Join(aichakuRoot, dir)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create %s: %v", ErrInitFailed, path, err)
		}
		result.CreatedDirs = append(result.CreatedDirs, filepath.Join(defs.AichakuDir, dir))
	}

	// Deploy methodology templates.
	if p.deployer != nil {
		name := opts.ProjectName
		if name == "" {
			name = filepath.Base(root)
		}
		tmplCtx := template.NewContext(
			template.WithProjectName(name),
			template.WithProjectRoot(root),
		)

		report, err := p.deployer.Deploy(ctx, root, selection, tmplCtx)
		if err != nil {
			return nil, fmt.Errorf("%w: deploy templates: %v", ErrInitFailed, err)
		}
		result.CreatedFiles = append(result.CreatedFiles, report.CreatedFiles...)
		result.SkippedFiles = append(result.SkippedFiles, report.SkippedFiles...)
		if len(report.SkippedFiles) > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%d existing file(s) left untouched", len(report.SkippedFiles)))
		}
	}

	// Persist the configuration.
	if err := p.writeConfig(root, opts, selection); err != nil {
		return nil, err
	}
	result.CreatedFiles = append(result.CreatedFiles,
		filepath.Join(defs.AichakuDir, "config", defs.ProjectYAML),
		filepath.Join(defs.AichakuDir, "config", defs.MethodologiesYAML),
		filepath.Join(defs.AichakuDir, "config", defs.DiscoveryYAML),
	)

	p.logger.Info("project initialized",
		"root", root,
		"methodologies", len(selection),
		"files", len(result.CreatedFiles))

	return result, nil
}

// resolveRoot validates and normalizes the project root path.
func (p *projectInitializer) resolveRoot(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	return abs, nil
}

// resolveSelection validates an explicit selection against the registry,
// or falls back to the registry defaults when empty. Unlike the registry's
// own total TemplatesFor, an unknown id here is a user error and is
// rejected by name.
func (p *projectInitializer) resolveSelection(ids []methodology.ID) ([]methodology.ID, error) {
	if len(ids) == 0 {
		return p.registry.ListDefaults(), nil
	}
	for _, id := range ids {
		if !p.registry.Exists(id) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMethodology, id)
		}
	}
	out := make([]methodology.ID, len(ids))
	copy(out, ids)
	return out, nil
}

// writeConfig persists the initial configuration through the config manager.
func (p *projectInitializer) writeConfig(root string, opts InitOptions, selection []methodology.ID) error {
	mgr := config.NewManager(p.registry)
	cfg, err := mgr.Load(root)
	if err != nil {
		return fmt.Errorf("%w: load config: %v", ErrInitFailed, err)
	}

	name := opts.ProjectName
	if name == "" {
		name = filepath.Base(root)
	}
	scope := opts.Scope
	if scope == "" {
		scope = models.ScopeLocal
	}

	cfg.Project.Name = name
	cfg.Project.Scope = scope
	cfg.Project.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	selected := make([]string, len(selection))
	for i, id := range selection {
		selected[i] = string(id)
	}
	cfg.Methodologies.Selected = selected

	if err := mgr.SetSection("project", cfg.Project); err != nil {
		return fmt.Errorf("%w: %v", ErrInitFailed, err)
	}
	if err := mgr.SetSection("methodologies", cfg.Methodologies); err != nil {
		return fmt.Errorf("%w: %v", ErrInitFailed, err)
	}
	if err := mgr.Save(); err != nil {
		return fmt.Errorf("%w: save config: %v", ErrInitFailed, err)
	}
	return nil
}
