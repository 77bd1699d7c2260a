package template

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aichaku-dev/aichaku/internal/defs"
	"github.com/aichaku-dev/aichaku/internal/methodology"
)

// Report summarizes the outcome of a deployment.
type Report struct {
	CreatedFiles []string
	SkippedFiles []string
}

// Deployer writes methodology documentation templates from the embedded
// asset filesystem into a project's .aichaku/methodologies/ tree.
//
// The registry entry for each methodology decides which files are deployed
// and in what order; the asset FS is only the byte source. A registry
// template missing from the assets is a packaging bug and fails the deploy.
type Deployer interface {
	// Deploy scaffolds the given methodologies under projectRoot.
	// Existing files are skipped unless the deployer was built with force.
	// If tmplCtx is provided and a Renderer is configured, assets with a
	// .tmpl suffix are rendered and written without the suffix.
	Deploy(ctx context.Context, projectRoot string, ids []methodology.ID, tmplCtx *Context) (*Report, error)

	// ExtractTemplate returns the raw content of a single asset by path
	// relative to the asset root (e.g. "shape-up/pitch.md").
	ExtractTemplate(name string) ([]byte, error)

	// ListTemplates returns the relative paths of all embedded assets.
	ListTemplates() []string
}

// deployer is the concrete implementation of Deployer.
type deployer struct {
	fsys     fs.FS
	registry *methodology.Registry
	renderer Renderer // optional: if set, .tmpl assets are rendered with Context
	force    bool     // if true, overwrite existing files (used for upgrades)
}

// NewDeployer creates a Deployer backed by the given filesystem and registry.
// In production the fs.FS comes from go:embed; in tests use testing/fstest.MapFS.
// A nil registry falls back to the compiled-in default registry.
func NewDeployer(fsys fs.FS, reg *methodology.Registry) Deployer {
	if reg == nil {
		reg = methodology.Default
	}
	return &deployer{fsys: fsys, registry: reg}
}

// NewDeployerWithRenderer creates a Deployer that renders .tmpl assets.
func NewDeployerWithRenderer(fsys fs.FS, reg *methodology.Registry, renderer Renderer) Deployer {
	d := NewDeployer(fsys, reg).(*deployer)
	d.renderer = renderer
	return d
}

// NewForceDeployer creates a Deployer that overwrites existing files.
// Used by the upgrade flow to refresh scaffolded documents in place.
func NewForceDeployer(fsys fs.FS, reg *methodology.Registry, renderer Renderer) Deployer {
	d := NewDeployer(fsys, reg).(*deployer)
	d.renderer = renderer
	d.force = true
	return d
}

// Deploy writes every registry-declared template of every requested
// methodology. Unknown ids contribute nothing, mirroring the registry's
// TemplatesFor contract; callers that need strict behavior check
// Exists before calling.
func (d *deployer) Deploy(ctx context.Context, projectRoot string, ids []methodology.ID, tmplCtx *Context) (*Report, error) {
	projectRoot = filepath.Clean(projectRoot)
	report := &Report{}

	for _, id := range ids {
		idCtx := tmplCtx
		if tmplCtx != nil {
			if entry, ok := d.registry.Entry(id); ok {
				idCtx = tmplCtx.forMethodology(string(entry.ID), entry.Name)
			}
		}

		for _, name := range d.registry.TemplatesFor(id) {
			// Check context cancellation before each file
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			default:
			}

			if err := d.deployFile(projectRoot, id, name, idCtx, report); err != nil {
				return report, err
			}
		}
	}

	return report, nil
}

// deployFile writes a single template file for one methodology.
func (d *deployer) deployFile(projectRoot string, id methodology.ID, name string, tmplCtx *Context, report *Report) error {
	destRel := path.Join(defs.AichakuDir, defs.MethodologiesDir, string(id), name)

	if err := validateDeployPath(projectRoot, destRel); err != nil {
		return err
	}

	content, err := d.assetContent(id, name, tmplCtx)
	if err != nil {
		return err
	}

	destPath := filepath.Join(projectRoot, filepath.FromSlash(destRel))

	// Existing file protection: scaffolded docs are living documents the
	// user edits, so a re-run must not clobber them. Upgrades opt out
	// via force.
	if !d.force {
		if _, statErr := os.Stat(destPath); statErr == nil {
			report.SkippedFiles = append(report.SkippedFiles, destRel)
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("template deploy mkdir %q: %w", filepath.Dir(destPath), err)
	}

	if err := os.WriteFile(destPath, content, 0o644); err != nil {
		return fmt.Errorf("template deploy write %q: %w", destPath, err)
	}

	report.CreatedFiles = append(report.CreatedFiles, destRel)
	return nil
}

// assetContent loads (and renders, when applicable) the asset bytes for a
// registry-declared template file.
func (d *deployer) assetContent(id methodology.ID, name string, tmplCtx *Context) ([]byte, error) {
	assetPath := path.Join(string(id), name)

	// Prefer the .tmpl variant when a renderer and context are available.
	if d.renderer != nil && tmplCtx != nil {
		tmplPath := assetPath + ".tmpl"
		if _, err := fs.Stat(d.fsys, tmplPath); err == nil {
			rendered, renderErr := d.renderer.Render(tmplPath, tmplCtx)
			if renderErr != nil {
				return nil, fmt.Errorf("template render %q: %w", tmplPath, renderErr)
			}
			return rendered, nil
		}
	}

	content, err := fs.ReadFile(d.fsys, assetPath)
	if err != nil {
		// Without a renderer a .tmpl asset is deployed raw, matching the
		// listing behavior of ListTemplates.
		if raw, rawErr := fs.ReadFile(d.fsys, assetPath+".tmpl"); rawErr == nil {
			return raw, nil
		}
		return nil, fmt.Errorf("%w: %s (registry entry %q declares it but the asset is missing)",
			ErrTemplateNotFound, assetPath, id)
	}
	return content, nil
}

// ExtractTemplate returns the content of a single named asset.
func (d *deployer) ExtractTemplate(name string) ([]byte, error) {
	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return data, nil
}

// ListTemplates returns relative paths of all files in the asset FS.
func (d *deployer) ListTemplates() []string {
	var list []string

	_ = fs.WalkDir(d.fsys, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors during listing
		}
		if p == "." || entry.IsDir() {
			return nil
		}
		// Strip .tmpl suffix to return deployment target paths
		target := p
		if before, ok := strings.CutSuffix(p, ".tmpl"); ok {
			target = before
		}
		list = append(list, target)
		return nil
	})

	return list
}

// validateDeployPath ensures a template path does not escape projectRoot.
func validateDeployPath(projectRoot, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}

	if strings.HasPrefix(cleaned, "..") || strings.Contains(cleaned, string(filepath.Separator)+"..") {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absProjectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}

	absPath := filepath.Join(absProjectRoot, cleaned)
	if !strings.HasPrefix(absPath, absProjectRoot+string(filepath.Separator)) && absPath != absProjectRoot {
		return fmt.Errorf("%w: %q escapes project root", ErrPathTraversal, relPath)
	}

	return nil
}
