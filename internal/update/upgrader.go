package update

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aichaku-dev/aichaku/internal/config"
	"github.com/aichaku-dev/aichaku/internal/core/project"
	"github.com/aichaku-dev/aichaku/internal/defs"
	"github.com/aichaku-dev/aichaku/internal/methodology"
	"github.com/aichaku-dev/aichaku/internal/template"
)

// SelectionReport compares a stored methodology selection against the
// current registry.
type SelectionReport struct {
	Valid    []methodology.ID // selection entries the registry still knows
	Unknown  []methodology.ID // selection entries no longer in the registry
	Orphaned []string         // scaffolded directories with no registry entry
}

// Clean reports whether the stored state fully matches the registry.
func (r *SelectionReport) Clean() bool {
	return len(r.Unknown) == 0 && len(r.Orphaned) == 0
}

// UpgradeResult summarizes an upgrade run.
type UpgradeResult struct {
	Report         *SelectionReport
	RefreshedFiles []string
}

// Upgrader refreshes an existing installation: it validates the stored
// selection against the registry and force-redeploys templates for the
// methodologies that survive.
type Upgrader struct {
	registry *methodology.Registry
	detector project.Detector
	deployer template.Deployer
	logger   *slog.Logger
}

// NewUpgrader creates an Upgrader. A nil registry falls back to the
// compiled-in default; the deployer should be a force deployer so stale
// templates are refreshed in place.
func NewUpgrader(reg *methodology.Registry, detector project.Detector, deployer template.Deployer, logger *slog.Logger) *Upgrader {
	if reg == nil {
		reg = methodology.Default
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Upgrader{
		registry: reg,
		detector: detector,
		deployer: deployer,
		logger:   logger,
	}
}

// ValidateSelection splits the stored selection into entries the registry
// still knows and entries that have been removed since the user's last run.
func (u *Upgrader) ValidateSelection(selected []methodology.ID) *SelectionReport {
	report := &SelectionReport{}
	for _, id := range selected {
		if u.registry.Exists(id) {
			report.Valid = append(report.Valid, id)
		} else {
			report.Unknown = append(report.Unknown, id)
		}
	}
	return report
}

// Upgrade validates the stored selection, refreshes the surviving
// methodologies' templates in place, and returns what changed. User
// documents outside the registry's template lists are never touched.
func (u *Upgrader) Upgrade(ctx context.Context, projectRoot string) (*UpgradeResult, error) {
	// Read the stored configuration without registry validation: the whole
	// point here is to detect selections the registry no longer accepts,
	// which the strict config manager would reject at load time.
	cfg, err := config.NewLoader().Load(filepath.Join(filepath.Clean(projectRoot), defs.AichakuDir))
	if err != nil {
		return nil, fmt.Errorf("upgrade: %w", err)
	}

	selected := make([]methodology.ID, len(cfg.Methodologies.Selected))
	for i, s := range cfg.Methodologies.Selected {
		selected[i] = methodology.ID(s)
	}
	if len(selected) == 0 {
		selected = u.registry.ListDefaults()
	}

	report := u.ValidateSelection(selected)

	if u.detector != nil {
		inst, err := u.detector.Detect(projectRoot)
		if err != nil {
			return nil, fmt.Errorf("upgrade: detect installation: %w", err)
		}
		report.Orphaned = inst.Orphaned
	}

	for _, id := range report.Unknown {
		u.logger.Warn("stored methodology no longer in registry, skipping", "id", id)
	}

	result := &UpgradeResult{Report: report}

	if u.deployer != nil && len(report.Valid) > 0 {
		tmplCtx := template.NewContext(
			template.WithProjectName(cfg.Project.Name),
			template.WithProjectRoot(projectRoot),
		)
		deployReport, err := u.deployer.Deploy(ctx, projectRoot, report.Valid, tmplCtx)
		if err != nil {
			return nil, fmt.Errorf("upgrade: refresh templates: %w", err)
		}
		result.RefreshedFiles = deployReport.CreatedFiles
	}

	u.logger.Info("upgrade complete",
		"root", projectRoot,
		"refreshed", len(result.RefreshedFiles),
		"unknown", len(report.Unknown),
		"orphaned", len(report.Orphaned))

	return result, nil
}
