package config

import (
	"errors"
	"testing"

	"github.com/aichaku-dev/aichaku/internal/methodology"
	"github.com/aichaku-dev/aichaku/pkg/models"
)

func testRegistry(t *testing.T) *methodology.Registry {
	t.Helper()

	r, err := methodology.NewRegistry(methodology.Definition{
		Entries: []methodology.Entry{
			{ID: "shape-up", Default: true, Templates: []string{"pitch.md"}},
			{ID: "scrum", Default: true, Templates: []string{"sprint-planning.md"}},
			{ID: "xp", Templates: []string{"pair-session.md"}},
		},
	})
	if err != nil {
		t.Fatalf("build test registry: %v", err)
	}
	return r
}

func TestValidateOK(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	cfg := NewDefaultConfig()
	cfg.Project.Name = "demo"
	cfg.Methodologies.Selected = []string{"shape-up", "xp"}

	if err := Validate(cfg, reg, map[string]bool{"project": true}); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		loaded  map[string]bool
		wantErr error
	}{
		{
			name:    "missing project name when section loaded",
			mutate:  func(c *Config) {},
			loaded:  map[string]bool{"project": true},
			wantErr: ErrInvalidConfig,
		},
		{
			name: "unknown methodology id",
			mutate: func(c *Config) {
				c.Methodologies.Selected = []string{"waterfall"}
			},
			wantErr: ErrUnknownMethodology,
		},
		{
			name: "duplicate selection",
			mutate: func(c *Config) {
				c.Methodologies.Selected = []string{"scrum", "scrum"}
			},
			wantErr: ErrInvalidConfig,
		},
		{
			name: "empty selection entry",
			mutate: func(c *Config) {
				c.Methodologies.Selected = []string{""}
			},
			wantErr: ErrInvalidConfig,
		},
		{
			name: "invalid scope",
			mutate: func(c *Config) {
				c.Project.Scope = models.InstallScope("remote")
			},
			wantErr: ErrInvalidScope,
		},
		{
			name: "discovery timeout out of range",
			mutate: func(c *Config) {
				c.Discovery.TimeoutSeconds = 999
			},
			wantErr: ErrInvalidConfig,
		},
		{
			name: "discovery enabled without url",
			mutate: func(c *Config) {
				c.Discovery.Enabled = true
				c.Discovery.SourceURL = ""
			},
			wantErr: ErrInvalidConfig,
		},
	}

	reg := testRegistry(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewDefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg, reg, tt.loaded)
			if err == nil {
				t.Fatalf("Validate() error = nil, want %v", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("errors.Is(err, %v) = false, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateEmptySelectionIsValid(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	cfg := NewDefaultConfig()

	// Empty selection means "use registry defaults" and must validate clean.
	if err := Validate(cfg, reg, nil); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}
