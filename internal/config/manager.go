package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aichaku-dev/aichaku/internal/defs"
	"github.com/aichaku-dev/aichaku/internal/methodology"
	"github.com/aichaku-dev/aichaku/pkg/models"
)

// managerState represents the lifecycle state of the Manager.
type managerState int

const (
	stateUninitialized managerState = iota
	stateInitialized
)

// Manager provides thread-safe configuration management.
// It must be initialized via Load() before use.
type Manager struct {
	mu             sync.RWMutex
	config         *Config
	root           string
	state          managerState
	loader         *Loader
	registry       *methodology.Registry
	loadedSections map[string]bool
}

// NewManager creates a new Manager in uninitialized state. A nil registry
// falls back to the compiled-in default registry.
func NewManager(reg *methodology.Registry) *Manager {
	if reg == nil {
		reg = methodology.Default
	}
	return &Manager{
		loader:   NewLoader(),
		registry: reg,
		state:    stateUninitialized,
	}
}

// Load reads configuration from the project root's .aichaku/ directory.
// It merges file values with compiled defaults and applies environment
// variable overrides. The configuration is validated before being stored.
func (m *Manager) Load(projectRoot string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	configDir := filepath.Join(filepath.Clean(projectRoot), defs.AichakuDir)

	// Support AICHAKU_CONFIG_DIR environment variable override
	if envDir := os.Getenv("AICHAKU_CONFIG_DIR"); envDir != "" {
		configDir = filepath.Clean(envDir)
	}

	cfg, err := m.loader.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Track which sections were loaded from files
	m.loadedSections = m.loader.LoadedSections()

	// Apply environment variable overrides (higher priority than files)
	applyEnvOverrides(cfg)

	// Validate the merged configuration against the registry
	if err := Validate(cfg, m.registry, m.loadedSections); err != nil {
		return nil, err
	}

	m.config = cfg
	m.root = projectRoot
	m.state = stateInitialized

	return cfg, nil
}

// Get returns the current in-memory configuration.
// Returns nil if the manager has not been initialized via Load().
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// SelectedMethodologies resolves the effective methodology selection:
// the user's stored selection when present, otherwise the registry
// defaults. Returns ErrNotInitialized if Load() has not been called.
func (m *Manager) SelectedMethodologies() ([]methodology.ID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state == stateUninitialized {
		return nil, ErrNotInitialized
	}

	if len(m.config.Methodologies.Selected) == 0 {
		return m.registry.ListDefaults(), nil
	}

	ids := make([]methodology.ID, len(m.config.Methodologies.Selected))
	for i, s := range m.config.Methodologies.Selected {
		ids[i] = methodology.ID(s)
	}
	return ids, nil
}

// GetSection returns a named configuration section.
// Returns ErrNotInitialized if Load() has not been called.
// Returns ErrSectionNotFound if the section name is invalid.
func (m *Manager) GetSection(name string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state == stateUninitialized {
		return nil, ErrNotInitialized
	}

	switch name {
	case "project":
		return m.config.Project, nil
	case "methodologies":
		return m.config.Methodologies, nil
	case "discovery":
		return m.config.Discovery, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, name)
	}
}

// SetSection updates a named configuration section in memory.
// Returns ErrNotInitialized if Load() has not been called.
// Returns ErrSectionNotFound if the section name is invalid.
// Returns ErrSectionTypeMismatch if the value type does not match.
func (m *Manager) SetSection(name string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	switch name {
	case "project":
		v, ok := value.(models.ProjectConfig)
		if !ok {
			return fmt.Errorf("%w: section %s expects models.ProjectConfig", ErrSectionTypeMismatch, name)
		}
		m.config.Project = v
	case "methodologies":
		v, ok := value.(models.MethodologiesConfig)
		if !ok {
			return fmt.Errorf("%w: section %s expects models.MethodologiesConfig", ErrSectionTypeMismatch, name)
		}
		m.config.Methodologies = v
	case "discovery":
		v, ok := value.(models.DiscoveryConfig)
		if !ok {
			return fmt.Errorf("%w: section %s expects models.DiscoveryConfig", ErrSectionTypeMismatch, name)
		}
		m.config.Discovery = v
	default:
		return fmt.Errorf("%w: %s", ErrSectionNotFound, name)
	}

	return nil
}

// Save persists the current configuration to disk atomically.
// Each section is saved to its corresponding YAML file using
// temp file + os.Rename for atomic writes.
// Returns ErrNotInitialized if Load() has not been called.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	sectionsDir := filepath.Join(filepath.Clean(m.root), defs.AichakuDir, "config")

	if err := os.MkdirAll(sectionsDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := saveSection(sectionsDir, defs.ProjectYAML, projectFileWrapper{Project: m.config.Project}); err != nil {
		return err
	}
	if err := saveSection(sectionsDir, defs.MethodologiesYAML, methodologiesFileWrapper{Methodologies: m.config.Methodologies}); err != nil {
		return err
	}
	if err := saveSection(sectionsDir, defs.DiscoveryYAML, discoveryFileWrapper{Discovery: m.config.Discovery}); err != nil {
		return err
	}

	return nil
}

// saveSection marshals the wrapper and writes it atomically via temp+rename.
func saveSection(dir, filename string, wrapper any) error {
	data, err := yaml.Marshal(wrapper)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filename, err)
	}

	path := filepath.Join(dir, filename)
	tmp, err := os.CreateTemp(dir, filename+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", filename, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", filename, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", filename, err)
	}

	return nil
}

// applyEnvOverrides applies AICHAKU_* environment variables on top of the
// merged configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AICHAKU_DISCOVERY_URL"); v != "" {
		cfg.Discovery.SourceURL = v
	}
	if v := os.Getenv("AICHAKU_DISCOVERY_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Discovery.Enabled = b
		}
	}
	if v := os.Getenv("AICHAKU_SCOPE"); v != "" {
		cfg.Project.Scope = models.InstallScope(v)
	}
}
