package config

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aichaku-dev/aichaku/internal/defs"
)

// Loader reads configuration from YAML section files.
// It is thread-safe via sync.RWMutex.
type Loader struct {
	mu             sync.RWMutex
	loadedSections map[string]bool
}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads all configuration section files from the given .aichaku
// directory and returns a merged Config with defaults applied for missing
// fields. Missing files use default values. Invalid YAML files are skipped
// with a warning.
func (l *Loader) Load(configDir string) (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.loadedSections = make(map[string]bool)
	cfg := NewDefaultConfig()

	sectionsDir := filepath.Join(filepath.Clean(configDir), "config")

	// If the config directory does not exist, return defaults
	if _, err := os.Stat(sectionsDir); os.IsNotExist(err) {
		slog.Warn("config directory not found, using defaults", "path", sectionsDir)
		return cfg, nil
	}

	l.loadProjectSection(sectionsDir, cfg)
	l.loadMethodologiesSection(sectionsDir, cfg)
	l.loadDiscoverySection(sectionsDir, cfg)

	return cfg, nil
}

// LoadedSections returns a copy of the map indicating which sections
// were successfully loaded from YAML files.
func (l *Loader) LoadedSections() map[string]bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]bool, len(l.loadedSections))
	maps.Copy(result, l.loadedSections)
	return result
}

// loadProjectSection loads the project configuration section from project.yaml.
func (l *Loader) loadProjectSection(dir string, cfg *Config) {
	wrapper := &projectFileWrapper{Project: cfg.Project}
	loaded, err := loadYAMLFile(dir, defs.ProjectYAML, wrapper)
	if err != nil {
		slog.Warn("failed to load project config, using defaults", "error", err)
		return
	}
	if loaded {
		cfg.Project = wrapper.Project
		l.loadedSections["project"] = true
	}
}

// loadMethodologiesSection loads the methodology selection from methodologies.yaml.
func (l *Loader) loadMethodologiesSection(dir string, cfg *Config) {
	wrapper := &methodologiesFileWrapper{Methodologies: cfg.Methodologies}
	loaded, err := loadYAMLFile(dir, defs.MethodologiesYAML, wrapper)
	if err != nil {
		slog.Warn("failed to load methodologies config, using defaults", "error", err)
		return
	}
	if loaded {
		cfg.Methodologies = wrapper.Methodologies
		l.loadedSections["methodologies"] = true
	}
}

// loadDiscoverySection loads the remote discovery settings from discovery.yaml.
func (l *Loader) loadDiscoverySection(dir string, cfg *Config) {
	wrapper := &discoveryFileWrapper{Discovery: cfg.Discovery}
	loaded, err := loadYAMLFile(dir, defs.DiscoveryYAML, wrapper)
	if err != nil {
		slog.Warn("failed to load discovery config, using defaults", "error", err)
		return
	}
	if loaded {
		cfg.Discovery = wrapper.Discovery
		l.loadedSections["discovery"] = true
	}
}

// loadYAMLFile reads a YAML file from the given directory and unmarshals it
// into the target struct. Returns (true, nil) if the file was found and parsed,
// (false, nil) if the file does not exist, or (false, error) on failure.
func loadYAMLFile(dir, filename string, target any) (bool, error) {
	path := filepath.Join(dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w", filename, ErrInvalidYAML)
	}

	return true, nil
}
