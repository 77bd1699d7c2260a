package config

import (
	"fmt"

	"github.com/aichaku-dev/aichaku/internal/methodology"
)

// Validate checks the configuration for correctness against the registry.
// The loadedSections map indicates which sections were loaded from YAML
// files (as opposed to using defaults). Required field validation only
// applies to sections that were explicitly loaded.
func Validate(cfg *Config, reg *methodology.Registry, loadedSections map[string]bool) error {
	var errs []ValidationError

	errs = append(errs, validateRequired(cfg, loadedSections)...)
	errs = append(errs, validateScope(cfg)...)
	errs = append(errs, validateSelection(cfg, reg)...)
	errs = append(errs, validateDiscovery(cfg)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateRequired checks that required fields are populated for loaded sections.
func validateRequired(cfg *Config, loadedSections map[string]bool) []ValidationError {
	var errs []ValidationError

	if loadedSections["project"] && cfg.Project.Name == "" {
		errs = append(errs, ValidationError{
			Field:   "project.name",
			Message: "required field is empty; set the project name in .aichaku/config/project.yaml (example: name: my-app)",
			Wrapped: ErrInvalidConfig,
		})
	}

	return errs
}

// validateScope checks that the install scope is a valid value.
func validateScope(cfg *Config) []ValidationError {
	scope := cfg.Project.Scope
	if scope == "" {
		return nil // empty is acceptable, defaults will be applied
	}
	if !scope.IsValid() {
		return []ValidationError{
			{
				Field:   "project.scope",
				Message: "must be one of: global, local",
				Value:   string(scope),
				Wrapped: ErrInvalidScope,
			},
		}
	}
	return nil
}

// validateSelection checks every selected methodology id against the registry.
// Unknown ids are a user error here, unlike registry lookups which stay total:
// a stored selection naming a methodology that no longer exists would silently
// scaffold nothing, so it is rejected at load time instead.
func validateSelection(cfg *Config, reg *methodology.Registry) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool, len(cfg.Methodologies.Selected))
	for _, id := range cfg.Methodologies.Selected {
		if id == "" {
			errs = append(errs, ValidationError{
				Field:   "methodologies.selected",
				Message: "selection contains an empty id",
				Wrapped: ErrInvalidConfig,
			})
			continue
		}
		if seen[id] {
			errs = append(errs, ValidationError{
				Field:   "methodologies.selected",
				Message: fmt.Sprintf("methodology %q selected more than once", id),
				Value:   id,
				Wrapped: ErrInvalidConfig,
			})
			continue
		}
		seen[id] = true

		if !reg.Exists(methodology.ID(id)) {
			errs = append(errs, ValidationError{
				Field:   "methodologies.selected",
				Message: "not a known methodology; run \"aichaku list\" to see available ids",
				Value:   id,
				Wrapped: ErrUnknownMethodology,
			})
		}
	}

	return errs
}

// validateDiscovery validates the remote discovery settings.
func validateDiscovery(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Discovery.TimeoutSeconds < 0 || cfg.Discovery.TimeoutSeconds > 300 {
		errs = append(errs, ValidationError{
			Field:   "discovery.timeout_seconds",
			Message: "must be between 0 and 300",
			Value:   cfg.Discovery.TimeoutSeconds,
			Wrapped: ErrInvalidConfig,
		})
	}

	if cfg.Discovery.Enabled && cfg.Discovery.SourceURL == "" {
		errs = append(errs, ValidationError{
			Field:   "discovery.source_url",
			Message: "required when discovery is enabled",
			Wrapped: ErrInvalidConfig,
		})
	}

	return errs
}
