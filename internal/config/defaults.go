package config

import (
	"github.com/aichaku-dev/aichaku/pkg/models"
	"github.com/aichaku-dev/aichaku/pkg/version"
)

// Default value constants to avoid magic numbers and strings.
const (
	DefaultScope = models.ScopeLocal

	DefaultDiscoveryEnabled = false
	DefaultDiscoveryURL     = "https://raw.githubusercontent.com/aichaku-dev/methodologies/main/methodologies.json"
	DefaultDiscoveryTimeout = 5
)

// NewDefaultConfig returns a Config populated with compiled defaults.
// The methodology selection is intentionally left empty: an empty selection
// means "use the registry defaults", which keeps freshly initialized
// projects tracking the registry instead of freezing a copy of it.
func NewDefaultConfig() *Config {
	return &Config{
		Project: models.ProjectConfig{
			Scope:            DefaultScope,
			InstalledVersion: version.GetVersion(),
		},
		Methodologies: models.MethodologiesConfig{},
		Discovery: models.DiscoveryConfig{
			Enabled:        DefaultDiscoveryEnabled,
			SourceURL:      DefaultDiscoveryURL,
			TimeoutSeconds: DefaultDiscoveryTimeout,
		},
	}
}
