package models

// InstallScope identifies where methodology documentation is installed.
type InstallScope string

const (
	// ScopeGlobal installs under the user's home directory, shared by all projects.
	ScopeGlobal InstallScope = "global"

	// ScopeLocal installs under a single project's .aichaku/ directory (default).
	ScopeLocal InstallScope = "local"
)

// ValidInstallScopes returns all valid install scope values.
func ValidInstallScopes() []InstallScope {
	return []InstallScope{ScopeGlobal, ScopeLocal}
}

// IsValid checks if the install scope is a valid value.
func (s InstallScope) IsValid() bool {
	switch s {
	case ScopeGlobal, ScopeLocal:
		return true
	}
	return false
}

// String returns the string representation of the InstallScope.
func (s InstallScope) String() string {
	return string(s)
}

// ProjectConfig represents the project configuration section.
type ProjectConfig struct {
	Name             string       `yaml:"name"`
	Scope            InstallScope `yaml:"scope"`
	InstalledVersion string       `yaml:"installed_version"`
	CreatedAt        string       `yaml:"created_at"`
}

// MethodologiesConfig records which methodologies the user has selected.
// An empty Selected list means "use the registry defaults".
type MethodologiesConfig struct {
	Selected []string `yaml:"selected"`
}

// DiscoveryConfig configures the optional remote methodology discovery.
type DiscoveryConfig struct {
	Enabled        bool   `yaml:"enabled"`
	SourceURL      string `yaml:"source_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}
