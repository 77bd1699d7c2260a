package defs

// Common file and directory names used across the project.
const (
	// AichakuDir is the per-project directory that holds all scaffolded
	// methodology documentation and configuration.
	AichakuDir = ".aichaku"

	// ConfigYAML is the main project configuration file under .aichaku/.
	ConfigYAML = "aichaku.yaml"

	// MethodologiesDir is the subdirectory of .aichaku/ that holds one
	// directory per scaffolded methodology.
	MethodologiesDir = "methodologies"

	// UserDir is the subdirectory of .aichaku/ reserved for user-authored
	// documents; the upgrade flow never touches it.
	UserDir = "user"

	// ClaudeMD is the AI assistant directive file at the project root that
	// the integrate flow appends methodology guidance to.
	ClaudeMD = "CLAUDE.md"
)

// Section YAML file names under .aichaku/config/.
const (
	ProjectYAML       = "project.yaml"
	MethodologiesYAML = "methodologies.yaml"
	DiscoveryYAML     = "discovery.yaml"
)
