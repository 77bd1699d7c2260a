package config

import "github.com/aichaku-dev/aichaku/pkg/models"

// Config is the merged project configuration held in memory.
type Config struct {
	Project       models.ProjectConfig       `yaml:"project"`
	Methodologies models.MethodologiesConfig `yaml:"methodologies"`
	Discovery     models.DiscoveryConfig     `yaml:"discovery"`
}

// Section file wrappers. Each YAML section file carries a single top-level
// key so that the files stay self-describing when read in isolation.

type projectFileWrapper struct {
	Project models.ProjectConfig `yaml:"project"`
}

type methodologiesFileWrapper struct {
	Methodologies models.MethodologiesConfig `yaml:"methodologies"`
}

type discoveryFileWrapper struct {
	Discovery models.DiscoveryConfig `yaml:"discovery"`
}
