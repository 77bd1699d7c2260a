// Package models provides shared data models and types for Aichaku.
//
// This package contains the enums and data structures used across multiple
// packages in the codebase, kept free of behavior so that both the CLI and
// library consumers can depend on it without pulling in I/O.
//
// # Install Scopes
//
// Methodology documentation can be installed at two scopes:
//   - Global: under the user's home directory, shared by all projects
//   - Local: under a single project's .aichaku/ directory (default)
//
// Use [InstallScope] and its constants:
//
//	scope := models.ScopeLocal
//	if scope.IsValid() {
//	    fmt.Println("Valid scope:", scope)
//	}
//
// All types support YAML serialization via gopkg.in/yaml.v3 struct tags.
package models
