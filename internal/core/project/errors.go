// Package project provides installation scaffolding and detection for
// Aichaku. It implements the core domain logic for the "aichaku init"
// CLI command: resolving the methodology selection against the registry,
// creating the .aichaku/ tree, deploying templates, and persisting the
// project configuration.
package project

import "errors"

// Sentinel errors for the project package.
var (
	// ErrProjectExists indicates the project root already contains a .aichaku/ directory.
	ErrProjectExists = errors.New("project already initialized")

	// ErrInvalidRoot indicates the given project root path is invalid or inaccessible.
	ErrInvalidRoot = errors.New("invalid project root path")

	// ErrInitFailed indicates a project initialization step failed.
	ErrInitFailed = errors.New("initialization failed")

	// ErrUnknownMethodology indicates a requested methodology id is not in the registry.
	ErrUnknownMethodology = errors.New("unknown methodology requested")

	// ErrNotInstalled indicates an operation requires an existing .aichaku/ directory.
	ErrNotInstalled = errors.New("project is not initialized")
)
