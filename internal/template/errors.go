// Package template renders and deploys the embedded methodology
// documentation templates into a project's .aichaku/ tree.
//
// Which files a methodology contributes is decided by the methodology
// registry, not by walking the asset filesystem: the registry entry's
// template list drives deployment order and acts as the contract between
// the compiled-in definition and the embedded assets.
package template

import "errors"

// Sentinel errors for template operations.
var (
	// ErrTemplateNotFound indicates a named template is missing from the asset FS.
	ErrTemplateNotFound = errors.New("template: template not found")

	// ErrPathTraversal indicates a template path would escape the project root.
	ErrPathTraversal = errors.New("template: path escapes project root")

	// ErrMissingTemplateKey indicates a template referenced a key absent from the context.
	ErrMissingTemplateKey = errors.New("template: missing template key")

	// ErrUnexpandedToken indicates rendered output still contains a dynamic token.
	ErrUnexpandedToken = errors.New("template: unexpanded token in rendered output")
)
