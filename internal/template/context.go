package template

import (
	"runtime"
	"time"

	"github.com/aichaku-dev/aichaku/pkg/version"
)

// Context provides data for template rendering during scaffolding.
// All fields are exported for use with Go's text/template package.
type Context struct {
	// Project
	ProjectName string
	ProjectRoot string

	// Methodology being scaffolded
	MethodologyID   string
	MethodologyName string

	// Meta
	Version       string // aichaku version
	Platform      string // "darwin", "linux", "windows"
	InitializedAt string // ISO 8601 timestamp when the project was scaffolded
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithProjectName sets the project name.
func WithProjectName(name string) ContextOption {
	return func(c *Context) { c.ProjectName = name }
}

// WithProjectRoot sets the project root path.
func WithProjectRoot(root string) ContextOption {
	return func(c *Context) { c.ProjectRoot = root }
}

// WithMethodology sets the methodology id and display name.
func WithMethodology(id, name string) ContextOption {
	return func(c *Context) {
		c.MethodologyID = id
		c.MethodologyName = name
	}
}

// forMethodology returns a copy of the context scoped to one methodology.
func (c *Context) forMethodology(id, name string) *Context {
	scoped := *c
	scoped.MethodologyID = id
	scoped.MethodologyName = name
	return &scoped
}

// NewContext creates a Context with meta fields pre-populated and the
// given options applied.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		Version:       version.GetVersion(),
		Platform:      runtime.GOOS,
		InitializedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
