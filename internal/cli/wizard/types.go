// Package wizard implements the interactive setup flow for "aichaku init",
// built on charmbracelet/huh forms.
package wizard

import "errors"

// Sentinel errors for the wizard.
var (
	// ErrCancelled indicates the user aborted the wizard.
	ErrCancelled = errors.New("wizard: cancelled by user")

	// ErrNoOptions indicates the wizard was started with nothing to ask.
	ErrNoOptions = errors.New("wizard: no methodology options available")
)

// Result holds the answers collected by the wizard.
type Result struct {
	ProjectName   string
	Methodologies []string
}
