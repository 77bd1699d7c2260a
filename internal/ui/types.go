// Package ui provides terminal output components for the aichaku CLI:
// a color theme, TTY/headless detection, and progress indicators that
// degrade to plain log lines when no terminal is attached.
package ui

// Colors holds the theme color values as lipgloss-compatible hex strings.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
}

// Theme configures the visual appearance of UI components.
type Theme struct {
	Colors  Colors
	NoColor bool
}

// DefaultTheme returns the standard aichaku color theme.
func DefaultTheme() *Theme {
	return &Theme{
		Colors: Colors{
			Primary:   "#7C3AED",
			Secondary: "#A78BFA",
			Success:   "#22C55E",
			Warning:   "#EAB308",
			Error:     "#EF4444",
		},
	}
}

// Spinner is an indeterminate activity indicator.
type Spinner interface {
	// SetTitle updates the spinner title.
	SetTitle(title string)
	// Stop halts the spinner.
	Stop()
}

// ProgressBar is a determinate progress indicator.
type ProgressBar interface {
	// Increment advances the progress by n.
	Increment(n int)
	// SetTitle updates the progress bar title.
	SetTitle(title string)
	// Done completes the progress bar at 100%.
	Done()
}

// Progress creates progress indicators appropriate for the environment.
type Progress interface {
	// Start creates a determinate progress bar with the given total.
	Start(title string, total int) ProgressBar
	// Spinner creates an indeterminate spinner.
	Spinner(title string) Spinner
}
