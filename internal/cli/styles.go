package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Shared lipgloss styles for command output.
var (
	cliTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	cliOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	cliWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308"))
	cliDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7C3AED")).
			Padding(0, 2)
)

// titleCaser converts methodology ids to display form when no registry
// name is available (e.g. orphaned directories).
var titleCaser = cases.Title(language.English)

// displayName turns an identifier like "shape-up" into "Shape Up".
func displayName(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "-", " "))
}

// kvPair is a label/value pair for aligned key-value output.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines formats pairs with aligned keys.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s", cliDim.Render(fmt.Sprintf("%-*s", width, p.key)), p.value)
	}
	return b.String()
}

// renderSuccessCard renders a bordered success message with detail lines.
func renderSuccessCard(title string, details ...string) string {
	lines := []string{cliOK.Render("✓ ") + cliTitle.Render(title)}
	lines = append(lines, details...)
	return cardStyle.Render(strings.Join(lines, "\n"))
}
