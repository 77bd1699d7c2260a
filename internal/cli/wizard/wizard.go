package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/aichaku-dev/aichaku/internal/methodology"
)

// Option is one selectable methodology shown by the wizard.
type Option struct {
	ID          string
	Name        string
	Description string
	Default     bool
}

// OptionsFromRegistry builds the wizard's option list from a registry,
// preserving declared order and pre-selecting the defaults.
func OptionsFromRegistry(reg *methodology.Registry) []Option {
	var opts []Option
	for _, id := range reg.ListAll() {
		entry, ok := reg.Entry(id)
		if !ok {
			continue
		}
		opts = append(opts, Option{
			ID:          string(entry.ID),
			Name:        entry.Name,
			Description: entry.Description,
			Default:     entry.Default,
		})
	}
	return opts
}

// Run executes the wizard: a project name input followed by a methodology
// multi-select. Each question runs as its own huh.Form, matching huh's
// recommended pattern for sequential independent groups.
func Run(defaultProjectName string, options []Option) (*Result, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}

	result := &Result{ProjectName: defaultProjectName}

	nameForm := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Project name").
			Description("Used in the scaffolded status documents").
			Validate(validateProjectName).
			Value(&result.ProjectName),
	)).WithTheme(wizardTheme())

	if err := nameForm.Run(); err != nil {
		return nil, wrapFormErr(err)
	}

	selectForm := huh.NewForm(huh.NewGroup(
		buildMethodologySelect(options, &result.Methodologies),
	)).WithTheme(wizardTheme())

	if err := selectForm.Run(); err != nil {
		return nil, wrapFormErr(err)
	}

	return result, nil
}

// buildMethodologySelect creates the multi-select field with defaults
// pre-checked.
func buildMethodologySelect(options []Option, target *[]string) *huh.MultiSelect[string] {
	huhOpts := make([]huh.Option[string], len(options))
	var preselected []string
	for i, opt := range options {
		label := opt.Name
		if opt.Description != "" {
			label = fmt.Sprintf("%s — %s", opt.Name, opt.Description)
		}
		huhOpts[i] = huh.NewOption(label, opt.ID).Selected(opt.Default)
		if opt.Default {
			preselected = append(preselected, opt.ID)
		}
	}
	*target = preselected

	return huh.NewMultiSelect[string]().
		Title("Methodologies").
		Description("Select the methodologies to scaffold documentation for").
		Options(huhOpts...).
		Value(target)
}

// validateProjectName rejects empty and path-like project names.
func validateProjectName(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return errors.New("project name must not be empty")
	}
	if strings.ContainsAny(trimmed, "/\\") {
		return errors.New("project name must not contain path separators")
	}
	return nil
}

// wrapFormErr maps huh's abort error onto the package sentinel.
func wrapFormErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return fmt.Errorf("wizard error: %w", err)
}

// wizardTheme adapts huh's base theme to the aichaku colors.
func wizardTheme() *huh.Theme {
	theme := huh.ThemeBase()
	theme.Focused.Title = theme.Focused.Title.Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	theme.Focused.SelectedOption = theme.Focused.SelectedOption.Foreground(lipgloss.Color("#A78BFA"))
	return theme
}
