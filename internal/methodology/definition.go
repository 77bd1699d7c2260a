package methodology

// Builtin returns the compiled-in methodology definition. This table is the
// only place methodologies, their default status, and their template files
// are declared; every other component reads it through the Registry.
//
// Ordering is deliberate: it drives CLI listings and scaffold order, so new
// entries go at the end and existing entries are never reordered.
func Builtin() Definition {
	return Definition{
		Meta: Metadata{
			Description: "Built-in methodology set bundled with the aichaku binary; used directly and as the fallback when remote discovery is unavailable",
			LastUpdated: "2025-07-10",
		},
		Entries: []Entry{
			{
				ID:          "shape-up",
				Name:        "Shape Up",
				Description: "Fixed appetite, variable scope: 6-week cycles with shaped pitches",
				Default:     true,
				Templates: []string{
					"STATUS.md",
					"pitch.md",
					"cycle-plan.md",
					"hill-chart.md",
					"execution-plan.md",
					"change-summary.md",
				},
			},
			{
				ID:          "scrum",
				Name:        "Scrum",
				Description: "Sprint-based delivery with defined roles and ceremonies",
				Default:     true,
				Templates: []string{
					"sprint-planning.md",
					"sprint-backlog.md",
					"user-story.md",
					"retrospective.md",
				},
			},
			{
				ID:          "kanban",
				Name:        "Kanban",
				Description: "Continuous flow with WIP limits and pull-based work",
				Default:     true,
				Templates: []string{
					"kanban-board.md",
					"flow-metrics.md",
				},
			},
			{
				ID:          "lean",
				Name:        "Lean",
				Description: "Build-measure-learn loops around a minimum viable product",
				Default:     true,
				Templates: []string{
					"experiment-plan.md",
					"mvp-definition.md",
				},
			},
			{
				ID:          "xp",
				Name:        "Extreme Programming",
				Description: "Engineering-practice focus: test-first, pairing, refactoring",
				Default:     false,
				Templates: []string{
					"practice-checklist.md",
					"pair-session.md",
				},
			},
			{
				ID:          "scrumban",
				Name:        "Scrumban",
				Description: "Scrum cadence blended with Kanban flow controls",
				Default:     false,
				Templates: []string{
					"planning-triggers.md",
					"flow-board.md",
				},
			},
		},
	}
}

// Default is the process-wide registry built from the compiled-in
// definition. Construction happens once at package init; a definition
// error here means the binary is broken, so the panic from MustNewRegistry
// is the intended failure mode.
var Default = MustNewRegistry(Builtin())
