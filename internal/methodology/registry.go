package methodology

import "fmt"

// ID is a short stable methodology identifier (e.g. "shape-up", "scrum").
// IDs are never renamed in place; a rename is an add plus a deprecation so
// that stored user selections keep resolving.
type ID string

// String returns the string representation of the ID.
func (id ID) String() string {
	return string(id)
}

// Entry describes one methodology in the definition table.
type Entry struct {
	// ID is the unique key for this methodology.
	ID ID

	// Name is the human-readable display name (e.g. "Shape Up").
	Name string

	// Description is a one-line summary shown by the list command.
	Description string

	// Default marks methodologies installed automatically when the user
	// makes no explicit selection.
	Default bool

	// Templates lists the documentation files this methodology contributes,
	// in creation/display order. Duplicates within an entry are invalid.
	Templates []string
}

// Metadata is the provenance pair attached to a definition. It has no
// behavioral effect and must round-trip unchanged through the registry.
type Metadata struct {
	Description string
	LastUpdated string
}

// Definition is the declarative table a Registry is built from.
type Definition struct {
	Meta    Metadata
	Entries []Entry
}

// Registry is the immutable lookup structure over a validated Definition.
// All methods are pure reads over state frozen at construction time, so a
// Registry is safe for unsynchronized concurrent use.
type Registry struct {
	meta    Metadata
	order   []ID
	entries map[ID]Entry
}

// NewRegistry validates the definition and builds a Registry from it.
// Validation is all-or-nothing: an empty id, a duplicate id, or a duplicate
// template filename within one entry yields a DefinitionError naming the
// offending entry, and no Registry is returned. A malformed definition is a
// programmer error, so callers constructing from compiled-in tables should
// treat failure as fatal.
func NewRegistry(def Definition) (*Registry, error) {
	r := &Registry{
		meta:    def.Meta,
		order:   make([]ID, 0, len(def.Entries)),
		entries: make(map[ID]Entry, len(def.Entries)),
	}

	for _, e := range def.Entries {
		if e.ID == "" {
			return nil, &DefinitionError{
				Reason:  "entry has empty id",
				Wrapped: ErrEmptyID,
			}
		}
		if _, dup := r.entries[e.ID]; dup {
			return nil, &DefinitionError{
				ID:      string(e.ID),
				Reason:  "id declared more than once",
				Wrapped: ErrDuplicateID,
			}
		}

		seen := make(map[string]bool, len(e.Templates))
		for _, tmpl := range e.Templates {
			if seen[tmpl] {
				return nil, &DefinitionError{
					ID:      string(e.ID),
					Reason:  fmt.Sprintf("template %q listed more than once", tmpl),
					Wrapped: ErrDuplicateTemplate,
				}
			}
			seen[tmpl] = true
		}

		r.order = append(r.order, e.ID)
		r.entries[e.ID] = e
	}

	return r, nil
}

// MustNewRegistry builds a Registry and panics on a definition error.
// Reserved for compiled-in definitions where failure means the binary
// itself is broken.
func MustNewRegistry(def Definition) *Registry {
	r, err := NewRegistry(def)
	if err != nil {
		panic(err)
	}
	return r
}

// ListAll returns every known methodology id in declared order.
// The returned slice is a copy; callers may modify it freely.
func (r *Registry) ListAll() []ID {
	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}

// ListDefaults returns the ids with Default set, preserving declared order.
func (r *Registry) ListDefaults() []ID {
	var out []ID
	for _, id := range r.order {
		if r.entries[id].Default {
			out = append(out, id)
		}
	}
	return out
}

// TemplatesFor returns the template filenames the methodology contributes,
// in declared order. An unknown id yields an empty result, not an error:
// callers historically treat "unknown" and "nothing to scaffold" the same
// way, and strict callers can check Exists first.
func (r *Registry) TemplatesFor(id ID) []string {
	e, ok := r.entries[id]
	if !ok {
		return nil
	}
	out := make([]string, len(e.Templates))
	copy(out, e.Templates)
	return out
}

// Exists reports whether id is a key in the registry.
func (r *Registry) Exists(id ID) bool {
	_, ok := r.entries[id]
	return ok
}

// Entry returns the full entry for id. The boolean follows the comma-ok
// convention; the returned entry's Templates slice is a copy.
func (r *Registry) Entry(id ID) (Entry, bool) {
	e, ok := r.entries[id]
	if !ok {
		return Entry{}, false
	}
	templates := make([]string, len(e.Templates))
	copy(templates, e.Templates)
	e.Templates = templates
	return e, true
}

// Metadata returns the provenance pair supplied at construction, unchanged.
func (r *Registry) Metadata() Metadata {
	return r.meta
}

// Len returns the number of registered methodologies.
func (r *Registry) Len() int {
	return len(r.order)
}
