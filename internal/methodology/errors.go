package methodology

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry construction.
var (
	// ErrInvalidDefinition indicates the static methodology definition is malformed.
	ErrInvalidDefinition = errors.New("methodology: invalid definition")

	// ErrEmptyID indicates an entry with an empty methodology id.
	ErrEmptyID = errors.New("methodology: empty id")

	// ErrDuplicateID indicates two entries share the same methodology id.
	ErrDuplicateID = errors.New("methodology: duplicate id")

	// ErrDuplicateTemplate indicates an entry lists the same template file twice.
	ErrDuplicateTemplate = errors.New("methodology: duplicate template file")
)

// DefinitionError reports a malformed entry in the static definition.
// It always names the offending methodology id so the broken table row
// can be found without a debugger.
type DefinitionError struct {
	ID      string
	Reason  string
	Wrapped error // underlying sentinel error for errors.Is support
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("methodology definition error: %s", e.Reason)
	}
	return fmt.Sprintf("methodology definition error: entry %q: %s", e.ID, e.Reason)
}

// Unwrap returns the underlying sentinel error.
func (e *DefinitionError) Unwrap() error {
	return e.Wrapped
}

// Is supports errors.Is checks against ErrInvalidDefinition in addition
// to the specific wrapped sentinel.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}
