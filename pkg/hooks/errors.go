package hooks

import (
	"github.com/vango-dev/hookrt/internal/errors"
)

// Sentinel errors for hook misuse. Errors returned by Render carry the slot
// position and call site; compare them with errors.Is.
var (
	// ErrOutsideRender is raised when a hook primitive is called while its
	// instance is not executing a render function body.
	ErrOutsideRender error = errors.New("H001")

	// ErrHookOrder is raised when a cycle calls a different kind of hook at
	// a position than the first cycle did, or a different number of hooks.
	ErrHookOrder error = errors.New("H002")

	// ErrSlotType is raised when a slot holds a value not assignable to the
	// type requested by UseState.
	ErrSlotType error = errors.New("H003")

	// ErrDepsArity is raised in strict mode when an effect's dependency list
	// changes length between cycles.
	ErrDepsArity error = errors.New("H004")

	// ErrReentrantRender is returned by Render for an instance that is
	// already rendering. The outer cycle fails with it as well.
	ErrReentrantRender error = errors.New("H005")

	// ErrCycleIncomplete is returned when middleware returns nil without the
	// render function and result.Render having completed.
	ErrCycleIncomplete error = errors.New("H006")
)

func orderError(pos int, format string, args ...any) *errors.HookError {
	return errors.New("H002").
		AtSlot(pos).
		Because(format, args...).
		WithSuggestion("Call hooks unconditionally at the top level of the render function")
}
