package hooks

import "github.com/vango-dev/hookrt/internal/errors"

// hookOrder records the kinds of hooks visited by the first successful
// cycle and validates every later cycle against them.
type hookOrder struct {
	expected []HookKind
	locked   bool
}

// track records or validates the hook of kind at pos.
func (o *hookOrder) track(pos int, kind HookKind) *errors.HookError {
	if !o.locked {
		o.expected = append(o.expected, kind)
		return nil
	}
	if pos >= len(o.expected) {
		return orderError(pos, "extra %s hook, expected %d hooks", kind, len(o.expected))
	}
	if want := o.expected[pos]; want != kind {
		return orderError(pos, "expected %s, got %s", want, kind)
	}
	return nil
}

// finish validates the number of hooks visited by a cycle.
func (o *hookOrder) finish(visited int) *errors.HookError {
	if o.locked && visited < len(o.expected) {
		return orderError(visited, "expected %d hooks, got %d", len(o.expected), visited)
	}
	return nil
}

// lock freezes the recorded order after the first successful cycle.
func (o *hookOrder) lock() {
	o.locked = true
}

// reset discards a partially recorded order.
func (o *hookOrder) reset() {
	o.expected = o.expected[:0]
	o.locked = false
}

// kinds returns the recorded order as strings.
func (o *hookOrder) kinds() []string {
	out := make([]string, len(o.expected))
	for i, k := range o.expected {
		out[i] = k.String()
	}
	return out
}
