package hooks

import (
	"reflect"

	"github.com/vango-dev/hookrt/internal/errors"
)

// Setter writes the state slot it was created for. It is a small value
// bound to a store and a position; setters returned for the same slot on
// different cycles compare equal.
//
// Writes are immediate and do not start a cycle: call Render again to
// observe them.
type Setter[T any] struct {
	store *SlotStore
	pos   int
}

// Set stores v in the slot.
func (s Setter[T]) Set(v T) {
	s.store.Write(s.pos, v)
}

// Update stores fn applied to the value currently in the slot.
func (s Setter[T]) Update(fn func(T) T) {
	var cur T
	if v, ok := s.store.Lookup(s.pos); ok && v != nil {
		cur, _ = v.(T)
	}
	s.Set(fn(cur))
}

// Position returns the slot position the setter writes.
func (s Setter[T]) Position() int {
	return s.pos
}

// UseState returns the value of the next state slot and a setter for it.
// On the first visit of the slot the value is initial; afterwards it is
// whatever was last stored, and initial is ignored. Zero values are stored
// like any other value.
func UseState[T any](in *Instance, initial T) (T, Setter[T]) {
	pos := in.enter(KindState)
	v := in.store.ReadOrInit(pos, KindState, initial)
	return slotValue[T](pos, v), Setter[T]{store: in.store, pos: pos}
}

// UseStateFunc is UseState with a lazily computed initial value. init is
// called only when the slot is first created.
func UseStateFunc[T any](in *Instance, init func() T) (T, Setter[T]) {
	pos := in.enter(KindState)
	v, ok := in.store.Lookup(pos)
	if !ok {
		v = in.store.ReadOrInit(pos, KindState, init())
	}
	return slotValue[T](pos, v), Setter[T]{store: in.store, pos: pos}
}

// slotValue converts a stored value to T. A nil slot yields the zero value.
func slotValue[T any](pos int, v any) T {
	var zero T
	if v == nil {
		return zero
	}
	t, ok := v.(T)
	if !ok {
		panic(errors.New("H003").
			AtSlot(pos).
			Because("slot holds %T, hook wants %s", v, reflect.TypeFor[T]()).
			WithCaller(2))
	}
	return t
}
