package hooks

import (
	"fmt"
	"reflect"
)

// slot is one persisted value. populated distinguishes a stored zero value
// from a slot that was never written.
type slot struct {
	value     any
	populated bool
	kind      HookKind
}

// SlotStore is an ordered list of slots addressed by position, plus the
// cursor hook primitives advance during a render cycle.
//
// A SlotStore is owned by exactly one Instance; only hook primitives and
// setters address it.
type SlotStore struct {
	slots  []slot
	cursor int
}

// NewSlotStore creates an empty store.
func NewSlotStore() *SlotStore {
	return &SlotStore{}
}

// ResetCursor moves the cursor back to the first slot. Called once at the
// start of every render cycle.
func (s *SlotStore) ResetCursor() {
	s.cursor = 0
}

// NextPosition returns the cursor and advances it. Every hook primitive
// calls it exactly once per invocation.
func (s *SlotStore) NextPosition() int {
	pos := s.cursor
	s.cursor++
	return pos
}

// Cursor returns the current cursor without advancing it.
func (s *SlotStore) Cursor() int {
	return s.cursor
}

// Len returns the number of slots created so far.
func (s *SlotStore) Len() int {
	return len(s.slots)
}

// ReadOrInit returns the value of the slot at pos if it is populated.
// Otherwise it stores def there and returns it. It never moves the cursor.
func (s *SlotStore) ReadOrInit(pos int, kind HookKind, def any) any {
	if pos < len(s.slots) && s.slots[pos].populated {
		return s.slots[pos].value
	}
	s.grow(pos)
	s.slots[pos] = slot{value: def, populated: true, kind: kind}
	return def
}

// Lookup returns the value at pos and whether the slot is populated.
func (s *SlotStore) Lookup(pos int) (any, bool) {
	if pos < 0 || pos >= len(s.slots) || !s.slots[pos].populated {
		return nil, false
	}
	return s.slots[pos].value, true
}

// Write overwrites the slot at pos unconditionally.
func (s *SlotStore) Write(pos int, value any) {
	s.grow(pos)
	s.slots[pos].value = value
	s.slots[pos].populated = true
}

// put is Write that also records the hook kind of a slot created by it.
func (s *SlotStore) put(pos int, kind HookKind, value any) {
	s.grow(pos)
	if !s.slots[pos].populated {
		s.slots[pos].kind = kind
	}
	s.slots[pos].value = value
	s.slots[pos].populated = true
}

// grow extends the slot list so that pos is addressable.
func (s *SlotStore) grow(pos int) {
	for len(s.slots) <= pos {
		s.slots = append(s.slots, slot{})
	}
}

// truncate drops every slot at or after n.
func (s *SlotStore) truncate(n int) {
	if n < len(s.slots) {
		clear(s.slots[n:])
		s.slots = s.slots[:n]
	}
	if s.cursor > n {
		s.cursor = n
	}
}

// SlotSnapshot is a read-only view of one slot.
type SlotSnapshot struct {
	Position  int      `json:"position"`
	Kind      HookKind `json:"kind"`
	Populated bool     `json:"populated"`
	Type      string   `json:"type,omitempty"`
	Value     string   `json:"value,omitempty"`
}

// Snapshot returns a copy of every slot with its value rendered as text.
func (s *SlotStore) Snapshot() []SlotSnapshot {
	out := make([]SlotSnapshot, len(s.slots))
	for i, sl := range s.slots {
		out[i] = SlotSnapshot{
			Position:  i,
			Kind:      sl.kind,
			Populated: sl.populated,
		}
		if !sl.populated {
			continue
		}
		if sl.value == nil {
			out[i].Type = "nil"
			continue
		}
		out[i].Type = reflect.TypeOf(sl.value).String()
		out[i].Value = formatSlotValue(sl.value)
	}
	return out
}

func formatSlotValue(v any) string {
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return "func"
	}
	if deps, ok := v.([]any); ok {
		return fmt.Sprintf("%v", deps)
	}
	return fmt.Sprintf("%#v", v)
}
