package hooks

import (
	"testing"
)

func TestSlotStoreCursor(t *testing.T) {
	s := NewSlotStore()

	for want := 0; want < 3; want++ {
		if got := s.NextPosition(); got != want {
			t.Fatalf("NextPosition() = %d, want %d", got, want)
		}
	}
	if s.Cursor() != 3 {
		t.Fatalf("Cursor() = %d, want 3", s.Cursor())
	}

	s.ResetCursor()
	if got := s.NextPosition(); got != 0 {
		t.Fatalf("NextPosition() after reset = %d, want 0", got)
	}
}

func TestSlotStoreReadOrInit(t *testing.T) {
	s := NewSlotStore()

	if got := s.ReadOrInit(0, KindState, 10); got != 10 {
		t.Fatalf("first ReadOrInit = %v, want 10", got)
	}
	if got := s.ReadOrInit(0, KindState, 99); got != 10 {
		t.Fatalf("second ReadOrInit = %v, want stored 10", got)
	}
	if s.Cursor() != 0 {
		t.Fatalf("ReadOrInit moved the cursor to %d", s.Cursor())
	}

	s.Write(0, 20)
	if got := s.ReadOrInit(0, KindState, 99); got != 20 {
		t.Fatalf("ReadOrInit after Write = %v, want 20", got)
	}
}

func TestSlotStoreZeroValuesArePopulated(t *testing.T) {
	tests := []struct {
		name string
		zero any
	}{
		{name: "int", zero: 0},
		{name: "string", zero: ""},
		{name: "bool", zero: false},
		{name: "nil", zero: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSlotStore()
			s.ReadOrInit(0, KindState, tt.zero)

			v, ok := s.Lookup(0)
			if !ok {
				t.Fatal("slot should be populated")
			}
			if v != tt.zero {
				t.Fatalf("Lookup = %v, want %v", v, tt.zero)
			}
			if got := s.ReadOrInit(0, KindState, "truthy"); got != tt.zero {
				t.Fatalf("ReadOrInit = %v, zero value must not fall back to default", got)
			}
		})
	}
}

func TestSlotStoreWriteGrows(t *testing.T) {
	s := NewSlotStore()
	s.Write(2, "x")

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if _, ok := s.Lookup(0); ok {
		t.Fatal("slot 0 should be empty")
	}
	if v, ok := s.Lookup(2); !ok || v != "x" {
		t.Fatalf("Lookup(2) = %v, %v", v, ok)
	}
	if _, ok := s.Lookup(-1); ok {
		t.Fatal("negative position should not be populated")
	}
}

func TestSlotStoreTruncate(t *testing.T) {
	s := NewSlotStore()
	s.ReadOrInit(s.NextPosition(), KindState, 1)
	s.ReadOrInit(s.NextPosition(), KindState, 2)

	s.truncate(0)
	if s.Len() != 0 || s.Cursor() != 0 {
		t.Fatalf("after truncate Len=%d Cursor=%d, want 0 0", s.Len(), s.Cursor())
	}
}

func TestSlotStoreSnapshot(t *testing.T) {
	s := NewSlotStore()
	s.ReadOrInit(0, KindState, 3)
	s.put(1, KindEffect, []any{3, "a"})
	s.ReadOrInit(2, KindState, nil)
	s.ReadOrInit(3, KindState, func() {})

	snap := s.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("len(snapshot) = %d, want 4", len(snap))
	}

	want := []SlotSnapshot{
		{Position: 0, Kind: KindState, Populated: true, Type: "int", Value: "3"},
		{Position: 1, Kind: KindEffect, Populated: true, Type: "[]interface {}", Value: "[3 a]"},
		{Position: 2, Kind: KindState, Populated: true, Type: "nil"},
		{Position: 3, Kind: KindState, Populated: true, Type: "func()", Value: "func"},
	}
	for i := range want {
		if snap[i] != want[i] {
			t.Errorf("snapshot[%d] = %+v, want %+v", i, snap[i], want[i])
		}
	}
}

func TestSlotStorePutKeepsKind(t *testing.T) {
	s := NewSlotStore()
	s.put(0, KindEffect, []any{1})
	s.put(0, KindState, []any{2})

	if got := s.Snapshot()[0].Kind; got != KindEffect {
		t.Fatalf("kind = %s, want Effect", got)
	}
}

func TestHookKindString(t *testing.T) {
	tests := []struct {
		kind HookKind
		want string
	}{
		{KindState, "State"},
		{KindEffect, "Effect"},
		{KindUnknown, "Unknown"},
		{HookKind(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("HookKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
