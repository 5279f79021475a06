package devtools

import (
	"testing"

	"github.com/vango-dev/hookrt/pkg/hooks"
)

func TestHistoryDropsOldest(t *testing.T) {
	h := NewHistory(3)
	for n := 1; n <= 5; n++ {
		h.Add(hooks.CycleReport{Number: n})
	}

	if got := h.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	got := h.Recent(0)
	for i, want := range []int{3, 4, 5} {
		if got[i].Number != want {
			t.Errorf("Recent(0)[%d].Number = %d, want %d", i, got[i].Number, want)
		}
	}
}

func TestHistoryRecent(t *testing.T) {
	h := NewHistory(10)
	for n := 1; n <= 4; n++ {
		h.Add(hooks.CycleReport{Number: n})
	}

	tests := []struct {
		n    int
		want []int
	}{
		{0, []int{1, 2, 3, 4}},
		{2, []int{3, 4}},
		{9, []int{1, 2, 3, 4}},
		{-1, []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		got := h.Recent(tt.n)
		if len(got) != len(tt.want) {
			t.Errorf("Recent(%d) returned %d reports, want %d", tt.n, len(got), len(tt.want))
			continue
		}
		for i := range tt.want {
			if got[i].Number != tt.want[i] {
				t.Errorf("Recent(%d)[%d].Number = %d, want %d", tt.n, i, got[i].Number, tt.want[i])
			}
		}
	}
}

func TestHistoryMinimumLimit(t *testing.T) {
	h := NewHistory(0)
	h.Add(hooks.CycleReport{Number: 1})
	h.Add(hooks.CycleReport{Number: 2})

	if h.Limit() != 1 {
		t.Errorf("Limit() = %d, want 1", h.Limit())
	}
	if got := h.Recent(0); len(got) != 1 || got[0].Number != 2 {
		t.Errorf("Recent(0) = %+v, want only cycle 2", got)
	}
}
