package devtools

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/vango-dev/hookrt/pkg/hooks"
)

// History keeps the most recent cycle reports, dropping the oldest once
// the limit is reached.
type History struct {
	mu    sync.Mutex
	limit int
	q     *queue.Queue
}

// NewHistory creates a history holding at most limit reports. A limit
// below one is treated as one.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{limit: limit, q: queue.New()}
}

// Add appends r.
func (h *History) Add(r hooks.CycleReport) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for h.q.Length() >= h.limit {
		h.q.Remove()
	}
	h.q.Add(r)
}

// Recent returns up to n reports, oldest first. n <= 0 returns all.
func (h *History) Recent(n int) []hooks.CycleReport {
	h.mu.Lock()
	defer h.mu.Unlock()

	total := h.q.Length()
	if n <= 0 || n > total {
		n = total
	}
	out := make([]hooks.CycleReport, 0, n)
	for i := total - n; i < total; i++ {
		out = append(out, h.q.Get(i).(hooks.CycleReport))
	}
	return out
}

// Len returns the number of stored reports.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.q.Length()
}

// Limit returns the maximum number of stored reports.
func (h *History) Limit() int {
	return h.limit
}
