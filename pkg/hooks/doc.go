// Package hooks provides a slot-indexed hooks runtime.
//
// A render function is a plain Go function that is called again on every
// render cycle. Hook primitives called from its body read and write state
// that persists across cycles in the slot store of an Instance. Slots are
// addressed by call position, so a render function must call the same hooks
// in the same order on every cycle. The runtime records the hook order of
// the first successful cycle and fails any later cycle that deviates.
//
// # Core Types
//
// Instance owns one slot store (one simulated component):
//
//	in := hooks.NewInstance(hooks.WithName("counter"))
//
// UseState returns the current value of a state slot and a Setter bound to
// that slot:
//
//	count, setCount := hooks.UseState(in, 0)
//	setCount.Set(count + 1) // visible on the next cycle
//
// UseEffect runs a callback on the first cycle and whenever one of its
// dependencies changed since the previous cycle:
//
//	hooks.UseEffect(in, func() { log.Println("count is", count) }, count)
//
// Render runs one cycle and calls Render() on the result:
//
//	view, err := hooks.Render(in, Counter)
//	view.Click()
//	view, err = hooks.Render(in, Counter)
//
// # Errors
//
// Hook misuse aborts the cycle and is returned by Render: ErrOutsideRender,
// ErrHookOrder, ErrSlotType, ErrDepsArity and ErrReentrantRender. Panics
// raised by effect callbacks or Render() methods are not recovered.
//
// # Concurrency
//
// An Instance is not safe for concurrent use. Cycles run one at a time on
// the caller's goroutine; a Render call made while the same instance is
// rendering fails with ErrReentrantRender.
package hooks
