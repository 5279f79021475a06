package hooks

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/vango-dev/hookrt/internal/errors"
)

// Result is returned by a render function. Render is called once per
// successful cycle, after the body finished; further methods are actions
// callers invoke between cycles.
type Result interface {
	Render()
}

// Middleware wraps a render cycle.
type Middleware interface {
	Handle(c *Cycle, next func() error) error
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(c *Cycle, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(c *Cycle, next func() error) error {
	return f(c, next)
}

// Cycle describes the render cycle in progress. Middleware reads it after
// next returns to observe the outcome.
type Cycle struct {
	ctx      context.Context
	instance *Instance

	// Number is the 1-based cycle number of the instance.
	Number int

	// Hooks is the number of hook primitives visited.
	Hooks int

	// EffectsFired is the number of effect callbacks invoked.
	EffectsFired int

	// Start is when the cycle began.
	Start time.Time

	// Duration is set when the cycle ends.
	Duration time.Duration

	// Err is the error that aborted the cycle, if any.
	Err error
}

// Context returns the context the cycle runs under.
func (c *Cycle) Context() context.Context {
	return c.ctx
}

// SetContext replaces the cycle context for inner middleware.
func (c *Cycle) SetContext(ctx context.Context) {
	if ctx != nil {
		c.ctx = ctx
	}
}

// InstanceID returns the ID of the instance being rendered.
func (c *Cycle) InstanceID() string {
	return c.instance.id
}

// InstanceName returns the name of the instance being rendered.
func (c *Cycle) InstanceName() string {
	return c.instance.name
}

// CycleReport is the outcome of a finished cycle, passed to observers.
type CycleReport struct {
	InstanceID   string        `json:"instanceId"`
	Instance     string        `json:"instance"`
	Number       int           `json:"cycle"`
	Hooks        int           `json:"hooks"`
	EffectsFired int           `json:"effectsFired"`
	Start        time.Time     `json:"start"`
	Duration     time.Duration `json:"durationNs"`
	Error        string        `json:"error,omitempty"`
	ErrorCode    string        `json:"errorCode,omitempty"`
}

// Report returns a copy of the cycle outcome.
func (c *Cycle) Report() CycleReport {
	r := CycleReport{
		InstanceID:   c.instance.id,
		Instance:     c.instance.name,
		Number:       c.Number,
		Hooks:        c.Hooks,
		EffectsFired: c.EffectsFired,
		Start:        c.Start,
		Duration:     c.Duration,
	}
	if c.Err != nil {
		r.Error = c.Err.Error()
		r.ErrorCode = ErrorCode(c.Err)
	}
	return r
}

// ErrorCode returns the code of the hook error wrapped by err ("H002"), or
// an empty string.
func ErrorCode(err error) string {
	var he *errors.HookError
	if stderrors.As(err, &he) {
		return he.Code
	}
	return ""
}

// Render runs one render cycle of fn on in and returns its result.
func Render[R Result](in *Instance, fn func() R) (R, error) {
	return RenderContext(context.Background(), in, fn)
}

// RenderContext is Render with a context made available to middleware.
//
// The cycle resets the slot cursor, runs fn, checks that fn visited as many
// hooks as the first cycle did and calls Render() on the result. Hook
// misuse aborts the cycle and is returned as an error, as does middleware
// that returns nil without letting the cycle complete. If the first cycle
// of an instance fails, its slots are discarded so the next cycle starts
// fresh. Panics that are not hook errors propagate to the caller.
func RenderContext[R Result](ctx context.Context, in *Instance, fn func() R) (result R, err error) {
	if in.rendering {
		in.reentered = true
		return result, reentrantError()
	}

	c := in.startCycle(ctx)
	defer func() {
		if r := recover(); r != nil {
			in.finishCycle(c, fmt.Errorf("panic: %v", r))
			panic(r)
		}
		in.finishCycle(c, err)
	}()

	completed := false
	terminal := func() error {
		var bodyErr error
		result, bodyErr = runBody(in, fn)
		if bodyErr != nil {
			return bodyErr
		}
		if err := in.display(result); err != nil {
			return err
		}
		completed = true
		return nil
	}
	err = in.chain(c, terminal)
	if err == nil && !completed {
		err = errors.New("H006").
			WithSuggestion("Call next from every middleware and return its error")
	}
	return result, err
}

func reentrantError() *errors.HookError {
	return errors.New("H005").
		WithSuggestion("Call Render again after the current cycle returned, not from a render function, effect or Render method")
}

// runBody executes the render function body with hooks enabled.
func runBody[R Result](in *Instance, fn func() R) (result R, err error) {
	in.store.ResetCursor()
	in.inBody = true
	defer func() {
		in.inBody = false
		if r := recover(); r != nil {
			he, ok := r.(*errors.HookError)
			if !ok {
				panic(r)
			}
			err = he
		}
	}()

	result = fn()
	in.inBody = false

	if in.reentered {
		return result, reentrantError()
	}
	if herr := in.order.finish(in.store.Cursor()); herr != nil {
		return result, herr
	}
	return result, nil
}

// display calls Render on the result. Hooks are illegal here.
func (in *Instance) display(result Result) (err error) {
	defer func() {
		if r := recover(); r != nil {
			he, ok := r.(*errors.HookError)
			if !ok {
				panic(r)
			}
			err = he
		}
	}()
	result.Render()
	if in.reentered {
		return reentrantError()
	}
	return nil
}

// chain runs terminal wrapped by the instance middleware, first outermost.
func (in *Instance) chain(c *Cycle, terminal func() error) error {
	next := terminal
	for i := len(in.middleware) - 1; i >= 0; i-- {
		mw := in.middleware[i]
		inner := next
		next = func() error {
			return mw.Handle(c, inner)
		}
	}
	return next()
}

func (in *Instance) startCycle(ctx context.Context) *Cycle {
	if ctx == nil {
		ctx = context.Background()
	}
	in.cycles++
	in.rendering = true
	in.reentered = false
	c := &Cycle{
		ctx:      ctx,
		instance: in,
		Number:   in.cycles,
		Start:    time.Now(),
	}
	in.cycle = c
	return c
}

func (in *Instance) finishCycle(c *Cycle, err error) {
	c.Duration = time.Since(c.Start)
	c.Err = err
	in.rendering = false
	in.inBody = false
	in.reentered = false
	in.cycle = nil

	if err != nil {
		if !in.order.locked {
			in.store.truncate(0)
			in.order.reset()
		}
		in.logger.Error("render cycle aborted",
			"cycle", c.Number,
			"hooks", c.Hooks,
			"error", err,
		)
	} else {
		in.order.lock()
		in.logger.Debug("render cycle complete",
			"cycle", c.Number,
			"hooks", c.Hooks,
			"effects_fired", c.EffectsFired,
			"duration", c.Duration,
		)
	}

	if len(in.observers) == 0 {
		return
	}
	report := c.Report()
	for _, fn := range in.observers {
		fn(report)
	}
}
