package hooks

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/vango-dev/hookrt/internal/errors"
)

// Instance owns the slot store of one simulated component and drives its
// render cycles. Instances are independent of each other.
type Instance struct {
	id     string
	name   string
	logger *slog.Logger

	store *SlotStore
	order hookOrder

	strictDeps bool
	middleware []Middleware
	observers  []func(CycleReport)

	// cycles counts every started cycle, failed ones included.
	cycles int

	// rendering is true for the whole cycle, inBody only while the render
	// function body runs (hooks are legal).
	rendering bool
	inBody    bool
	reentered bool

	cycle *Cycle
}

// Option configures an Instance.
type Option func(*Instance)

// WithName sets the instance name used in logs, metrics and snapshots.
func WithName(name string) Option {
	return func(in *Instance) {
		in.name = name
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(in *Instance) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithStrictDeps makes a change in an effect's dependency list length abort
// the cycle with ErrDepsArity instead of logging a warning and firing.
func WithStrictDeps(strict bool) Option {
	return func(in *Instance) {
		in.strictDeps = strict
	}
}

// WithMiddleware appends cycle middleware. The first middleware is the
// outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(in *Instance) {
		in.middleware = append(in.middleware, mw...)
	}
}

// WithObserver registers fn to be called with a report after every cycle,
// successful or not.
func WithObserver(fn func(CycleReport)) Option {
	return func(in *Instance) {
		if fn != nil {
			in.observers = append(in.observers, fn)
		}
	}
}

// NewInstance creates an Instance with an empty slot store.
func NewInstance(opts ...Option) *Instance {
	in := &Instance{
		id:     uuid.NewString(),
		name:   "component",
		logger: slog.Default(),
		store:  NewSlotStore(),
	}
	for _, opt := range opts {
		opt(in)
	}
	in.logger = in.logger.With("instance_id", in.id, "instance", in.name)
	return in
}

// ID returns the unique identifier of the instance.
func (in *Instance) ID() string {
	return in.id
}

// Name returns the instance name.
func (in *Instance) Name() string {
	return in.name
}

// Cycles returns the number of render cycles started so far.
func (in *Instance) Cycles() int {
	return in.cycles
}

// Rendering reports whether a render cycle is in progress.
func (in *Instance) Rendering() bool {
	return in.rendering
}

// Logger returns the instance logger.
func (in *Instance) Logger() *slog.Logger {
	return in.logger
}

// Snapshot is a read-only view of an instance between cycles.
type Snapshot struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Cycles    int            `json:"cycles"`
	Locked    bool           `json:"locked"`
	HookOrder []string       `json:"hookOrder"`
	Slots     []SlotSnapshot `json:"slots"`
}

// Snapshot returns the current slots and recorded hook order.
func (in *Instance) Snapshot() Snapshot {
	return Snapshot{
		ID:        in.id,
		Name:      in.name,
		Cycles:    in.cycles,
		Locked:    in.order.locked,
		HookOrder: in.order.kinds(),
		Slots:     in.store.Snapshot(),
	}
}

// enter is the common prologue of every hook primitive: it checks that a
// render body is running, takes the next position and validates the hook
// order. Violations panic with a *errors.HookError that Render recovers.
func (in *Instance) enter(kind HookKind) int {
	if in == nil || !in.inBody {
		panic(errors.New("H001").
			Because("%s hook", kind).
			WithCaller(2).
			WithSuggestion("Call hooks only from a render function passed to hooks.Render"))
	}
	pos := in.store.NextPosition()
	if err := in.order.track(pos, kind); err != nil {
		panic(err.WithCaller(2))
	}
	in.cycle.Hooks++
	return pos
}
