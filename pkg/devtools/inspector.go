package devtools

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/hookrt/internal/errors"
	"github.com/vango-dev/hookrt/pkg/hooks"
)

// DefaultHistory is the number of cycles kept when no limit is set.
const DefaultHistory = 64

// Target is an instance the inspector can show and act on.
type Target interface {
	Instance() *hooks.Instance
	Snapshot() hooks.Snapshot
	Act(ctx context.Context, action, arg string) error
}

// InstanceInfo describes a registered instance.
type InstanceInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Cycles int    `json:"cycles"`
}

// Inspector records cycles of registered instances and serves them.
type Inspector struct {
	mu      sync.RWMutex
	targets map[string]Target

	history  *History
	feed     *Feed
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithHistory sets the number of cycles kept.
func WithHistory(limit int) Option {
	return func(i *Inspector) {
		i.history = NewHistory(limit)
	}
}

// WithGatherer sets the source of /metrics. Default:
// prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(i *Inspector) {
		i.gatherer = g
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New creates an Inspector.
func New(opts ...Option) *Inspector {
	i := &Inspector{
		targets:  make(map[string]Target),
		history:  NewHistory(DefaultHistory),
		feed:     NewFeed(),
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Register adds t to the inspector. Registering an instance twice replaces
// the earlier target.
func (i *Inspector) Register(t Target) {
	id := t.Instance().ID()
	i.mu.Lock()
	i.targets[id] = t
	i.mu.Unlock()
	i.logger.Debug("instance registered", "instance_id", id, "instance", t.Instance().Name())
}

// Unregister removes the instance with the given ID.
func (i *Inspector) Unregister(id string) {
	i.mu.Lock()
	delete(i.targets, id)
	i.mu.Unlock()
}

// Observe records a finished cycle. Pass it to hooks.WithObserver.
func (i *Inspector) Observe(r hooks.CycleReport) {
	i.history.Add(r)
	i.feed.Publish(Event{Type: EventCycle, InstanceID: r.InstanceID, Cycle: &r})
}

// Target returns the target registered under id.
func (i *Inspector) Target(id string) (Target, error) {
	i.mu.RLock()
	t, ok := i.targets[id]
	i.mu.RUnlock()
	if !ok {
		return nil, errors.New("H121").Because("%q", id)
	}
	return t, nil
}

// Instances lists registered instances sorted by name, then ID.
func (i *Inspector) Instances() []InstanceInfo {
	i.mu.RLock()
	out := make([]InstanceInfo, 0, len(i.targets))
	for id, t := range i.targets {
		out = append(out, InstanceInfo{
			ID:     id,
			Name:   t.Instance().Name(),
			Cycles: t.Snapshot().Cycles,
		})
	}
	i.mu.RUnlock()

	sort.Slice(out, func(a, b int) bool {
		if out[a].Name != out[b].Name {
			return out[a].Name < out[b].Name
		}
		return out[a].ID < out[b].ID
	})
	return out
}

// Act runs action on the instance with the given ID. Action failures are
// published on the feed.
func (i *Inspector) Act(ctx context.Context, id, action, arg string) error {
	t, err := i.Target(id)
	if err != nil {
		return err
	}

	i.feed.Publish(Event{Type: EventAction, InstanceID: id, Action: action})
	if err := t.Act(ctx, action, arg); err != nil {
		i.logger.Warn("action failed", "instance_id", id, "action", action, "error", err)
		i.feed.Publish(Event{Type: EventError, InstanceID: id, Action: action, Error: err.Error()})
		return err
	}
	return nil
}

// History returns the cycle history.
func (i *Inspector) History() *History {
	return i.history
}

// Feed returns the WebSocket feed.
func (i *Inspector) Feed() *Feed {
	return i.feed
}

// Close disconnects feed clients.
func (i *Inspector) Close() {
	i.feed.Close()
}
