package demo

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/hookrt/internal/errors"
	"github.com/vango-dev/hookrt/pkg/hooks"
)

// Action names understood by Dispatch.
const (
	ActionClick = "click"
	ActionType  = "type"
)

// Actions lists the action names understood by Dispatch.
var Actions = []string{ActionClick, ActionType}

// Session drives one component on one instance. Its methods may be called
// from several goroutines; cycles are serialized.
type Session struct {
	mu   sync.Mutex
	in   *hooks.Instance
	fn   func() View
	view View
	ok   bool
}

// NewSession binds comp to in.
func NewSession(in *hooks.Instance, comp *Component) *Session {
	return &Session{
		in: in,
		fn: comp.Func(in),
	}
}

// Instance returns the instance the session renders.
func (s *Session) Instance() *hooks.Instance {
	return s.in
}

// Render runs one cycle and keeps the view for later actions.
func (s *Session) Render(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.render(ctx)
}

func (s *Session) render(ctx context.Context) (View, error) {
	v, err := hooks.RenderContext(ctx, s.in, s.fn)
	if err != nil {
		return s.view, err
	}
	s.view = v
	s.ok = true
	return v, nil
}

// Dispatch applies action to the last rendered view and renders again. The
// session is rendered first if it has no view yet.
func (s *Session) Dispatch(ctx context.Context, action, arg string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ok {
		if _, err := s.render(ctx); err != nil {
			return s.view, err
		}
	}

	switch action {
	case ActionClick:
		s.view.Click()
	case ActionType:
		s.view.Type(arg)
	default:
		return s.view, errors.New("H120").
			Because("%q", action).
			WithSuggestion("Use one of: " + strings.Join(Actions, ", "))
	}
	return s.render(ctx)
}

// Act is Dispatch without the view.
func (s *Session) Act(ctx context.Context, action, arg string) error {
	_, err := s.Dispatch(ctx, action, arg)
	return err
}

// Snapshot returns the instance snapshot between cycles.
func (s *Session) Snapshot() hooks.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in.Snapshot()
}

// Step is one action of a scenario.
type Step struct {
	Action string `json:"action" yaml:"action"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
}

// DefaultScenario clicks and types twice each, producing five cycles with
// the initial render.
var DefaultScenario = []Step{
	{Action: ActionClick},
	{Action: ActionType, Text: "User typed new text"},
	{Action: ActionClick},
	{Action: ActionType, Text: "User typed more new text"},
}

// Script is the file form of a scenario.
type Script struct {
	Steps []Step `json:"steps" yaml:"steps"`
}

// LoadScript reads a YAML (or JSON) scenario.
func LoadScript(r io.Reader) ([]Step, error) {
	var script Script
	if err := yaml.NewDecoder(r).Decode(&script); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, step := range script.Steps {
		if !validAction(step.Action) {
			return nil, errors.New("H120").
				Because("step %d: %q", i+1, step.Action).
				WithDetail("Scripts drive the counter component, which only exposes click and type.").
				WithSuggestion("Use one of: " + strings.Join(Actions, ", "))
		}
	}
	return script.Steps, nil
}

func validAction(action string) bool {
	for _, a := range Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Run renders the session once and then applies every step, rendering
// after each. It stops at the first failed cycle.
func Run(ctx context.Context, s *Session, steps []Step) error {
	if _, err := s.Render(ctx); err != nil {
		return err
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.Dispatch(ctx, step.Action, step.Text); err != nil {
			return err
		}
	}
	return nil
}
