package demo

import (
	"fmt"
	"io"

	"github.com/vango-dev/hookrt/pkg/hooks"
)

// InitialText is the text state before the first Type action.
const InitialText = "User initial text"

// Component renders the count and text state to a writer.
type Component struct {
	out     io.Writer
	effects bool
}

// ComponentOption configures a Component.
type ComponentOption func(*Component)

// WithoutEffects drops the two logging effects from the component.
func WithoutEffects() ComponentOption {
	return func(c *Component) {
		c.effects = false
	}
}

// NewComponent creates a component writing its output to out.
func NewComponent(out io.Writer, opts ...ComponentOption) *Component {
	if out == nil {
		out = io.Discard
	}
	c := &Component{out: out, effects: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Func returns the render function of the component bound to in.
func (c *Component) Func(in *hooks.Instance) func() View {
	return func() View {
		count, setCount := hooks.UseState(in, 0)
		text, setText := hooks.UseState(in, InitialText)

		if c.effects {
			hooks.UseEffect(in, func() {
				fmt.Fprintf(c.out, "effect: count is %d\n", count)
			}, count)
			hooks.UseEffect(in, func() {
				fmt.Fprintf(c.out, "effect: text is %q\n", text)
			}, text)
		}

		return View{
			Count:    count,
			Text:     text,
			out:      c.out,
			setCount: setCount,
			setText:  setText,
		}
	}
}

// View is the result of one render of the component. Its actions write
// state through the setters captured during that render.
type View struct {
	Count int
	Text  string

	out      io.Writer
	setCount hooks.Setter[int]
	setText  hooks.Setter[string]
}

// Render prints the view state.
func (v View) Render() {
	fmt.Fprintln(v.out, v.String())
}

// String returns the state as {count:N text:"..."}.
func (v View) String() string {
	return fmt.Sprintf("{count:%d text:%q}", v.Count, v.Text)
}

// Click increments the count seen by this view.
func (v View) Click() {
	v.setCount.Set(v.Count + 1)
}

// Type replaces the text.
func (v View) Type(text string) {
	v.setText.Set(text)
}
