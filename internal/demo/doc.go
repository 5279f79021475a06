// Package demo contains the counter/text component used by the hookrt CLI
// and the inspector.
//
// The component keeps two pieces of state, a click counter and a line of
// text, and registers one effect per state value. A Session renders the
// component on an instance and applies actions between cycles:
//
//	s := demo.NewSession(in, demo.NewComponent(os.Stdout))
//	s.Render(ctx)            // {count:0 text:"User initial text"}
//	s.Dispatch(ctx, "click", "")
//	                         // {count:1 text:"User initial text"}
package demo
