package hooks_test

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vango-dev/hookrt/pkg/hooks"
)

type greeting struct {
	name    string
	setName hooks.Setter[string]
}

func (g greeting) Render() { fmt.Println("hello,", g.name) }

func Example() {
	in := hooks.NewInstance(hooks.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	component := func() greeting {
		name, setName := hooks.UseState(in, "world")
		hooks.UseEffect(in, func() { fmt.Println("name changed to", name) }, name)
		return greeting{name: name, setName: setName}
	}

	g, _ := hooks.Render(in, component)
	g.setName.Set("gopher")
	hooks.Render(in, component)
	hooks.Render(in, component)

	// Output:
	// name changed to world
	// hello, world
	// name changed to gopher
	// hello, gopher
	// hello, gopher
}
