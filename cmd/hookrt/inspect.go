package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hookrt/internal/demo"
	"github.com/vango-dev/hookrt/pkg/devtools"
	"github.com/vango-dev/hookrt/pkg/hooks"
)

type inspectOptions struct {
	configPath string
	addr       string
	instances  int
}

func inspectCmd() *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Serve demo instances behind the inspector",
		Long: `Start the inspector HTTP server with demo instances registered.

Each instance is rendered once at startup. Actions posted to the
inspector re-render the instance and stream the cycle to WebSocket
clients.

Routes:
  GET  /instances
  GET  /instances/{id}
  POST /instances/{id}/actions/{click|type}
  GET  /cycles?limit=N
  GET  /ws
  GET  /metrics

Examples:
  hookrt inspect
  hookrt inspect --addr :7070 --instances 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runInspect(ctx, cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default hookrt.json or hookrt.yaml in the working directory)")
	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Address to listen on (default from config)")
	cmd.Flags().IntVarP(&opts.instances, "instances", "n", 1, "Number of demo instances")

	return cmd
}

// setupInspector creates the inspector and its rendered demo sessions.
func setupInspector(ctx context.Context, rt *runner, count int) (*devtools.Inspector, []*demo.Session, error) {
	insp := devtools.New(
		devtools.WithHistory(rt.cfg.Inspector.History),
		devtools.WithLogger(rt.logger),
	)

	base := rt.cfg.Name
	if base == "" {
		base = "counter"
	}

	sessions := make([]*demo.Session, 0, count)
	for n := 1; n <= count; n++ {
		name := base
		if count > 1 {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		in := rt.newInstance(name, hooks.WithObserver(insp.Observe))
		s := demo.NewSession(in, demo.NewComponent(nil))
		insp.Register(s)
		if _, err := s.Render(ctx); err != nil {
			return nil, nil, err
		}
		sessions = append(sessions, s)
	}
	return insp, sessions, nil
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	out := cmd.OutOrStdout()

	if opts.instances < 1 {
		return fmt.Errorf("--instances must be at least 1")
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Inspector.Addr = opts.addr
	}

	rt := newRunner(cfg, cfg.Logger(cmd.ErrOrStderr()))
	defer rt.shutdown(context.Background())

	insp, sessions, err := setupInspector(ctx, rt, opts.instances)
	if err != nil {
		return err
	}
	defer insp.Close()

	printBanner(out)
	fmt.Fprintln(out, "  inspect")
	fmt.Fprintln(out)
	success(out, "Inspector listening on http://%s", cfg.Inspector.Addr)
	for _, s := range sessions {
		info(out, "%s  %s", s.Instance().ID(), s.Instance().Name())
	}
	if !cfg.Metrics.Enabled {
		warn(out, "metrics are disabled, /metrics only serves Go runtime metrics")
	}
	fmt.Fprintln(out)

	return insp.Serve(ctx, cfg.Inspector.Addr)
}
