package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hookrt/internal/demo"
)

type demoOptions struct {
	configPath string
	scriptPath string
	strictDeps bool
	noEffects  bool
}

func demoCmd() *cobra.Command {
	var opts demoOptions

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the counter/text demo component",
		Long: `Render the counter/text component, apply a sequence of actions
and render again after each one.

Every render prints the component state. The component's effects
print when the count or the text changed.

The default scenario renders five times:
  render, click, type, click, type

Examples:
  hookrt demo
  hookrt demo --strict-deps
  hookrt demo --script steps.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runDemo(ctx, cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default hookrt.json or hookrt.yaml in the working directory)")
	cmd.Flags().StringVar(&opts.scriptPath, "script", "", "YAML file with the actions to run")
	cmd.Flags().BoolVar(&opts.strictDeps, "strict-deps", false, "Abort when an effect's dependency list changes length")
	cmd.Flags().BoolVar(&opts.noEffects, "no-effects", false, "Render the component without its effects")

	return cmd
}

func runDemo(ctx context.Context, cmd *cobra.Command, opts demoOptions) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.strictDeps {
		cfg.Runtime.StrictDeps = true
	}

	steps := demo.DefaultScenario
	if opts.scriptPath != "" {
		f, err := os.Open(opts.scriptPath)
		if err != nil {
			return err
		}
		steps, err = demo.LoadScript(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	rt := newRunner(cfg, cfg.Logger(cmd.ErrOrStderr()))
	defer rt.shutdown(context.Background())

	name := cfg.Name
	if name == "" {
		name = "counter"
	}
	in := rt.newInstance(name)

	var compOpts []demo.ComponentOption
	if opts.noEffects {
		compOpts = append(compOpts, demo.WithoutEffects())
	}
	s := demo.NewSession(in, demo.NewComponent(out, compOpts...))

	if err := demo.Run(ctx, s, steps); err != nil {
		warn(out, "stopped after %d cycles", in.Cycles())
		return err
	}
	success(out, "%d cycles rendered", in.Cycles())
	return nil
}
