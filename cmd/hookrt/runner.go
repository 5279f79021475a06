package main

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/vango-dev/hookrt/internal/config"
	"github.com/vango-dev/hookrt/pkg/hooks"
	"github.com/vango-dev/hookrt/pkg/middleware"
)

// loadConfig loads path, or the config file of the working directory.
func loadConfig(path string) (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.LoadOrDefault(path, dir)
}

// runner holds what every instance created by a command shares.
type runner struct {
	cfg    *config.Config
	logger *slog.Logger
	tp     *sdktrace.TracerProvider
	mw     []hooks.Middleware
}

func newRunner(cfg *config.Config, logger *slog.Logger) *runner {
	rt := &runner{cfg: cfg, logger: logger}

	if cfg.Tracing.Enabled {
		rt.tp = sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(&logSpanProcessor{logger: logger}),
		)
		rt.mw = append(rt.mw, middleware.OpenTelemetry(
			middleware.WithTracerName(cfg.Tracing.TracerName),
			middleware.WithTracerProvider(rt.tp),
		))
	}
	if cfg.Metrics.Enabled {
		rt.mw = append(rt.mw, middleware.Prometheus(
			middleware.WithNamespace(cfg.Metrics.Namespace),
		))
	}
	return rt
}

// instanceOptions returns the options of an instance named name.
func (rt *runner) instanceOptions(name string, extra ...hooks.Option) []hooks.Option {
	opts := []hooks.Option{
		hooks.WithName(name),
		hooks.WithLogger(rt.logger),
		hooks.WithStrictDeps(rt.cfg.Runtime.StrictDeps),
		hooks.WithMiddleware(rt.mw...),
	}
	return append(opts, extra...)
}

func (rt *runner) shutdown(ctx context.Context) error {
	if rt.tp == nil {
		return nil
	}
	return rt.tp.Shutdown(ctx)
}

// logSpanProcessor writes ended spans to the logger at debug level.
type logSpanProcessor struct {
	logger *slog.Logger
}

func (p *logSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *logSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	args := []any{
		"span", s.Name(),
		"trace_id", s.SpanContext().TraceID().String(),
		"duration", s.EndTime().Sub(s.StartTime()),
		"status", s.Status().Code.String(),
	}
	for _, kv := range s.Attributes() {
		args = append(args, slog.Any(string(kv.Key), attrValue(kv.Value)))
	}
	p.logger.Debug("span ended", args...)
}

func (p *logSpanProcessor) Shutdown(context.Context) error   { return nil }
func (p *logSpanProcessor) ForceFlush(context.Context) error { return nil }

func attrValue(v attribute.Value) any {
	switch v.Type() {
	case attribute.INT64:
		return v.AsInt64()
	case attribute.BOOL:
		return v.AsBool()
	case attribute.FLOAT64:
		return v.AsFloat64()
	default:
		return v.Emit()
	}
}

// newInstance creates an instance carrying the shared options.
func (rt *runner) newInstance(name string, extra ...hooks.Option) *hooks.Instance {
	return hooks.NewInstance(rt.instanceOptions(name, extra...)...)
}
