package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/hookrt/pkg/hooks"
)

// Default tracer name.
const defaultTracerName = "hookrt"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "hookrt").
	TracerName string

	// TracerProvider supplies the tracer. Default: the global provider.
	TracerProvider trace.TracerProvider

	// Filter determines which cycles to trace. If nil, all cycles are.
	Filter func(c *hooks.Cycle) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(c *hooks.Cycle) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithCycleFilter sets a filter function for cycles.
func WithCycleFilter(filter func(c *hooks.Cycle) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(c *hooks.Cycle) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every render cycle.
//
// The middleware:
//   - Creates a span per cycle with instance name, ID and cycle number
//   - Stores the span context on the cycle for inner middleware
//   - Records hooks visited and effects fired
//   - Records errors with the hook error code and sets span status
func OpenTelemetry(opts ...OTelOption) hooks.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	if config.TracerProvider != nil {
		config.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}

	return hooks.MiddlewareFunc(func(c *hooks.Cycle, next func() error) error {
		if config.Filter != nil && !config.Filter(c) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("hookrt.instance", c.InstanceName()),
			attribute.String("hookrt.instance_id", c.InstanceID()),
			attribute.Int("hookrt.cycle", c.Number),
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(c)...)
		}

		spanCtx, span := config.tracer.Start(
			c.Context(),
			fmt.Sprintf("hookrt.render %s", c.InstanceName()),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		c.SetContext(spanCtx)

		err := next()

		span.SetAttributes(
			attribute.Int("hookrt.hooks", c.Hooks),
			attribute.Int("hookrt.effects_fired", c.EffectsFired),
		)
		if err != nil {
			if code := hooks.ErrorCode(err); code != "" {
				span.SetAttributes(attribute.String("hookrt.error_code", code))
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	})
}

// SpanFromCycle returns the span of the cycle, or a no-op span when the
// cycle is not traced.
func SpanFromCycle(c *hooks.Cycle) trace.Span {
	return trace.SpanFromContext(c.Context())
}

// TraceContext returns the cycle context for propagation to other calls.
func TraceContext(c *hooks.Cycle) context.Context {
	return c.Context()
}
