// Package middleware provides render cycle middleware for hooks instances.
//
// This package includes:
//   - OpenTelemetry tracing: one span per render cycle
//   - Prometheus metrics: cycle counts, durations, errors and effect runs
//
// # OpenTelemetry Middleware
//
//	in := hooks.NewInstance(
//	    hooks.WithMiddleware(
//	        middleware.OpenTelemetry(
//	            middleware.WithTracerName("my-app"),
//	        ),
//	    ),
//	)
//
// Spans carry the instance name and ID, the cycle number, the number of
// hooks visited and effects fired. Aborted cycles record the error and the
// hook error code.
//
// # Prometheus Metrics
//
//	in := hooks.NewInstance(
//	    hooks.WithMiddleware(
//	        middleware.Prometheus(
//	            middleware.WithNamespace("myapp"),
//	        ),
//	    ),
//	)
//
// Then expose the registry:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # Context Propagation
//
// The tracing middleware stores the span context on the cycle, so inner
// middleware and code holding the *hooks.Cycle can continue the trace:
//
//	ctx := middleware.TraceContext(c)
package middleware
