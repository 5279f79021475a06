package middleware

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/hookrt/pkg/hooks"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "hookrt").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for cycle duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "hookrt",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus collectors.
type metrics struct {
	cyclesTotal   *prometheus.CounterVec
	cycleDuration *prometheus.HistogramVec
	cycleErrors   *prometheus.CounterVec
	hooksVisited  *prometheus.GaugeVec
	effectsFired  *prometheus.CounterVec
}

// globalMetrics is created on the first call to Prometheus. Collectors can
// only be registered once per registry, so every instance shares them and
// is told apart by the instance label.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		cyclesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_cycles_total",
			Help:        "Total number of render cycles by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"instance", "status"}),

		cycleDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_cycle_duration_seconds",
			Help:        "Render cycle duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"instance"}),

		cycleErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_cycle_errors_total",
			Help:        "Total number of aborted render cycles by hook error code",
			ConstLabels: config.ConstLabels,
		}, []string{"instance", "code"}),

		hooksVisited: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "hooks_per_cycle",
			Help:        "Number of hooks visited by the last render cycle",
			ConstLabels: config.ConstLabels,
		}, []string{"instance"}),

		effectsFired: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effects_fired_total",
			Help:        "Total number of effect callbacks invoked",
			ConstLabels: config.ConstLabels,
		}, []string{"instance"}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for every
// render cycle.
//
// Metrics collected:
//   - hookrt_render_cycles_total: cycles by instance and status
//   - hookrt_render_cycle_duration_seconds: cycle duration histogram
//   - hookrt_render_cycle_errors_total: aborted cycles by hook error code
//   - hookrt_hooks_per_cycle: hooks visited by the last cycle
//   - hookrt_effects_fired_total: effect callbacks invoked
//
// Options only take effect on the first call; later calls share the
// collectors created then.
func Prometheus(opts ...MetricsOption) hooks.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return hooks.MiddlewareFunc(func(c *hooks.Cycle, next func() error) error {
		instance := c.InstanceName()
		start := time.Now()

		err := next()

		m.cycleDuration.WithLabelValues(instance).Observe(time.Since(start).Seconds())
		m.hooksVisited.WithLabelValues(instance).Set(float64(c.Hooks))
		if c.EffectsFired > 0 {
			m.effectsFired.WithLabelValues(instance).Add(float64(c.EffectsFired))
		}

		status := "success"
		if err != nil {
			status = "error"
			m.cycleErrors.WithLabelValues(instance, categorizeError(err)).Inc()
		}
		m.cyclesTotal.WithLabelValues(instance, status).Inc()

		return err
	})
}

// categorizeError returns the hook error code, keeping label cardinality
// bounded by the registry of codes.
func categorizeError(err error) string {
	if code := hooks.ErrorCode(err); code != "" {
		return code
	}
	return "other"
}

// Collector exposes the collectors for custom registrations and tests.
type Collector struct {
	CyclesTotal   *prometheus.CounterVec
	CycleDuration *prometheus.HistogramVec
	CycleErrors   *prometheus.CounterVec
	HooksVisited  *prometheus.GaugeVec
	EffectsFired  *prometheus.CounterVec
}

// GetMetrics returns the global collectors, or nil if Prometheus has not
// been called yet.
func GetMetrics() *Collector {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	if globalMetrics == nil {
		return nil
	}
	return &Collector{
		CyclesTotal:   globalMetrics.cyclesTotal,
		CycleDuration: globalMetrics.cycleDuration,
		CycleErrors:   globalMetrics.cycleErrors,
		HooksVisited:  globalMetrics.hooksVisited,
		EffectsFired:  globalMetrics.effectsFired,
	}
}
