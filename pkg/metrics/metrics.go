// Package metrics exports component lifecycle measurements to Prometheus.
//
// A Collector implements component.Recorder. Pass it to component.Mount
// (or host.WithComponentOptions) with component.WithRecorder:
//
//	c := metrics.New(metrics.WithRegistry(reg))
//	tree := host.New(host.WithComponentOptions(component.WithRecorder(c)))
//
// Metrics collected:
//   - rxview_mounts_total: Counter of mounted instances by component
//   - rxview_unmounts_total: Counter of disposed instances by component
//   - rxview_active_instances: Gauge of live instances
//   - rxview_renders_total: Counter of view emissions by component
//   - rxview_emission_errors_total: Counter of failures by component and kind
//   - rxview_teardown_seconds: Histogram of teardown duration
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/rxview/pkg/component"
)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "rxview").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for teardown duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "rxview",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records component lifecycle metrics.
type Collector struct {
	mounts    *prometheus.CounterVec
	unmounts  *prometheus.CounterVec
	active    prometheus.Gauge
	renders   *prometheus.CounterVec
	emissions *prometheus.CounterVec
	teardown  prometheus.Histogram
}

var _ component.Recorder = (*Collector)(nil)

// New creates a Collector and registers its metrics. It panics if the
// metrics are already registered on the registry, like promauto.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	if len(config.Buckets) == 0 {
		config.Buckets = prometheus.DefBuckets
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		mounts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounts_total",
			Help:        "Total number of component instances mounted",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		unmounts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unmounts_total",
			Help:        "Total number of component instances disposed",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_instances",
			Help:        "Number of live component instances",
			ConstLabels: config.ConstLabels,
		}),

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of views emitted by component instances",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		emissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "emission_errors_total",
			Help:        "Total view, event and disposal failures",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "kind"}),

		teardown: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "teardown_seconds",
			Help:        "Component teardown duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

// Mounted implements component.Recorder.
func (c *Collector) Mounted(name string) {
	c.mounts.WithLabelValues(name).Inc()
	c.active.Inc()
}

// Unmounted implements component.Recorder.
func (c *Collector) Unmounted(name string, teardown time.Duration) {
	c.unmounts.WithLabelValues(name).Inc()
	c.active.Dec()
	c.teardown.Observe(teardown.Seconds())
}

// Rendered implements component.Recorder.
func (c *Collector) Rendered(name string) {
	c.renders.WithLabelValues(name).Inc()
}

// EmissionFailed implements component.Recorder.
func (c *Collector) EmissionFailed(name, kind string) {
	c.emissions.WithLabelValues(name, kind).Inc()
}
