package component

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTracerName is the tracer used when no tracer is configured.
const DefaultTracerName = "rxview"

// Emission error kinds reported to a Recorder.
const (
	KindView     = "view"
	KindEvent    = "event"
	KindDisposal = "disposal"
)

// Recorder receives lifecycle measurements. pkg/metrics provides a
// Prometheus implementation.
type Recorder interface {
	Mounted(name string)
	Unmounted(name string, teardown time.Duration)
	Rendered(name string)
	EmissionFailed(name, kind string)
}

type nopRecorder struct{}

func (nopRecorder) Mounted(string)                  {}
func (nopRecorder) Unmounted(string, time.Duration) {}
func (nopRecorder) Rendered(string)                 {}
func (nopRecorder) EmissionFailed(string, string)   {}

// Option configures Mount.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	recorder Recorder
	tracer   trace.Tracer
}

// WithLogger sets the logger for the instance.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRecorder sets the lifecycle measurement sink.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// WithTracer sets the tracer for mount and unmount spans.
// Default: otel.Tracer(DefaultTracerName) from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.recorder == nil {
		o.recorder = nopRecorder{}
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(DefaultTracerName)
	}
	return o
}
