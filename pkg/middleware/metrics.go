package middleware

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/gmvoice/internal/errors"
	"github.com/vango-dev/gmvoice/pkg/session"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "gmvoice").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
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
		Namespace: "gmvoice",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for gmvoice.
type Metrics struct {
	eventsTotal     *prometheus.CounterVec
	eventDuration   *prometheus.HistogramVec
	eventErrors     *prometheus.CounterVec
	activeSessions  prometheus.Gauge
	sessionsCreated prometheus.Counter
	callsIssued     *prometheus.CounterVec
	savesTotal      *prometheus.CounterVec
	wsErrors        *prometheus.CounterVec
}

// NewMetrics registers the gmvoice collectors with the configured registry.
// Registering twice with the same registry panics, so create one Metrics
// per registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of client events dispatched",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event handler duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"event"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_errors_total",
			Help:        "Total number of failed events by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "code"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of live sessions",
			ConstLabels: config.ConstLabels,
		}),

		sessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sessions_created_total",
			Help:        "Total number of sessions created",
			ConstLabels: config.ConstLabels,
		}),

		callsIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "calls_issued_total",
			Help:        "Total number of call connection details issued",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		savesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "saves_total",
			Help:        "Total number of game saves by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Middleware returns session middleware that counts and times events.
func (m *Metrics) Middleware() session.Middleware {
	return func(ctx context.Context, ev *session.Event, next func(context.Context) error) error {
		if m == nil {
			return next(ctx)
		}

		start := time.Now()
		err := next(ctx)
		m.eventDuration.WithLabelValues(ev.Name).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.eventErrors.WithLabelValues(ev.Name, errorCode(err)).Inc()
		}
		m.eventsTotal.WithLabelValues(ev.Name, status).Inc()

		return err
	}
}

// errorCode returns a bounded label value for err.
func errorCode(err error) string {
	if code := errors.CodeOf(err); code != "" {
		return code
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "internal"
}

// SessionCreated records a new session.
func (m *Metrics) SessionCreated() {
	if m == nil {
		return
	}
	m.sessionsCreated.Inc()
	m.activeSessions.Inc()
}

// SessionRemoved records a removed session.
func (m *Metrics) SessionRemoved() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

// CallIssued records an attempt to issue call connection details.
func (m *Metrics) CallIssued(err error) {
	if m == nil {
		return
	}
	m.callsIssued.WithLabelValues(statusOf(err)).Inc()
}

// SaveRecorded records a save attempt of the given kind ("save" or "restart").
func (m *Metrics) SaveRecorded(kind string, err error) {
	if m == nil {
		return
	}
	m.savesTotal.WithLabelValues(kind, statusOf(err)).Inc()
}

// WebSocketError records a WebSocket failure.
func (m *Metrics) WebSocketError(errorType string) {
	if m == nil {
		return
	}
	m.wsErrors.WithLabelValues(errorType).Inc()
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
