package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	gmerrors "github.com/vango-dev/gmvoice/internal/errors"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestMetricsMiddleware_Success(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	s := newTestSession(t, func() {}, m.Middleware())

	if err := click(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := metricCounterValue(t, m.eventsTotal.WithLabelValues("click", "success")); got != 1 {
		t.Errorf("events_total(success) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.eventsTotal.WithLabelValues("click", "error")); got != 0 {
		t.Errorf("events_total(error) = %v, want 0", got)
	}
	if got := metricHistogramCount(t, m.eventDuration.WithLabelValues("click")); got != 1 {
		t.Errorf("event_duration sample count = %d, want 1", got)
	}
}

func TestMetricsMiddleware_PanicCountedByCode(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	s := newTestSession(t, func() { panic("boom") }, m.Middleware())

	if err := click(s); !gmerrors.HasCode(err, "E105") {
		t.Fatalf("error = %v, want E105", err)
	}

	if got := metricCounterValue(t, m.eventErrors.WithLabelValues("click", "E105")); got != 1 {
		t.Errorf("event_errors_total(E105) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.eventsTotal.WithLabelValues("click", "error")); got != 1 {
		t.Errorf("events_total(error) = %v, want 1", got)
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{gmerrors.New("E102"), "E102"},
		{context.DeadlineExceeded, "timeout"},
		{errors.New("something odd"), "internal"},
	}
	for _, tt := range tests {
		if got := errorCode(tt.err); got != tt.want {
			t.Errorf("errorCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestMetricsRecorders(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))

	m.SessionCreated()
	m.SessionCreated()
	m.SessionRemoved()
	m.CallIssued(nil)
	m.CallIssued(errors.New("no creds"))
	m.SaveRecorded("save", nil)
	m.SaveRecorded("restart", nil)
	m.WebSocketError("upgrade")

	if got := metricGaugeValue(t, m.activeSessions); got != 1 {
		t.Errorf("active_sessions = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.sessionsCreated); got != 2 {
		t.Errorf("sessions_created_total = %v, want 2", got)
	}
	if got := metricCounterValue(t, m.callsIssued.WithLabelValues("error")); got != 1 {
		t.Errorf("calls_issued_total(error) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.savesTotal.WithLabelValues("restart", "success")); got != 1 {
		t.Errorf("saves_total(restart) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.wsErrors.WithLabelValues("upgrade")); got != 1 {
		t.Errorf("websocket_errors_total = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.SessionCreated()
	m.SessionRemoved()
	m.CallIssued(nil)
	m.SaveRecorded("save", nil)
	m.WebSocketError("x")

	calls := 0
	s := newTestSession(t, func() { calls++ }, m.Middleware())
	if err := click(s); err != nil || calls != 1 {
		t.Errorf("nil metrics middleware: err=%v calls=%d", err, calls)
	}
}

func TestNewMetricsUsesNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("gm"), WithConstLabels(prometheus.Labels{"app": "library"}))
	m.SessionCreated()

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "gm_sessions_created_total" {
			found = true
			if lbl := f.GetMetric()[0].GetLabel(); len(lbl) != 1 || lbl[0].GetValue() != "library" {
				t.Errorf("const labels = %v", lbl)
			}
		}
	}
	if !found {
		t.Error("gm_sessions_created_total not registered")
	}
}
