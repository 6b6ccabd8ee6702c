// Package middleware provides session middleware for gmvoice.
//
// This package includes:
//   - OpenTelemetry tracing of every dispatched event
//   - Prometheus metrics for events, sessions, calls and saves
//   - Structured logging of dispatched events
//
// Middleware plugs into the session runtime:
//
//	metrics := middleware.NewMetrics(middleware.WithNamespace("gmvoice"))
//	cfg := session.DefaultConfig()
//	cfg.Middleware = []session.Middleware{
//	    middleware.Tracing(),
//	    metrics.Middleware(),
//	    middleware.Logging(logger),
//	}
//
// # Prometheus Metrics
//
//	gmvoice_events_total{event,status}
//	gmvoice_event_duration_seconds{event}
//	gmvoice_event_errors_total{event,code}
//	gmvoice_active_sessions
//	gmvoice_sessions_created_total
//	gmvoice_calls_issued_total{status}
//	gmvoice_saves_total{kind,status}
//	gmvoice_websocket_errors_total{type}
//
// A nil *Metrics is valid and records nothing, so callers never need to
// check whether metrics are enabled.
package middleware
