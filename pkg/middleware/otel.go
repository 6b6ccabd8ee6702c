package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/gmvoice/internal/errors"
	"github.com/vango-dev/gmvoice/pkg/session"
)

// Default tracer name for gmvoice.
const defaultTracerName = "gmvoice"

// TracingConfig configures the OpenTelemetry middleware.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "gmvoice").
	TracerName string

	// Provider supplies the tracer. Defaults to the global provider.
	Provider trace.TracerProvider

	// Filter determines which events to trace.
	// If nil, all events are traced.
	Filter func(ev *session.Event) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(ev *session.Event) []attribute.KeyValue
}

// TracingOption configures the OpenTelemetry middleware.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.Provider = tp
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(ev *session.Event) bool) TracingOption {
	return func(c *TracingConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ev *session.Event) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.AttributeExtractor = extractor
	}
}

// Tracing creates middleware that starts a span for every dispatched event.
// The span context is passed to the handler chain, so work started from a
// handler with that context joins the trace.
//
// Configure the global provider in main() before starting the server:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func Tracing(opts ...TracingOption) session.Middleware {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}
	tracer := config.Provider.Tracer(config.TracerName)

	return func(ctx context.Context, ev *session.Event, next func(context.Context) error) error {
		if config.Filter != nil && !config.Filter(ev) {
			return next(ctx)
		}

		attrs := []attribute.KeyValue{
			attribute.String("gmvoice.event_type", ev.Name),
			attribute.String("gmvoice.event_target", ev.HID),
		}
		if ev.Session != nil {
			attrs = append(attrs, attribute.String("gmvoice.session_id", ev.Session.ID()))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(ev)...)
		}

		spanCtx, span := tracer.Start(ctx, "gmvoice."+ev.Name,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		err := next(spanCtx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if code := errors.CodeOf(err); code != "" {
				span.SetAttributes(attribute.String("gmvoice.error_code", code))
			}
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	}
}
