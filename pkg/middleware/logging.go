package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/gmvoice/pkg/session"
)

// Logging logs every dispatched event. Successful events log at debug
// level, failures at warn.
func Logging(logger *slog.Logger) session.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "events")

	return func(ctx context.Context, ev *session.Event, next func(context.Context) error) error {
		start := time.Now()
		err := next(ctx)

		attrs := []any{
			"event", ev.Name,
			"hid", ev.HID,
			"duration", time.Since(start),
		}
		if ev.Session != nil {
			attrs = append(attrs, "session", ev.Session.ID())
		}
		if err != nil {
			logger.WarnContext(ctx, "event failed", append(attrs, "error", err)...)
		} else {
			logger.DebugContext(ctx, "event handled", attrs...)
		}
		return err
	}
}
