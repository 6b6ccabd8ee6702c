package session

import (
	"context"
	"encoding/json"
	"time"
)

// Event is a client event routed to a session.
type Event struct {
	// HID is the hydration id of the target element.
	HID string

	// Name is the DOM event name without the "on" prefix (e.g., "click").
	Name string

	// Payload is the raw event payload, if the client sent one.
	Payload json.RawMessage

	// Time is when the event was received.
	Time time.Time

	// Session is the session that received the event.
	Session *Session
}

// Middleware wraps event dispatch. Implementations must call next to
// continue the chain and should return its error.
type Middleware func(ctx context.Context, ev *Event, next func(context.Context) error) error

// chain composes middleware around final, first element outermost.
func chain(mws []Middleware, ev *Event, final func(context.Context) error) func(context.Context) error {
	next := final
	for i := len(mws) - 1; i >= 0; i-- {
		mw, inner := mws[i], next
		next = func(ctx context.Context) error {
			return mw(ctx, ev, inner)
		}
	}
	return next
}
