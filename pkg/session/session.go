package session

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/gmvoice/internal/errors"
	"github.com/vango-dev/gmvoice/pkg/protocol"
	"github.com/vango-dev/gmvoice/pkg/render"
	"github.com/vango-dev/gmvoice/pkg/vdom"
)

// Config configures a session.
type Config struct {
	// SendBuffer is the outbound queue capacity.
	SendBuffer int

	// ReadTimeout is how long the connection may stay silent.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single write.
	WriteTimeout time.Duration

	// PingInterval is the WebSocket heartbeat period.
	PingInterval time.Duration

	// Middleware wraps every dispatched event, first element outermost.
	Middleware []Middleware
}

// DefaultConfig returns sensible session defaults.
func DefaultConfig() Config {
	return Config{
		SendBuffer:   32,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
		PingInterval: 25 * time.Second,
	}
}

// Session is one browser tab's server-side state.
type Session struct {
	id        string
	createdAt time.Time
	config    Config
	logger    *slog.Logger

	mu         sync.Mutex
	tree       *vdom.VNode
	handlers   map[string]any
	lastActive time.Time
	attached   bool

	// dispatchMu serializes handler execution.
	dispatchMu sync.Mutex

	out    chan *protocol.Message
	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool

	closeOnce   sync.Once
	closeReason atomic.Value // protocol.CloseReason
}

// New creates a detached session with a random id.
func New(config Config, logger *slog.Logger) *Session {
	if config.SendBuffer <= 0 {
		config.SendBuffer = DefaultConfig().SendBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now()

	return &Session{
		id:         id,
		createdAt:  now,
		config:     config,
		logger:     logger.With("session", id),
		handlers:   make(map[string]any),
		lastActive: now,
		out:        make(chan *protocol.Message, config.SendBuffer),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Context is cancelled when the session closes.
func (s *Session) Context() context.Context { return s.ctx }

// Logger returns the session-scoped logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// Tree returns the mounted view.
func (s *Session) Tree() *vdom.VNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// Mount replaces the view and its handler table. The handler map is
// copied, so the renderer may be reused afterwards.
func (s *Session) Mount(tree *vdom.VNode, handlers map[string]any) {
	table := make(map[string]any, len(handlers))
	for k, v := range handlers {
		table[k] = v
	}

	s.mu.Lock()
	s.tree = tree
	s.handlers = table
	s.mu.Unlock()
	s.touch()
}

// HandlerCount returns the number of mounted handlers.
func (s *Session) HandlerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

// Dispatch runs the handler bound to ev through the middleware chain.
// Handlers run one at a time per session. A panicking handler is recovered
// and reported as an E105 error.
func (s *Session) Dispatch(ctx context.Context, ev *Event) error {
	if s.closed.Load() {
		return errors.New("E106")
	}
	if ev.Session == nil {
		ev.Session = s
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	ev.Name = protocol.NormalizeEvent(ev.Name)
	s.touch()

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	final := func(ctx context.Context) error {
		s.mu.Lock()
		h, ok := s.handlers[render.HandlerKey(ev.HID, ev.Name)]
		s.mu.Unlock()
		if !ok {
			return errors.New("E102").
				WithDetail(fmt.Sprintf("no %s handler for element %s", ev.Name, ev.HID))
		}
		return s.invoke(ev, h)
	}

	return chain(s.config.Middleware, ev, final)(ctx)
}

func (s *Session) invoke(ev *Event, h any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			s.logger.Error("handler panic",
				"hid", ev.HID,
				"event", ev.Name,
				"panic", r,
				"stack", string(stack))
			err = errors.New("E105").WithDetail(fmt.Sprint(r))
		}
	}()

	switch fn := h.(type) {
	case func():
		fn()
		return nil
	case func(*Event):
		fn(ev)
		return nil
	case func(*Event) error:
		return fn(ev)
	default:
		return errors.New("E103").WithDetail(fmt.Sprintf("handler for %s has type %T", ev.HID, h))
	}
}

// Send queues a message for the client. Messages queued while the session
// is detached are delivered on the next Attach.
func (s *Session) Send(msg *protocol.Message) error {
	if s.closed.Load() {
		return errors.New("E106")
	}
	select {
	case s.out <- msg:
		return nil
	default:
		return errors.Newf(errors.CategoryRuntime, "send queue full (%d messages)", cap(s.out))
	}
}

// Pending returns the number of queued outbound messages.
func (s *Session) Pending() int {
	return len(s.out)
}

// IsAttached reports whether a connection is currently attached.
func (s *Session) IsAttached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

// IsClosed reports whether Close has been called.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// LastActive returns the time of the last event, mount or detach.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// IdleFor reports how long a detached session has been idle at now.
// Attached sessions are never idle.
func (s *Session) IdleFor(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attached {
		return 0
	}
	return now.Sub(s.lastActive)
}

// Close ends the session. Safe to call more than once.
func (s *Session) Close(reason protocol.CloseReason) {
	s.closeOnce.Do(func() {
		s.closeReason.Store(reason)
		s.closed.Store(true)
		s.cancel()
		s.logger.Debug("session closed", "reason", reason)
	})
}

func (s *Session) reason() protocol.CloseReason {
	if r, ok := s.closeReason.Load().(protocol.CloseReason); ok {
		return r
	}
	return protocol.CloseNormal
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}
