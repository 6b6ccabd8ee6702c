package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/gmvoice/internal/errors"
	"github.com/vango-dev/gmvoice/pkg/protocol"
)

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// MaxSessions caps live sessions. Zero means unlimited.
	MaxSessions int

	// IdleTimeout is how long a detached session survives.
	IdleTimeout time.Duration

	// SweepInterval is how often Run sweeps idle sessions.
	SweepInterval time.Duration

	// Session is applied to every created session.
	Session Config
}

// DefaultManagerConfig returns sensible manager defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		MaxSessions:   1000,
		IdleTimeout:   5 * time.Minute,
		SweepInterval: 30 * time.Second,
		Session:       DefaultConfig(),
	}
}

// Manager owns all live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	config ManagerConfig
	logger *slog.Logger

	onCreate func(*Session)
	onRemove func(*Session)
}

// NewManager creates a Manager.
func NewManager(config ManagerConfig, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = DefaultManagerConfig().IdleTimeout
	}
	if config.SweepInterval <= 0 {
		config.SweepInterval = DefaultManagerConfig().SweepInterval
	}
	return &Manager{
		sessions: make(map[string]*Session),
		config:   config,
		logger:   logger.With("component", "session_manager"),
	}
}

// SetOnCreate registers a callback run after each session is created.
func (m *Manager) SetOnCreate(fn func(*Session)) {
	m.mu.Lock()
	m.onCreate = fn
	m.mu.Unlock()
}

// SetOnRemove registers a callback run after each session is removed.
func (m *Manager) SetOnRemove(fn func(*Session)) {
	m.mu.Lock()
	m.onRemove = fn
	m.mu.Unlock()
}

// MaxSessions returns the configured session cap.
func (m *Manager) MaxSessions() int {
	return m.config.MaxSessions
}

// Create starts a new session. It fails with E104 when the manager is full.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	if m.config.MaxSessions > 0 && len(m.sessions) >= m.config.MaxSessions {
		m.mu.Unlock()
		m.logger.Warn("session limit reached", "max", m.config.MaxSessions)
		return nil, errors.New("E104")
	}
	s := New(m.config.Session, m.logger)
	m.sessions[s.ID()] = s
	onCreate := m.onCreate
	m.mu.Unlock()

	m.logger.Debug("session created", "session", s.ID())
	if onCreate != nil {
		onCreate(s)
	}
	return s, nil
}

// Get returns the live session with id, or E101.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok || s.IsClosed() {
		return nil, errors.New("E101")
	}
	return s, nil
}

// Remove closes and forgets the session with id.
func (m *Manager) Remove(id string) {
	m.remove(id, protocol.CloseNormal)
}

func (m *Manager) remove(id string, reason protocol.CloseReason) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	onRemove := m.onRemove
	m.mu.Unlock()

	if !ok {
		return false
	}
	s.Close(reason)
	if onRemove != nil {
		onRemove(s)
	}
	return true
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions that are closed or have been detached longer
// than the idle timeout. It returns how many were removed.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.RLock()
	var expired []string
	for id, s := range m.sessions {
		if s.IsClosed() || s.IdleFor(now) > m.config.IdleTimeout {
			expired = append(expired, id)
		}
	}
	m.mu.RUnlock()

	removed := 0
	for _, id := range expired {
		if m.remove(id, protocol.CloseSessionExpired) {
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("swept idle sessions", "count", removed, "remaining", m.Len())
	}
	return removed
}

// Run sweeps on the configured interval until ctx is done, then closes
// every remaining session.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			m.Sweep(now)
		case <-ctx.Done():
			m.Shutdown()
			return
		}
	}
}

// Shutdown closes every session with CloseServerShutdown.
func (m *Manager) Shutdown() {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		m.remove(id, protocol.CloseServerShutdown)
	}
}
