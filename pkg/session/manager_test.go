package session

import (
	"context"
	"testing"
	"time"

	"github.com/vango-dev/gmvoice/internal/errors"
)

func TestManagerCreateGetRemove(t *testing.T) {
	m := NewManager(DefaultManagerConfig(), nil)

	s, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}

	got, err := m.Get(s.ID())
	if err != nil || got != s {
		t.Fatalf("Get() = %v, %v", got, err)
	}

	m.Remove(s.ID())
	if !s.IsClosed() {
		t.Error("removed session should be closed")
	}
	if _, err := m.Get(s.ID()); !errors.HasCode(err, "E101") {
		t.Errorf("Get after remove = %v, want E101", err)
	}
	m.Remove(s.ID())
}

func TestManagerMaxSessions(t *testing.T) {
	cfg := DefaultManagerConfig()
	cfg.MaxSessions = 2
	m := NewManager(cfg, nil)

	for i := 0; i < 2; i++ {
		if _, err := m.Create(); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}
	if _, err := m.Create(); !errors.HasCode(err, "E104") {
		t.Errorf("Create over limit = %v, want E104", err)
	}
	if m.MaxSessions() != 2 {
		t.Errorf("MaxSessions() = %d", m.MaxSessions())
	}
}

func TestManagerHooks(t *testing.T) {
	m := NewManager(DefaultManagerConfig(), nil)
	var created, removed int
	m.SetOnCreate(func(*Session) { created++ })
	m.SetOnRemove(func(*Session) { removed++ })

	s, _ := m.Create()
	m.Remove(s.ID())
	m.Remove(s.ID())

	if created != 1 || removed != 1 {
		t.Errorf("created=%d removed=%d, want 1/1", created, removed)
	}
}

func TestManagerSweep(t *testing.T) {
	cfg := DefaultManagerConfig()
	cfg.IdleTimeout = time.Minute
	m := NewManager(cfg, nil)

	idle, _ := m.Create()
	fresh, _ := m.Create()
	closed, _ := m.Create()
	closed.Close("error")

	fresh.touch()
	idle.mu.Lock()
	idle.lastActive = time.Now().Add(-2 * time.Minute)
	idle.mu.Unlock()

	if n := m.Sweep(time.Now()); n != 2 {
		t.Errorf("Sweep() = %d, want 2", n)
	}
	if _, err := m.Get(fresh.ID()); err != nil {
		t.Errorf("fresh session swept: %v", err)
	}
	if idle.reason() != "session_expired" {
		t.Errorf("idle reason = %q", idle.reason())
	}
}

func TestManagerSweepSkipsAttached(t *testing.T) {
	cfg := DefaultManagerConfig()
	cfg.IdleTimeout = time.Minute
	m := NewManager(cfg, nil)

	s, _ := m.Create()
	s.mu.Lock()
	s.attached = true
	s.lastActive = time.Now().Add(-time.Hour)
	s.mu.Unlock()

	if n := m.Sweep(time.Now()); n != 0 {
		t.Errorf("Sweep() = %d, attached sessions must survive", n)
	}
}

func TestManagerRunShutdown(t *testing.T) {
	m := NewManager(DefaultManagerConfig(), nil)
	s, _ := m.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if m.Len() != 0 || !s.IsClosed() {
		t.Errorf("Len()=%d closed=%v after shutdown", m.Len(), s.IsClosed())
	}
	if s.reason() != "server_shutdown" {
		t.Errorf("reason = %q", s.reason())
	}
}
