package gamesave

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/vango-dev/gmvoice/internal/errors"
)

// SaveResult describes a written save.
type SaveResult struct {
	Name    string  `json:"name"`
	Record  *Record `json:"record"`
	Message string  `json:"message"`
}

// RestartResult describes a restart. Saved is nil when there was nothing
// to save or the save failed, in which case SaveErr says why.
type RestartResult struct {
	Saved   *SaveResult `json:"saved,omitempty"`
	SaveErr error       `json:"-"`
	Message string      `json:"message"`
}

// Option configures a Master.
type Option func(*Master)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Master) { m.logger = logger }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Master) { m.now = now }
}

// Master saves and restarts games.
type Master struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewMaster creates a Master writing to store.
func NewMaster(store Store, opts ...Option) *Master {
	m := &Master{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "gamesave")
	return m
}

// Save writes history as a new record. An empty history fails with E301
// and a store failure with E302.
func (m *Master) Save(ctx context.Context, history []Turn) (*SaveResult, error) {
	if len(history) == 0 {
		return nil, errors.New("E301").WithDetail("Cannot save: The chat history is empty.")
	}

	rec := NewRecord(history, m.now())
	data, err := rec.Marshal()
	if err != nil {
		return nil, errors.New("E302").Wrap(err)
	}

	name := rec.FileName()
	if err := m.store.Put(ctx, name, data); err != nil {
		m.logger.Error("error saving game state", "name", name, "error", err)
		return nil, errors.New("E302").Wrap(err)
	}

	m.logger.Info("game state saved", "name", name, "player", rec.PlayerName, "turns", rec.TurnsCount)
	return &SaveResult{
		Name:    name,
		Record:  rec,
		Message: "Game state saved successfully as " + name + ".",
	}, nil
}

// Restart saves any existing history and returns the restart line. A
// failed save does not stop the restart.
func (m *Master) Restart(ctx context.Context, history []Turn) *RestartResult {
	if len(history) == 0 {
		return &RestartResult{Message: "Could not save previous session. " + RestartLine}
	}

	saved, err := m.Save(ctx, history)
	if err != nil {
		return &RestartResult{
			SaveErr: err,
			Message: "Error saving game state: " + err.Error() + " " + RestartLine,
		}
	}
	return &RestartResult{
		Saved:   saved,
		Message: saved.Message + " " + RestartLine,
	}
}

// Load reads a saved record. A missing save fails with E303.
func (m *Master) Load(ctx context.Context, name string) (*Record, error) {
	data, err := m.store.Get(ctx, name)
	if err != nil {
		if stderrors.Is(err, ErrNotFound) || stderrors.Is(err, ErrInvalidName) {
			return nil, errors.New("E303").WithDetail("No save named " + name).Wrap(err)
		}
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Newf(errors.CategoryStorage, "decode save %s: %v", name, err)
	}
	return &rec, nil
}

// List returns the names of all saves.
func (m *Master) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}
