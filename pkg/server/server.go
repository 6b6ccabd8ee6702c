package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/gmvoice/app/pages"
	"github.com/vango-dev/gmvoice/internal/config"
	"github.com/vango-dev/gmvoice/internal/errors"
	"github.com/vango-dev/gmvoice/pkg/call"
	"github.com/vango-dev/gmvoice/pkg/gamesave"
	"github.com/vango-dev/gmvoice/pkg/middleware"
	"github.com/vango-dev/gmvoice/pkg/session"
)

// Options configures a Server. Only Config is required.
type Options struct {
	Config *config.Config
	Logger *slog.Logger

	// Registry receives the gmvoice collectors and backs /metrics.
	// A fresh registry is created when nil.
	Registry *prometheus.Registry

	// TracerProvider is used for event and call spans. Defaults to the
	// global provider.
	TracerProvider trace.TracerProvider

	// Issuer issues call connection details. Defaults to a call.Issuer
	// built from Config.Call.
	Issuer pages.Issuer

	// Master saves games. Defaults to a disk store at Config.SaveDirPath().
	Master *gamesave.Master
}

// Server is the gmvoice HTTP server.
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	sessions *session.Manager
	metrics  *middleware.Metrics
	registry *prometheus.Registry
	issuer   pages.Issuer
	master   *gamesave.Master
	upgrader websocket.Upgrader
	handler  http.Handler

	httpServer *http.Server
}

// New builds a Server and its routes.
func New(opts Options) (*Server, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("E121").WithDetail("server requires a configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:   cfg,
		logger:   logger.With("component", "server"),
		registry: opts.Registry,
		issuer:   opts.Issuer,
		master:   opts.Master,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	if cfg.Metrics.Enabled {
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
			s.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		s.metrics = middleware.NewMetrics(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(s.registry),
		)
	}

	if s.issuer == nil {
		callOpts := []call.Option{call.WithLogger(logger)}
		if opts.TracerProvider != nil {
			callOpts = append(callOpts, call.WithTracerProvider(opts.TracerProvider))
		}
		s.issuer = call.NewIssuer(call.Config{
			ServerURL:  cfg.Call.ServerURL,
			APIKey:     cfg.Call.APIKey,
			APISecret:  cfg.Call.APISecret,
			RoomPrefix: cfg.Call.RoomPrefix,
			TokenTTL:   cfg.TokenTTL(),
		}, callOpts...)
	}
	if s.master == nil {
		s.master = gamesave.NewMaster(gamesave.NewDiskStore(cfg.SaveDirPath()), gamesave.WithLogger(logger))
	}

	tracingOpts := []middleware.TracingOption{}
	if opts.TracerProvider != nil {
		tracingOpts = append(tracingOpts, middleware.WithTracerProvider(opts.TracerProvider))
	}
	sessionConfig := session.DefaultConfig()
	sessionConfig.Middleware = []session.Middleware{
		middleware.Tracing(tracingOpts...),
		s.metrics.Middleware(),
		middleware.Logging(logger),
	}

	s.sessions = session.NewManager(session.ManagerConfig{
		MaxSessions:   cfg.Session.MaxSessions,
		IdleTimeout:   cfg.IdleTimeout(),
		SweepInterval: cfg.SweepInterval(),
		Session:       sessionConfig,
	}, logger)
	s.sessions.SetOnCreate(func(*session.Session) { s.metrics.SessionCreated() })
	s.sessions.SetOnRemove(func(*session.Session) { s.metrics.SessionRemoved() })

	s.handler = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions returns the session manager.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Metrics returns the collectors, or nil when metrics are disabled.
func (s *Server) Metrics() *middleware.Metrics {
	return s.metrics
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// Run listens on the configured address and blocks until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		s.sessions.Run(sweepCtx)
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	var runErr error
	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		runErr = s.Shutdown(context.Background())
	}

	stopSweep()
	<-sweepDone
	return runErr
}

// Shutdown closes all sessions, then stops the HTTP server within the
// configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout())
	defer cancel()

	s.sessions.Shutdown()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
