package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/gmvoice/internal/config"
	"github.com/vango-dev/gmvoice/pkg/render"
	"github.com/vango-dev/gmvoice/pkg/routepath"
)

// Route paths.
const (
	PathWebSocket         = "/_gm/ws"
	PathConnectionDetails = "/api/connection-details"
	PathHealth            = "/healthz"
	PathMetrics           = "/metrics"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(routepath.Middleware)

	r.Get("/", s.handlePage)
	r.Get(PathWebSocket, s.handleWebSocket)
	r.Method(http.MethodGet, render.DefaultClientScript, thinClient)
	r.Method(http.MethodHead, render.DefaultClientScript, thinClient)
	r.Method(http.MethodGet, config.DefaultStyleSheet, styleSheet)
	r.Method(http.MethodHead, config.DefaultStyleSheet, styleSheet)

	r.Post(PathConnectionDetails, s.handleConnectionDetails)
	r.Route("/api/game", func(r chi.Router) {
		r.Post("/save", s.handleSave)
		r.Post("/restart", s.handleRestart)
		r.Get("/saves", s.handleListSaves)
		r.Get("/saves/{name}", s.handleLoadSave)
	})

	r.Get(PathHealth, s.handleHealth)
	if s.registry != nil {
		r.Handle(PathMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	if dir := s.config.PublicPath(); dirExists(dir) {
		prefix := strings.TrimSuffix(s.config.Static.Prefix, "/")
		static := newStaticHandler(os.DirFS(dir), prefix)
		r.Get(prefix+"/*", static.ServeHTTP)
		r.Head(prefix+"/*", static.ServeHTTP)
	}

	return r
}

func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
