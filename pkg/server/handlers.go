package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/gmvoice/app/pages"
	"github.com/vango-dev/gmvoice/internal/errors"
	"github.com/vango-dev/gmvoice/pkg/call"
	"github.com/vango-dev/gmvoice/pkg/gamesave"
	"github.com/vango-dev/gmvoice/pkg/render"
)

// maxBodySize caps JSON request bodies.
const maxBodySize = 1 << 20

// historyRequest is the body of the save and restart endpoints.
type historyRequest struct {
	History []gamesave.Turn `json:"history"`
}

// handlePage creates a session, renders the welcome page into it and
// writes the document.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Create()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view := pages.Home(sess, pages.HomeDeps{
		Issuer:          s.issuer,
		Calls:           s.metrics,
		StartButtonText: s.config.Welcome.StartButtonText,
	})

	var buf bytes.Buffer
	renderer := render.NewRenderer(render.RendererConfig{})
	if err := renderer.RenderPage(&buf, render.PageData{
		Body:        view,
		Title:       s.config.Name,
		StyleSheets: s.config.Static.StyleSheets,
		SessionID:   sess.ID(),
	}); err != nil {
		s.sessions.Remove(sess.ID())
		s.writeError(w, r, err)
		return
	}
	sess.Mount(view, renderer.Handlers())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleWebSocket attaches the connection to the session named by the
// "session" query parameter and serves it until it closes.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.URL.Query().Get("session"))
	if err != nil {
		s.metrics.WebSocketError("unknown_session")
		s.writeError(w, r, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.WebSocketError("upgrade")
		s.logger.Warn("websocket upgrade failed", "session_id", sess.ID(), "error", err)
		return
	}

	if err := sess.Attach(conn); err != nil {
		s.metrics.WebSocketError("attach")
		s.logger.Warn("websocket attach failed", "session_id", sess.ID(), "error", err)
	}
}

func (s *Server) handleConnectionDetails(w http.ResponseWriter, r *http.Request) {
	var req call.Request
	if err := decodeBody(w, r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}

	details, err := s.issuer.Issue(r.Context(), req)
	s.metrics.CallIssued(err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req historyRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.master.Save(r.Context(), req.History)
	s.metrics.SaveRecorded("save", err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// restartResponse adds the save error, if any, to the restart result.
type restartResponse struct {
	*gamesave.RestartResult
	SaveError string `json:"saveError,omitempty"`
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req historyRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}

	result := s.master.Restart(r.Context(), req.History)
	if len(req.History) > 0 {
		s.metrics.SaveRecorded("restart", result.SaveErr)
	}

	resp := restartResponse{RestartResult: result}
	if result.SaveErr != nil {
		resp.SaveError = result.SaveErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSaves(w http.ResponseWriter, r *http.Request) {
	names, err := s.master.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saves": names})
}

func (s *Server) handleLoadSave(w http.ResponseWriter, r *http.Request) {
	rec, err := s.master.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

// decodeBody decodes a JSON request body into v. When allowEmpty is set
// an empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.New("E111").WithDetail("request body exceeds 1 MiB")
		}
		if stderrors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		if stderrors.Is(err, io.EOF) {
			return errors.New("E110").WithDetail("request body is empty")
		}
		return errors.New("E110").WithDetail(err.Error())
	}
	if dec.More() {
		return errors.New("E110").WithDetail("request body has trailing data")
	}
	return nil
}
