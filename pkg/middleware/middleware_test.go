package middleware

import (
	"context"
	"testing"

	"github.com/vango-dev/gmvoice/pkg/render"
	"github.com/vango-dev/gmvoice/pkg/session"
	"github.com/vango-dev/gmvoice/pkg/vdom"
)

// newTestSession mounts a single button whose click runs handler.
func newTestSession(t *testing.T, handler any, mws ...session.Middleware) *session.Session {
	t.Helper()
	cfg := session.DefaultConfig()
	cfg.Middleware = mws
	s := session.New(cfg, nil)
	t.Cleanup(func() { s.Close("normal") })

	view := vdom.Button(vdom.OnClick(handler))
	r := render.NewRenderer(render.RendererConfig{})
	if _, err := r.RenderToString(view); err != nil {
		t.Fatal(err)
	}
	s.Mount(view, r.Handlers())
	return s
}

func click(s *session.Session) error {
	return s.Dispatch(context.Background(), &session.Event{HID: "h1", Name: "click"})
}
