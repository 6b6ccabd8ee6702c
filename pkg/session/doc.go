// Package session is the server-side runtime behind each open page.
//
// A Session holds the view that was rendered for one browser tab together
// with the handler table the renderer collected for it. The thin client
// reports DOM events over a WebSocket; the session looks up the handler by
// hydration id and runs it synchronously:
//
//	sess, _ := manager.Create()
//	r := render.NewRenderer(render.RendererConfig{})
//	html, _ := r.RenderToString(view)
//	sess.Mount(view, r.Handlers())
//
//	// later, from the WebSocket read loop
//	err := sess.Dispatch(ctx, &session.Event{HID: "h1", Name: "click"})
//
// Middleware wraps every dispatch, which is how metrics and tracing are
// attached. Handler panics are recovered, logged with their stack and
// returned as E105 errors so the client can be told.
//
// The Manager owns all sessions, enforces MaxSessions and sweeps sessions
// that have been detached longer than the idle timeout.
package session
