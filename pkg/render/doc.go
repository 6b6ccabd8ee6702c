// Package render provides server-side rendering (SSR) of vdom trees.
//
// The renderer converts a VNode tree into HTML and, in the same pass:
//
//   - assigns a data-hid hydration ID to every element that has event
//     handlers or an attached ref
//   - records each handler under "<hid>_on<event>" (see Handlers)
//   - populates every attached NodeRef with its element (the mount)
//
// Text and attribute values are always escaped. Raw nodes are written as-is
// and must only carry trusted content.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//	handlers := r.Handlers()
//
// RenderPage wraps a body tree in a full document, including the session
// meta tag and the thin client script that reports clicks back to the
// server.
package render
