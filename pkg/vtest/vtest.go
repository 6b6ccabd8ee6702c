package vtest

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/gmvoice/pkg/render"
	"github.com/vango-dev/gmvoice/pkg/session"
	"github.com/vango-dev/gmvoice/pkg/vdom"
)

// RenderToString renders a node to HTML, returning "" on error.
//
// Example:
//
//	html := vtest.RenderToString(MyView())
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// Mounted is a view rendered into a live session.
type Mounted struct {
	Session *session.Session
	Tree    *vdom.VNode
	HTML    string
}

// Mount renders view, mounts it into a fresh session and returns it.
func Mount(t testing.TB, view *vdom.VNode) *Mounted {
	t.Helper()
	m := &Mounted{Session: session.New(session.DefaultConfig(), nil)}
	t.Cleanup(func() { m.Session.Close("normal") })
	m.Rerender(t, view)
	return m
}

// MountInto renders view into an existing session, for views that close
// over the session they run in.
func MountInto(t testing.TB, s *session.Session, view *vdom.VNode) *Mounted {
	t.Helper()
	m := &Mounted{Session: s}
	m.Rerender(t, view)
	return m
}

// Rerender replaces the mounted view, as a re-render with new props would.
func (m *Mounted) Rerender(t testing.TB, view *vdom.VNode) {
	t.Helper()
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	m.Tree = view
	m.HTML = html
	m.Session.Mount(view, r.Handlers())
}

// Button returns the first <button> in the mounted view.
func (m *Mounted) Button() *vdom.VNode {
	return vdom.FindByTag(m.Tree, "button")
}

// Fire dispatches event to node through the session.
func (m *Mounted) Fire(node *vdom.VNode, event string) error {
	if node == nil || node.HID == "" {
		return m.Session.Dispatch(context.Background(), &session.Event{Name: event})
	}
	return m.Session.Dispatch(context.Background(), &session.Event{HID: node.HID, Name: event})
}

// Click dispatches a click to node and fails the test on error.
func (m *Mounted) Click(t testing.TB, node *vdom.VNode) {
	t.Helper()
	if node == nil {
		t.Fatal("click target is nil")
	}
	if err := m.Fire(node, "click"); err != nil {
		t.Fatalf("click %s: %v", node.HID, err)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
