package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/gmvoice/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("Hello, World!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;"
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderAttributeEscaping(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"quotes", `a"b`, `title="a&quot;b"`},
		{"ampersand", "a&b", `title="a&amp;b"`},
		{"newline", "a\nb", `title="a&#10;b"`},
		{"tab", "a\tb", `title="a&#9;b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := NewRenderer(RendererConfig{}).RenderToString(vdom.Div(vdom.TitleAttr(tt.value)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(html, tt.want) {
				t.Errorf("got %q, want it to contain %q", html, tt.want)
			}
		})
	}
}

func TestRenderElement(t *testing.T) {
	node := vdom.Div(vdom.Class("card"), vdom.ID("main"),
		vdom.Img(vdom.Src("/a.png"), vdom.Alt("")),
		vdom.Button(vdom.Disabled(), vdom.Text("Go")),
	)

	html, err := NewRenderer(RendererConfig{}).RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `<div class="card" id="main"><img alt="" src="/a.png"><button disabled>Go</button></div>`
	if html != want {
		t.Errorf("got\n%s\nwant\n%s", html, want)
	}
}

func TestRenderCollectsHandlers(t *testing.T) {
	clicks := 0
	node := vdom.Div(
		vdom.Button(vdom.OnClick(func() { clicks++ }), vdom.Text("A")),
		vdom.Button(vdom.Text("inert")),
	)

	r := NewRenderer(RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(html, `<button data-hid="h1" data-on-click="true">A</button>`) {
		t.Errorf("interactive button markup wrong: %s", html)
	}
	if !strings.Contains(html, `<button>inert</button>`) {
		t.Errorf("inert button should carry no hid: %s", html)
	}

	handlers := r.Handlers()
	if len(handlers) != 1 {
		t.Fatalf("len(Handlers()) = %d, want 1", len(handlers))
	}
	fn, ok := handlers[HandlerKey("h1", "click")].(func())
	if !ok {
		t.Fatalf("handler h1_onclick has type %T", handlers["h1_onclick"])
	}
	if clicks != 0 {
		t.Fatal("rendering must not invoke handlers")
	}
	fn()
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	r.Reset()
	if len(r.Handlers()) != 0 {
		t.Error("Reset should clear handlers")
	}
}

func TestRenderMountsRefs(t *testing.T) {
	ref := vdom.NewNodeRef()
	node := vdom.Div(vdom.UseRef(ref), vdom.P())

	r := NewRenderer(RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ref.Current() != node {
		t.Error("ref should point at the rendered element")
	}
	if strings.Contains(html, "_ref") {
		t.Errorf("internal prop leaked into HTML: %s", html)
	}
	if !strings.HasPrefix(html, `<div data-hid="h1">`) {
		t.Errorf("ref'd element should be addressable: %s", html)
	}
	if got := r.MountedRefs(); len(got) != 1 || got[0] != ref {
		t.Errorf("MountedRefs() = %v", got)
	}
}

func TestRenderComponentAndFragment(t *testing.T) {
	comp := vdom.Func(func() *vdom.VNode {
		return vdom.Fragment(vdom.Span(vdom.Text("a")), "b", nil)
	})

	html, err := NewRenderer(RendererConfig{}).RenderToString(vdom.Div(comp))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<div><span>a</span>b</div>" {
		t.Errorf("got %q", html)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	_, err := NewRenderer(RendererConfig{}).RenderToString(&vdom.VNode{Kind: vdom.VKind(99)})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderWriterError(t *testing.T) {
	err := NewRenderer(RendererConfig{}).RenderToWriter(failingWriter{}, vdom.Div(vdom.Text("x")))
	if err == nil {
		t.Fatal("expected write error")
	}
}

func TestRenderPretty(t *testing.T) {
	html, err := NewRenderer(RendererConfig{Pretty: true}).RenderToString(
		vdom.Div(vdom.P(vdom.Text("x"))),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<div>\n  <p>\nx  </p>\n</div>\n" {
		t.Errorf("got %q", html)
	}
}
