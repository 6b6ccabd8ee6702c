package vdom

import "testing"

func TestIf(t *testing.T) {
	node := Span(Text("x"))
	if If(true, node) != node {
		t.Error("If(true) should return the node")
	}
	if If(false, node) != nil {
		t.Error("If(false) should return nil")
	}

	parent := Div(If(false, node), If(true, P()))
	if len(parent.Children) != 1 || parent.Children[0].Tag != "p" {
		t.Errorf("children = %+v, want only the p", parent.Children)
	}
}

func TestRange(t *testing.T) {
	names := []string{"Ada", "", "Lin"}
	nodes := Range(names, func(name string, i int) *VNode {
		if name == "" {
			return nil
		}
		return Textf("%d:%s", i, name)
	})

	if len(nodes) != 2 {
		t.Fatalf("len = %d, want 2", len(nodes))
	}
	if nodes[0].Text != "0:Ada" || nodes[1].Text != "2:Lin" {
		t.Errorf("texts = %q, %q", nodes[0].Text, nodes[1].Text)
	}
	if got := Range[int](nil, func(int, int) *VNode { return Text("x") }); len(got) != 0 {
		t.Errorf("nil slice produced %d nodes", len(got))
	}
	if got := TextContent(Div(nodes)); got != "0:Ada2:Lin" {
		t.Errorf("TextContent = %q", got)
	}
}

func TestTextf(t *testing.T) {
	node := Textf("%s has %d turns", "Mira", 3)
	if node.Kind != KindText || node.Text != "Mira has 3 turns" {
		t.Errorf("Textf = %+v", node)
	}
}

func TestFragment(t *testing.T) {
	frag := Fragment(nil, "a", Span(), []*VNode{nil, Text("b")}, Func(func() *VNode { return Text("c") }))
	if frag.Kind != KindFragment || len(frag.Children) != 4 {
		t.Fatalf("fragment = %+v", frag)
	}
	if got := TextContent(frag); got != "abc" {
		t.Errorf("TextContent = %q, want abc", got)
	}
}

func TestTextContentSkipsRaw(t *testing.T) {
	node := Div(Text("a"), Raw("<b>hidden</b>"), H1(Text("b")))
	if got := TextContent(node); got != "ab" {
		t.Errorf("TextContent = %q, want ab", got)
	}
	if TextContent(nil) != "" {
		t.Error("nil node should have no text")
	}
}

func TestAccessibleLink(t *testing.T) {
	onKey := func() {}
	link := A(Href("/help"), Role("button"), AriaLabel("Open help"), OnKeyDown(onKey), Text("?"))

	if link.Tag != "a" {
		t.Errorf("tag = %q, want a", link.Tag)
	}
	for key, want := range map[string]string{
		"href":       "/help",
		"role":       "button",
		"aria-label": "Open help",
	} {
		if link.Props[key] != want {
			t.Errorf("%s = %v, want %q", key, link.Props[key], want)
		}
	}
	if _, ok := link.Handlers()["onkeydown"]; !ok {
		t.Error("keydown handler not bound")
	}
	if !link.IsInteractive() {
		t.Error("link with a handler should be interactive")
	}
}

func TestEventHelpers(t *testing.T) {
	h := func() {}
	tests := []struct {
		handler EventHandler
		prop    string
	}{
		{OnClick(h), "onclick"},
		{OnDblClick(h), "ondblclick"},
		{OnKeyDown(h), "onkeydown"},
		{OnFocus(h), "onfocus"},
		{OnBlur(h), "onblur"},
	}

	for _, tt := range tests {
		t.Run(tt.prop, func(t *testing.T) {
			if tt.handler.Event != tt.prop {
				t.Errorf("Event = %q, want %q", tt.handler.Event, tt.prop)
			}
			if _, ok := Button(tt.handler).Props[tt.prop]; !ok {
				t.Errorf("%s not bound", tt.prop)
			}
		})
	}
}

func TestFindByTagDepthFirst(t *testing.T) {
	target := Img(Src("/logo.png"))
	tree := Main(Section(Div(), target), Img(Src("/other.png")))

	if FindByTag(tree, "img") != target {
		t.Error("should return the first img in depth-first order")
	}
	if FindByTag(tree, "video") != nil {
		t.Error("missing tag should return nil")
	}
}
