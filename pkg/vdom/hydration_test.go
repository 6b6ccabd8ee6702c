package vdom

import "testing"

func TestHIDGenerator(t *testing.T) {
	gen := NewHIDGenerator()
	if got := gen.Next(); got != "h1" {
		t.Errorf("Next() = %q, want h1", got)
	}
	if got := gen.Next(); got != "h2" {
		t.Errorf("Next() = %q, want h2", got)
	}
	gen.Reset()
	if got := gen.Next(); got != "h1" {
		t.Errorf("after Reset, Next() = %q, want h1", got)
	}
}

func TestAssignHIDs(t *testing.T) {
	ref := NewNodeRef()
	tree := Div(UseRef(ref),
		P(Text("static")),
		Button(OnClick(func() {}), Text("go")),
		Button(Text("inert")),
	)

	AssignHIDs(tree, NewHIDGenerator())

	if tree.HID != "h1" {
		t.Errorf("ref'd root HID = %q, want h1", tree.HID)
	}
	if tree.Children[0].HID != "" {
		t.Errorf("static paragraph got HID %q", tree.Children[0].HID)
	}
	if tree.Children[1].HID != "h2" {
		t.Errorf("button HID = %q, want h2", tree.Children[1].HID)
	}
	if tree.Children[2].HID != "" {
		t.Errorf("inert button got HID %q", tree.Children[2].HID)
	}

	if FindByHID(tree, "h2") != tree.Children[1] {
		t.Error("FindByHID(h2) should return the button")
	}
	if FindByHID(tree, "") != nil {
		t.Error("FindByHID with empty id should return nil")
	}
	if got := CountInteractive(tree); got != 1 {
		t.Errorf("CountInteractive = %d, want 1", got)
	}

	ClearHIDs(tree)
	if tree.HID != "" || tree.Children[1].HID != "" {
		t.Error("ClearHIDs should remove all ids")
	}
}

func TestFindByTag(t *testing.T) {
	tree := Div(Section(Img(Src("/a.png")), Button(Text("b"))))

	if btn := FindByTag(tree, "button"); btn == nil || TextContent(btn) != "b" {
		t.Error("FindByTag(button) failed")
	}
	if FindByTag(tree, "video") != nil {
		t.Error("FindByTag(video) should be nil")
	}
}
