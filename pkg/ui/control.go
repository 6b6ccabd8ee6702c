package ui

import "github.com/vango-dev/gmvoice/pkg/vdom"

// ControlSpec describes a clickable control.
type ControlSpec struct {
	Label      string
	Variant    Variant
	Size       Size
	Class      string
	OnActivate func()
}

// Control renders a clickable control from a spec.
type Control interface {
	Render(spec ControlSpec) *vdom.VNode
}

// ControlFunc adapts a function to Control.
type ControlFunc func(spec ControlSpec) *vdom.VNode

// Render implements Control.
func (f ControlFunc) Render(spec ControlSpec) *vdom.VNode {
	return f(spec)
}

// Default renders controls with Button.
var Default Control = ControlFunc(func(spec ControlSpec) *vdom.VNode {
	opts := []ButtonOption{
		WithLabel(spec.Label),
		WithOnClick(spec.OnActivate),
		WithClass(spec.Class),
	}
	if spec.Variant != "" {
		opts = append(opts, WithVariant(spec.Variant))
	}
	if spec.Size != "" {
		opts = append(opts, WithSize(spec.Size))
	}
	return Button(opts...)
})
