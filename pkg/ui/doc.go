// Package ui holds the shared interactive primitives views are built from.
//
// Views that need a clickable control depend on the narrow Control
// interface rather than a concrete button, so any toolkit button that can
// render a label, a variant and an activation callback can stand in:
//
//	ui.Default.Render(ui.ControlSpec{
//	    Label:      "Start",
//	    Variant:    ui.VariantPrimary,
//	    Size:       ui.SizeLg,
//	    OnActivate: start,
//	})
//
// Button is the stock implementation.
package ui
