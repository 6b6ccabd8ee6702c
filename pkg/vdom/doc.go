// Package vdom provides the virtual DOM used by gmvoice views.
//
// Views build VNode trees on the server with variadic element factories:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    Button(OnClick(handler), Text("Go")),
//	)
//
// The render package turns a tree into HTML and collects the event handlers
// of interactive elements, keyed by hydration ID (HID). The browser reports
// clicks against those HIDs and the session runtime calls the handler.
//
// # Refs
//
// A NodeRef is a caller-owned handle that the renderer fills with the element
// it was attached to (via UseRef) once per render pass. Components only
// forward refs; they never read them.
package vdom
