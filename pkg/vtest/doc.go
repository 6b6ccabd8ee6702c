// Package vtest provides testing helpers for gmvoice views.
//
// Render assertions check the HTML a view produces:
//
//	vtest.ExpectContains(t, welcome.View(props), "ENTER THE VOID")
//	vtest.ExpectAttribute(t, view, "data-view", "welcome")
//
// Mount renders a view into a real session so tests can fire events
// through the same dispatch path the WebSocket uses:
//
//	m := vtest.Mount(t, view)
//	m.Click(t, m.Button())
//	if calls != 1 {
//	    t.Errorf("calls = %d", calls)
//	}
package vtest
