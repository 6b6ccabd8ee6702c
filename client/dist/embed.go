// Package clientdist embeds the thin browser client and the prebuilt
// stylesheet.
package clientdist

import _ "embed"

// ClientJS is the thin client served at "/_gm/client.js". It attaches the
// page to its session and forwards delegated DOM events.
//
//go:embed gmvoice.js
var ClientJS []byte

// AppCSS is the stylesheet served at "/css/app.css". It holds the utility
// classes used by the welcome view and the button primitive.
//
//go:embed app.css
var AppCSS []byte
