// Package protocol defines the JSON messages exchanged between the thin
// browser client and a gmvoice session over a WebSocket.
//
// Every frame is a single JSON object with a "type" field:
//
//	client → server   {"type":"event","hid":"h1","event":"click"}
//	                  {"type":"ping","seq":7}
//	server → client   {"type":"pong","seq":7}
//	                  {"type":"connect","payload":{"serverUrl":...}}
//	                  {"type":"error","code":"E105","message":"..."}
//	                  {"type":"close","reason":"session_expired"}
//
// Decode rejects frames larger than MaxMessageSize, unknown types and
// events without a hydration id.
package protocol
