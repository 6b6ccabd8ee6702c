// Package config provides configuration parsing for gmvoice.
//
// The configuration is stored in gmvoice.json. Missing fields take their
// defaults, and a few environment variables override the file so secrets
// stay out of it.
//
// # Configuration File Structure
//
//	{
//	  "name": "The Whispering Library",
//	  "server": {"host": "0.0.0.0", "port": 3000, "shutdownTimeout": "10s"},
//	  "static": {"dir": "public", "prefix": "/"},
//	  "session": {"maxSessions": 1000, "idleTimeout": "5m", "sweepInterval": "30s"},
//	  "welcome": {"startButtonText": "ENTER THE VOID"},
//	  "call": {"serverUrl": "wss://example.livekit.cloud", "roomPrefix": "voice_assistant_room", "tokenTtl": "15m"},
//	  "saves": {"backend": "disk", "dir": "saves"},
//	  "metrics": {"enabled": true, "namespace": "gmvoice"}
//	}
//
// # Environment
//
//	LIVEKIT_URL, LIVEKIT_API_KEY, LIVEKIT_API_SECRET  call credentials
//	GM_PORT                                            server.port
//	GM_SAVE_BUCKET                                     switches saves to s3
package config
