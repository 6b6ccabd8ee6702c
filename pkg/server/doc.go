// Package server exposes gmvoice over HTTP.
//
// The router is built on chi. It serves the welcome page (one session per
// page load), the WebSocket endpoint that page attaches to, the embedded
// thin client, the call and game-save JSON APIs, health and Prometheus
// metrics, and static files from the configured public directory.
//
//	srv, err := server.New(server.Options{Config: cfg, Logger: logger})
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server
