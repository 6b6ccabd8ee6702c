// Package call issues connection details for the real-time voice room the
// game-master agent joins.
//
// An Issuer signs a LiveKit-compatible participant token: an HS256 JWT
// whose issuer is the API key, whose subject is the participant identity
// and whose "video" claim grants join, publish and subscribe rights on one
// freshly named room.
//
//	issuer := call.NewIssuer(call.Config{
//	    ServerURL: "wss://example.livekit.cloud",
//	    APIKey:    key,
//	    APISecret: secret,
//	})
//	details, err := issuer.Issue(ctx, call.Request{})
package call
