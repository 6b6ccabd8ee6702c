// Package errors provides coded, actionable errors for gmvoice.
//
// Every error carries a code (e.g., "E201") registered with a category, a
// short message and a detail explaining the failure. Callers add context
// with the With* builders and wrap causes with Wrap:
//
//	return errors.New("E201").
//	    WithDetail("LIVEKIT_API_SECRET is empty").
//	    WithSuggestion("Set call.apiSecret in gmvoice.json")
//
// HasCode reports whether any error in a chain carries a given code, which
// is how HTTP handlers map failures to status codes.
package errors
