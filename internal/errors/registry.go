package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// Sessions and events (E100-E119)
	"E101": {
		Category: CategoryRuntime,
		Message:  "Session not found",
		Detail:   "The session id is unknown or the session has expired. Reload the page to start a new session.",
	},
	"E102": {
		Category: CategoryRuntime,
		Message:  "No handler for event",
		Detail:   "The client reported an event for an element that has no matching handler in the mounted view.",
	},
	"E103": {
		Category: CategoryRuntime,
		Message:  "Unsupported handler type",
		Detail:   "Event handlers must be func(), func(*session.Event) or func(*session.Event) error.",
	},
	"E104": {
		Category: CategoryRuntime,
		Message:  "Session limit reached",
		Detail:   "The server is holding the maximum number of sessions.",
	},
	"E105": {
		Category: CategoryRuntime,
		Message:  "Event handler panicked",
		Detail:   "An event handler panicked. The panic was recovered by the session runtime.",
	},
	"E106": {
		Category: CategoryRuntime,
		Message:  "Session closed",
		Detail:   "The session has been closed and cannot accept new messages.",
	},

	// Protocol (E110-E119)
	"E110": {
		Category: CategoryProtocol,
		Message:  "Invalid message",
		Detail:   "The WebSocket message could not be decoded or failed validation.",
	},
	"E111": {
		Category: CategoryProtocol,
		Message:  "Message too large",
		Detail:   "The WebSocket message exceeds the maximum allowed size.",
	},

	// Configuration (E120-E149)
	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "gmvoice.json could not be read or parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or malformed.",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No gmvoice.json was found in the given directory.",
	},

	// Calls (E200-E299)
	"E201": {
		Category: CategoryCall,
		Message:  "Call credentials missing",
		Detail:   "The real-time server URL, API key and API secret must all be configured to issue call tokens.",
	},
	"E202": {
		Category: CategoryCall,
		Message:  "Token signing failed",
		Detail:   "The participant token could not be signed.",
	},

	// Game saves (E300-E399)
	"E301": {
		Category: CategoryStorage,
		Message:  "Chat history is empty",
		Detail:   "There is nothing to save: the chat history has no turns.",
	},
	"E302": {
		Category: CategoryStorage,
		Message:  "Save failed",
		Detail:   "The game record could not be written to the save store.",
	},
	"E303": {
		Category: CategoryStorage,
		Message:  "Save not found",
		Detail:   "No saved game exists under the requested name.",
	},
	"E304": {
		Category: CategoryConfig,
		Message:  "Save store misconfigured",
		Detail:   "The save backend must be \"disk\" (with a directory) or \"s3\" (with a bucket).",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
