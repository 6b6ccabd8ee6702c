package protocol

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/vango-dev/gmvoice/internal/errors"
)

// MaxMessageSize bounds a single decoded frame.
const MaxMessageSize = 64 * 1024

// Type identifies the kind of message.
type Type string

const (
	TypeEvent   Type = "event"   // Client → server DOM event
	TypePing    Type = "ping"    // Client → server keepalive
	TypePong    Type = "pong"    // Response to ping
	TypeConnect Type = "connect" // Call connection details
	TypeError   Type = "error"   // Error report
	TypeClose   Type = "close"   // Session close
)

// CloseReason indicates why a session is being closed.
type CloseReason string

const (
	CloseNormal         CloseReason = "normal"
	CloseSessionExpired CloseReason = "session_expired"
	CloseServerShutdown CloseReason = "server_shutdown"
	CloseError          CloseReason = "error"
)

// Message is the envelope for every frame.
type Message struct {
	Type    Type            `json:"type"`
	HID     string          `json:"hid,omitempty"`
	Event   string          `json:"event,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Reason  CloseReason     `json:"reason,omitempty"`
	Seq     uint64          `json:"seq,omitempty"`
}

// NewEvent creates an event message. A leading "on" in the event name is
// dropped, so "onclick" and "click" are equivalent.
func NewEvent(hid, event string) *Message {
	return &Message{Type: TypeEvent, HID: hid, Event: NormalizeEvent(event)}
}

// NewPong answers a ping.
func NewPong(seq uint64) *Message {
	return &Message{Type: TypePong, Seq: seq}
}

// NewConnect wraps connection details in a connect message.
func NewConnect(details any) (*Message, error) {
	payload, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	return &Message{Type: TypeConnect, Payload: payload}, nil
}

// NewError creates an error message from err. Coded errors keep their code.
func NewError(err error) *Message {
	return &Message{Type: TypeError, Code: errors.CodeOf(err), Message: err.Error()}
}

// NewClose creates a close message.
func NewClose(reason CloseReason) *Message {
	return &Message{Type: TypeClose, Reason: reason}
}

// NormalizeEvent lowercases an event name and strips an "on" prefix.
func NormalizeEvent(name string) string {
	return strings.TrimPrefix(strings.ToLower(name), "on")
}

// Encode marshals a message to JSON.
func Encode(m *Message) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// Decode parses and validates a single frame.
func Decode(data []byte) (*Message, error) {
	if len(data) > MaxMessageSize {
		return nil, errors.New("E111")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var m Message
	if err := dec.Decode(&m); err != nil {
		return nil, errors.New("E110").WithDetail("malformed JSON: " + err.Error())
	}
	if dec.More() {
		return nil, errors.New("E110").WithDetail("trailing data after message")
	}
	if m.Type == TypeEvent {
		m.Event = NormalizeEvent(m.Event)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that required fields are present for the message type.
func (m *Message) Validate() error {
	switch m.Type {
	case TypeEvent:
		if m.HID == "" {
			return errors.New("E110").WithDetail("event message without hid")
		}
		if m.Event == "" {
			return errors.New("E110").WithDetail("event message without event name")
		}
	case TypeConnect:
		if len(m.Payload) == 0 {
			return errors.New("E110").WithDetail("connect message without payload")
		}
	case TypeError:
		if m.Message == "" {
			return errors.New("E110").WithDetail("error message without text")
		}
	case TypePing, TypePong, TypeClose:
	default:
		return errors.New("E110").WithDetail("unknown message type " + string(m.Type))
	}
	return nil
}
