package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("E201")

	if err.Code != "E201" {
		t.Errorf("Code = %q, want E201", err.Code)
	}
	if err.Category != CategoryCall {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCall)
	}
	if err.Message == "" || err.Detail == "" {
		t.Error("registered template should populate Message and Detail")
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("E999")
	if err.Message != "Unknown error" {
		t.Errorf("Message = %q, want Unknown error", err.Message)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "bad flag %q", "--port")
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if err.Error() != `bad flag "--port"` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestError_Error(t *testing.T) {
	err := New("E301")
	if got := err.Error(); got != "E301: Chat history is empty" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := New("E302").Wrap(fmt.Errorf("disk full"))
	if got := wrapped.Error(); got != "E302: Save failed: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestError_WithDetailAndSuggestion(t *testing.T) {
	err := New("E201").
		WithDetail("LIVEKIT_API_SECRET is empty").
		WithSuggestion("Set call.apiSecret")

	out := err.Format()
	for _, want := range []string{"E201", "LIVEKIT_API_SECRET is empty", "hint: Set call.apiSecret"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := New("E105").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E120") != nil {
		t.Error("FromError(nil) should be nil")
	}

	coded := New("E141")
	if FromError(fmt.Errorf("load: %w", coded), "E120") != coded {
		t.Error("FromError should return the existing *Error")
	}

	plain := FromError(stderrors.New("eof"), "E120")
	if plain.Code != "E120" || plain.Wrapped == nil {
		t.Errorf("FromError(plain) = %+v", plain)
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("handler: %w", New("E302").Wrap(New("E304")))

	if !HasCode(err, "E302") {
		t.Error("HasCode should match outer code")
	}
	if !HasCode(err, "E304") {
		t.Error("HasCode should match nested code")
	}
	if HasCode(err, "E301") {
		t.Error("HasCode should not match absent code")
	}
	if HasCode(nil, "E301") {
		t.Error("HasCode(nil) should be false")
	}
	if CodeOf(err) != "E302" {
		t.Errorf("CodeOf = %q, want E302", CodeOf(err))
	}
}

func TestLookup(t *testing.T) {
	for _, code := range []string{"E101", "E102", "E103", "E104", "E105", "E106", "E110", "E111", "E120", "E121", "E141", "E201", "E202", "E301", "E302", "E303", "E304"} {
		if _, ok := Lookup(code); !ok {
			t.Errorf("code %s is not registered", code)
		}
	}
}

func TestAsError(t *testing.T) {
	err := fmt.Errorf("save: %w", New("E303"))

	e, ok := AsError(err)
	if !ok || e.Code != "E303" {
		t.Errorf("AsError() = %v, %v; want E303", e, ok)
	}
	if _, ok := AsError(fmt.Errorf("plain")); ok {
		t.Error("AsError should not match a plain error")
	}
}
