package routepath

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		input   string
		path    string
		query   string
		changed bool
	}{
		{"/", "/", "", false},
		{"", "/", "", true},
		{"/api/game/saves", "/api/game/saves", "", false},
		{"/api/game/saves/", "/api/game/saves", "", true},
		{"//images///logo.png", "/images/logo.png", "", true},
		{"/a/./b", "/a/b", "", true},
		{"/a/b/../c", "/a/c", "", true},
		{"images/logo.png", "/images/logo.png", "", true},
		{"/_gm/ws?session=abc", "/_gm/ws", "session=abc", false},
		{"/a//b?x=1&y=2", "/a/b", "x=1&y=2", true},
		{"/saves/Mira%20A.json", "/saves/Mira%20A.json", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Canonicalize(tt.input)
			if err != nil {
				t.Fatalf("Canonicalize(%q) error = %v", tt.input, err)
			}
			if got.Path != tt.path || got.Query != tt.query || got.Changed != tt.changed {
				t.Errorf("Canonicalize(%q) = %+v, want path %q query %q changed %v",
					tt.input, got, tt.path, tt.query, tt.changed)
			}
		})
	}
}

func TestCanonicalizeRejects(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{`/a\b`, ErrBackslash},
		{"/a\x00b", ErrNullByte},
		{"/a%00b", ErrNullByte},
		{"/a%GG", ErrPercentEscape},
		{"/a%2", ErrPercentEscape},
		{"/../secret", ErrEscapesRoot},
		{"/a/../../secret", ErrEscapesRoot},
	}

	for _, tt := range tests {
		if _, err := Canonicalize(tt.input); err != tt.want {
			t.Errorf("Canonicalize(%q) error = %v, want %v", tt.input, err, tt.want)
		}
	}
}

func TestResultTarget(t *testing.T) {
	if got := (Result{Path: "/a"}).Target(); got != "/a" {
		t.Errorf("Target() = %q", got)
	}
	if got := (Result{Path: "/a", Query: "b=1"}).Target(); got != "/a?b=1" {
		t.Errorf("Target() = %q", got)
	}
}

func TestMiddleware(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		target   string
		status   int
		location string
	}{
		{"/healthz", http.StatusTeapot, ""},
		{"/healthz/", http.StatusPermanentRedirect, "/healthz"},
		{"/api//game/saves?x=1", http.StatusPermanentRedirect, "/api/game/saves?x=1"},
		{"/../secret", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if loc := rec.Header().Get("Location"); loc != tt.location {
				t.Errorf("Location = %q, want %q", loc, tt.location)
			}
		})
	}
}
