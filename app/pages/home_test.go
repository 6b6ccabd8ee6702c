package pages

import (
	"context"
	"testing"

	"github.com/vango-dev/gmvoice/internal/errors"
	"github.com/vango-dev/gmvoice/pkg/call"
	"github.com/vango-dev/gmvoice/pkg/session"
	"github.com/vango-dev/gmvoice/pkg/vtest"
)

type fakeIssuer struct {
	calls   int
	details *call.ConnectionDetails
	err     error
}

func (f *fakeIssuer) Issue(ctx context.Context, req call.Request) (*call.ConnectionDetails, error) {
	f.calls++
	if ctx == nil {
		panic("nil context")
	}
	return f.details, f.err
}

type recorder struct {
	errs []error
}

func (r *recorder) CallIssued(err error) { r.errs = append(r.errs, err) }

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(session.DefaultConfig(), nil)
	t.Cleanup(func() { s.Close("normal") })
	return s
}

func TestHomeRendersLabel(t *testing.T) {
	s := newSession(t)
	view := Home(s, HomeDeps{Issuer: &fakeIssuer{}, StartButtonText: "ENTER THE VOID"})

	vtest.ExpectContains(t, view, ">ENTER THE VOID</button>")
	vtest.ExpectAttribute(t, view, "data-view", "welcome")
}

func TestHomeStartCallSendsConnect(t *testing.T) {
	s := newSession(t)
	issuer := &fakeIssuer{details: &call.ConnectionDetails{
		ServerURL:        "wss://example.livekit.cloud",
		RoomName:         "voice_assistant_room_abc",
		ParticipantName:  "user",
		ParticipantToken: "token",
	}}
	rec := &recorder{}

	m := vtest.MountInto(t, s, Home(s, HomeDeps{Issuer: issuer, Calls: rec, StartButtonText: "Go"}))
	if m.Session.Pending() != 0 {
		t.Fatalf("mount queued %d messages", m.Session.Pending())
	}

	m.Click(t, m.Button())

	if issuer.calls != 1 {
		t.Errorf("issuer calls = %d, want 1", issuer.calls)
	}
	if len(rec.errs) != 1 || rec.errs[0] != nil {
		t.Errorf("recorded = %v, want one success", rec.errs)
	}
	if got := s.Pending(); got != 1 {
		t.Errorf("pending = %d, want 1", got)
	}
}

func TestHomeStartCallReportsError(t *testing.T) {
	s := newSession(t)
	issuer := &fakeIssuer{err: errors.New("E201")}
	rec := &recorder{}

	m := vtest.MountInto(t, s, Home(s, HomeDeps{Issuer: issuer, Calls: rec}))
	m.Click(t, m.Button())

	if len(rec.errs) != 1 || !errors.HasCode(rec.errs[0], "E201") {
		t.Errorf("recorded = %v, want E201", rec.errs)
	}
	if got := s.Pending(); got != 1 {
		t.Errorf("pending = %d, want error message queued", got)
	}
}

func TestHomeEachClickIssues(t *testing.T) {
	s := newSession(t)
	issuer := &fakeIssuer{details: &call.ConnectionDetails{RoomName: "r"}}

	m := vtest.MountInto(t, s, Home(s, HomeDeps{Issuer: issuer}))
	m.Click(t, m.Button())
	m.Click(t, m.Button())

	if issuer.calls != 2 {
		t.Errorf("issuer calls = %d, want 2", issuer.calls)
	}
}
