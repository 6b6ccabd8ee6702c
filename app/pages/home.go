// Package pages holds the full-page views mounted into sessions.
package pages

import (
	"context"

	"github.com/vango-dev/gmvoice/app/components/welcome"
	"github.com/vango-dev/gmvoice/pkg/call"
	"github.com/vango-dev/gmvoice/pkg/protocol"
	"github.com/vango-dev/gmvoice/pkg/session"
	"github.com/vango-dev/gmvoice/pkg/vdom"
)

// Issuer issues call connection details.
type Issuer interface {
	Issue(ctx context.Context, req call.Request) (*call.ConnectionDetails, error)
}

// CallRecorder observes issued calls. *middleware.Metrics satisfies it.
type CallRecorder interface {
	CallIssued(err error)
}

// HomeDeps are the collaborators of the home page.
type HomeDeps struct {
	Issuer          Issuer
	Calls           CallRecorder
	StartButtonText string
}

// Home renders the welcome view bound to sess. Pressing the start button
// issues connection details and pushes them to the browser as a connect
// message, or an error message when issuing fails.
func Home(sess *session.Session, deps HomeDeps) *vdom.VNode {
	return welcome.View(welcome.Props{
		StartButtonText: deps.StartButtonText,
		OnStartCall:     func() { startCall(sess, deps) },
	})
}

func startCall(sess *session.Session, deps HomeDeps) {
	logger := sess.Logger()

	details, err := deps.Issuer.Issue(sess.Context(), call.Request{})
	if deps.Calls != nil {
		deps.Calls.CallIssued(err)
	}
	if err != nil {
		logger.Warn("call issue failed", "error", err)
		if sendErr := sess.Send(protocol.NewError(err)); sendErr != nil {
			logger.Debug("error not delivered", "error", sendErr)
		}
		return
	}

	msg, err := protocol.NewConnect(details)
	if err != nil {
		logger.Error("encode connection details", "error", err)
		return
	}
	if err := sess.Send(msg); err != nil {
		logger.Warn("connection details not delivered", "error", err, "room", details.RoomName)
		return
	}
	logger.Info("call started", "room", details.RoomName, "participant", details.ParticipantName)
}
