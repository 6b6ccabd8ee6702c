package session

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/gmvoice/internal/errors"
	"github.com/vango-dev/gmvoice/pkg/protocol"
)

// Attach serves conn until it closes or the session ends. Only one
// connection may be attached at a time; the session stays alive after
// the connection drops so the page can reconnect.
func (s *Session) Attach(conn *websocket.Conn) error {
	if s.closed.Load() {
		s.writeClose(conn)
		conn.Close()
		return errors.New("E106")
	}

	s.mu.Lock()
	if s.attached {
		s.mu.Unlock()
		conn.Close()
		return errors.Newf(errors.CategoryRuntime, "session %s already has a connection", s.id)
	}
	s.attached = true
	s.mu.Unlock()

	s.logger.Debug("connection attached", "remote", conn.RemoteAddr().String())

	defer func() {
		conn.Close()
		s.mu.Lock()
		s.attached = false
		s.lastActive = time.Now()
		s.mu.Unlock()
		s.logger.Debug("connection detached")
	}()

	stop := make(chan struct{})
	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		s.writeLoop(conn, stop)
	}()

	s.readLoop(conn)
	close(stop)
	<-writeDone
	return nil
}

// readLoop decodes client frames and dispatches events until the
// connection fails.
func (s *Session) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(protocol.MaxMessageSize)
	s.extendReadDeadline(conn)
	conn.SetPongHandler(func(string) error {
		s.extendReadDeadline(conn)
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		s.extendReadDeadline(conn)

		msg, err := protocol.Decode(data)
		if err != nil {
			s.logger.Warn("message decode error", "error", err)
			s.reply(protocol.NewError(err))
			continue
		}

		switch msg.Type {
		case protocol.TypePing:
			s.reply(protocol.NewPong(msg.Seq))

		case protocol.TypeEvent:
			err := s.Dispatch(s.ctx, &Event{
				HID:     msg.HID,
				Name:    msg.Event,
				Payload: msg.Payload,
				Time:    time.Now(),
			})
			if errors.HasCode(err, "E106") {
				return
			}
			if err != nil {
				s.logger.Warn("event failed", "hid", msg.HID, "event", msg.Event, "error", err)
				s.reply(protocol.NewError(err))
			}

		case protocol.TypeClose:
			return

		default:
			s.logger.Warn("unexpected message type", "type", msg.Type)
		}
	}
}

// writeLoop drains the outbound queue and sends heartbeats.
func (s *Session) writeLoop(conn *websocket.Conn, stop <-chan struct{}) {
	interval := s.config.PingInterval
	if interval <= 0 {
		interval = DefaultConfig().PingInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-s.out:
			if err := s.write(conn, msg); err != nil {
				s.logger.Error("write error", "error", err)
				conn.Close()
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(s.writeTimeout())
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				conn.Close()
				return
			}

		case <-s.ctx.Done():
			s.flush(conn)
			s.writeClose(conn)
			conn.Close()
			return

		case <-stop:
			return
		}
	}
}

func (s *Session) flush(conn *websocket.Conn) {
	for {
		select {
		case msg := <-s.out:
			if err := s.write(conn, msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (s *Session) writeClose(conn *websocket.Conn) {
	_ = s.write(conn, protocol.NewClose(s.reason()))
	deadline := time.Now().Add(s.writeTimeout())
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(s.reason())), deadline)
}

func (s *Session) write(conn *websocket.Conn, msg *protocol.Message) error {
	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(s.writeTimeout()))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// reply queues msg, logging instead of failing when the queue is full.
func (s *Session) reply(msg *protocol.Message) {
	if err := s.Send(msg); err != nil {
		s.logger.Warn("reply dropped", "type", msg.Type, "error", err)
	}
}

func (s *Session) extendReadDeadline(conn *websocket.Conn) {
	if s.config.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	}
}

func (s *Session) writeTimeout() time.Duration {
	if s.config.WriteTimeout > 0 {
		return s.config.WriteTimeout
	}
	return DefaultConfig().WriteTimeout
}
