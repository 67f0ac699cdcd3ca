package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/graphkit/pkg/publish"
)

// EventSource subscribes to published graph events until ctx is done.
// [publish.RedisPublisher.Subscribe] is one.
type EventSource func(ctx context.Context) (<-chan publish.Message, error)

// WithEvents streams messages from src to websocket clients on /events.
func WithEvents(src EventSource) Option { return func(s *Server) { s.events = src } }

const writeWait = 10 * time.Second

func (s *Server) upgrader() *websocket.Upgrader {
	u := &websocket.Upgrader{}
	switch s.corsOrigin {
	case "":
		// gorilla's default same-origin check
	case "*":
		u.CheckOrigin = func(*http.Request) bool { return true }
	default:
		u.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == s.corsOrigin
		}
	}
	return u
}

// handleEvents relays messages as JSON text frames until the client goes
// away or the source closes its channel.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	msgs, err := s.events(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	// Clients never send anything; reading only notices a close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	closeWith := func(code int) {
		msg := websocket.FormatCloseMessage(code, "")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	}

	for {
		select {
		case <-ctx.Done():
			closeWith(websocket.CloseGoingAway)
			return
		case msg, ok := <-msgs:
			if !ok {
				closeWith(websocket.CloseNormalClosure)
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				s.logger.Debug("websocket write failed", "err", err)
				return
			}
		}
	}
}
