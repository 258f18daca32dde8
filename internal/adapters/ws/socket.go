// Package ws streams drag updates over a websocket so the frontend gets
// tangle feedback per move without an HTTP round trip each time.
package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"svw.info/untangle/internal/domain"
	"svw.info/untangle/internal/usecase"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// moveMsg is the incoming frame: one drag update for the session.
type moveMsg struct {
	Type  string  `json:"type"` // "move" or "evaluate"
	Point string  `json:"point,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
}

// evalMsg is the outgoing frame: the evaluation after the move, plus a
// one-shot solved notification when the level is freshly won.
type evalMsg struct {
	Type    string          `json:"type"` // "result", "solved" or "error"
	Tangled map[string]bool `json:"tangled,omitempty"`
	Solved  bool            `json:"solved"`
	Error   string          `json:"error,omitempty"`
}

type Socket struct {
	uc  *usecase.Service
	log *slog.Logger
}

func New(uc *usecase.Service, log *slog.Logger) *Socket {
	return &Socket{uc: uc, log: log}
}

// Handle upgrades the connection and relays move frames to the session
// until the client goes away.
func (s *Socket) Handle(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	if _, err := s.uc.Phase(session); err != nil {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	solvedSent := false
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read", "err", err)
			}
			return
		}

		var msg moveMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.send(conn, evalMsg{Type: "error", Error: "invalid message format"})
			continue
		}

		switch msg.Type {
		case "move":
			res, err := s.uc.Move(r.Context(), session, msg.Point, msg.X, msg.Y)
			if err != nil {
				// Unknown pins are recovered locally and reported back,
				// never fatal for the connection.
				if errors.Is(err, domain.ErrUnknownPoint) {
					s.send(conn, evalMsg{Type: "error", Error: err.Error()})
					continue
				}
				s.send(conn, evalMsg{Type: "error", Error: err.Error()})
				return
			}
			s.send(conn, evalMsg{Type: "result", Tangled: res.Tangled, Solved: res.Solved})
			if res.Solved && !solvedSent {
				solvedSent = true
				s.send(conn, evalMsg{Type: "solved", Solved: true})
			}
		case "evaluate":
			res, err := s.uc.Evaluate(session)
			if err != nil {
				s.send(conn, evalMsg{Type: "error", Error: err.Error()})
				return
			}
			s.send(conn, evalMsg{Type: "result", Tangled: res.Tangled, Solved: res.Solved})
		default:
			s.send(conn, evalMsg{Type: "error", Error: "unknown message type"})
		}
	}
}

func (s *Socket) send(conn *websocket.Conn, msg evalMsg) {
	if err := conn.WriteJSON(msg); err != nil {
		s.log.Warn("websocket write", "err", err)
	}
}
