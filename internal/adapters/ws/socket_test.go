package ws

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/untangle/internal/generator"
	"svw.info/untangle/internal/usecase"
	"svw.info/untangle/internal/validator"
)

func TestMoveStreamSolvesLevel(t *testing.T) {
	uc := usecase.NewService(generator.NewRingGenerator(), validator.New(), nil, nil)
	session, level, _, err := uc.Start(context.Background(), 3, 1)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/ws/{session}", New(uc, slog.Default()).Handle)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + session
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// Unknown pin: reported back, connection stays usable.
	require.NoError(t, conn.WriteJSON(moveMsg{Type: "move", Point: "p99"}))
	var msg evalMsg
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)

	// Stream the solved ring layout; expect a result per move and one
	// solved frame at the end.
	n := len(level.Points)
	sawSolved := false
	for i, p := range level.Points {
		pos := generator.RingPosition(i, n)
		require.NoError(t, conn.WriteJSON(moveMsg{Type: "move", Point: p.ID, X: pos.X, Y: pos.Y}))
		require.NoError(t, conn.ReadJSON(&msg))
		require.Equal(t, "result", msg.Type)
		if msg.Solved {
			require.NoError(t, conn.ReadJSON(&msg))
			assert.Equal(t, "solved", msg.Type)
			sawSolved = true
			break
		}
	}
	assert.True(t, sawSolved)
}

func TestUnknownSessionRejected(t *testing.T) {
	uc := usecase.NewService(generator.NewRingGenerator(), validator.New(), nil, nil)
	r := chi.NewRouter()
	r.Get("/ws/{session}", New(uc, slog.Default()).Handle)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	if resp != nil {
		resp.Body.Close()
		assert.Equal(t, 404, resp.StatusCode)
	}
}
