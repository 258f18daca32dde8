package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/untangle/internal/domain"
	"svw.info/untangle/internal/generator"
	"svw.info/untangle/internal/hint"
	"svw.info/untangle/internal/infrastructure/storage"
	"svw.info/untangle/internal/usecase"
	"svw.info/untangle/internal/validator"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	uc := usecase.NewService(
		generator.NewRingGenerator(),
		validator.New(),
		hint.NewBusiest(),
		storage.NewFS(t.TempDir()),
	)
	r := chi.NewRouter()
	New(uc).Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestStartMoveSolveOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	var started startResp
	code := postJSON(t, srv.URL+"/api/level", startReq{Index: 1, Seed: 7}, &started)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, started.Session)
	require.Len(t, started.Level.Points, 5)

	// A move for a pin that does not exist is a 400, not a crash.
	var bad evalResp
	code = postJSON(t, srv.URL+"/api/move", moveReq{Session: started.Session, Point: "p99"}, &bad)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, bad.Error)

	// Drag every pin onto the solved ring layout.
	n := len(started.Level.Points)
	var last evalResp
	for i, p := range started.Level.Points {
		pos := generator.RingPosition(i, n)
		code = postJSON(t, srv.URL+"/api/move", moveReq{
			Session: started.Session, Point: p.ID, X: pos.X, Y: pos.Y,
		}, &last)
		require.Equal(t, http.StatusOK, code)
	}
	assert.True(t, last.Result.Solved)
	assert.Equal(t, "solved", last.Phase)

	// Solving level 1 unlocked level 2.
	resp, err := http.Get(srv.URL + "/api/progress")
	require.NoError(t, err)
	defer resp.Body.Close()
	var prog progressResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&prog))
	assert.Equal(t, 2, prog.Progress.Unlocked)
}

func TestEvaluateUnknownSession(t *testing.T) {
	srv := newTestServer(t)
	var out evalResp
	code := postJSON(t, srv.URL+"/api/evaluate", sessionReq{Session: "nope"}, &out)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestStartRejectsBadIndex(t *testing.T) {
	srv := newTestServer(t)
	var out startResp
	code := postJSON(t, srv.URL+"/api/level", startReq{Index: 0, Seed: 1}, &out)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, out.Error)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	var started startResp
	code := postJSON(t, srv.URL+"/api/level", startReq{Index: 3, Seed: 11}, &started)
	require.Equal(t, http.StatusOK, code)

	var saved saveResp
	code = postJSON(t, srv.URL+"/api/save", saveReq{Level: started.Level, Name: "my knot"}, &saved)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, saved.ID)

	var loaded loadResp
	code = postJSON(t, srv.URL+"/api/load", loadReq{ID: saved.ID}, &loaded)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, loaded.Session)
	assert.Equal(t, "my knot", loaded.Level.Name)
	assert.Len(t, loaded.Level.Points, len(started.Level.Points))

	resp, err := http.Get(srv.URL + "/api/levels")
	require.NoError(t, err)
	defer resp.Body.Close()
	var list listResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Levels, 1)
	assert.Equal(t, saved.ID, list.Levels[0].ID)
}

func TestSaveRejectsBrokenLevel(t *testing.T) {
	srv := newTestServer(t)
	var out saveResp
	code := postJSON(t, srv.URL+"/api/save", saveReq{Level: &domain.Level{
		Points: []domain.Point{{ID: "p0"}},
		Edges:  []domain.Edge{{ID: "e0", P1: "p0", P2: "p0"}},
	}}, &out)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, out.Error)
}

func TestEndSession(t *testing.T) {
	srv := newTestServer(t)

	var started startResp
	code := postJSON(t, srv.URL+"/api/level", startReq{Index: 1, Seed: 5}, &started)
	require.Equal(t, http.StatusOK, code)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/level/"+started.Session, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
