package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/player"
)

func testMux(t *testing.T) *http.ServeMux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewGameHandler(logger, player.NewRand())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /game", h.NewGame)
	mux.HandleFunc("GET /game/{id}", h.Fetch)
	mux.HandleFunc("POST /game/{id}/open", h.Open)
	mux.HandleFunc("POST /game/{id}/quit", h.Quit)
	mux.HandleFunc("/watch", h.Watch)
	return mux
}

func doJSON[T any](t *testing.T, mux *http.ServeMux, method, target string) (int, T) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	var v T
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	}
	return w.Code, v
}

func TestNewGameAndFetch(t *testing.T) {
	mux := testMux(t)

	code, session := doJSON[SessionJSON](
		t, mux, http.MethodPost, "/game?width=8&height=8&mine_count=10",
	)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 8, session.Width)
	assert.Equal(t, 8, session.Height)
	assert.Equal(t, 10, session.MineCount)
	assert.Len(t, session.Board, 64)
	assert.Equal(t, 0, session.NumMoves)

	code, fetched := doJSON[SessionJSON](
		t, mux, http.MethodGet, "/game/"+session.SessionId,
	)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, session.SessionId, fetched.SessionId)
}

func TestNewGameRejectsBadParams(t *testing.T) {
	mux := testMux(t)
	for _, target := range []string{
		"/game",
		"/game?width=8&height=8",
		"/game?width=8&height=8&mine_count=64",
		"/game?width=0&height=8&mine_count=1",
	} {
		code, _ := doJSON[SessionJSON](t, mux, http.MethodPost, target)
		assert.Equal(t, http.StatusBadRequest, code, target)
	}
}

func TestFetchUnknownSession(t *testing.T) {
	mux := testMux(t)
	code, _ := doJSON[SessionJSON](t, mux, http.MethodGet, "/game/999")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestOpen(t *testing.T) {
	mux := testMux(t)
	code, session := doJSON[SessionJSON](
		t, mux, http.MethodPost, "/game?width=8&height=8&mine_count=10",
	)
	require.Equal(t, http.StatusOK, code)

	base := "/game/" + session.SessionId + "/open"
	code, moved := doJSON[moveResponse](t, mux, http.MethodPost, base+"?x=3&y=3")
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, moved.NewSquares)
	assert.Equal(t, 1, moved.NumMoves)

	// reopening is a caller error whether or not the game is still live
	code, _ = doJSON[moveResponse](t, mux, http.MethodPost, base+"?x=3&y=3")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON[moveResponse](t, mux, http.MethodPost, base+"?x=99&y=3")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON[moveResponse](t, mux, http.MethodPost, base+"?x=3")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestQuit(t *testing.T) {
	mux := testMux(t)
	code, session := doJSON[SessionJSON](
		t, mux, http.MethodPost, "/game?width=8&height=8&mine_count=10",
	)
	require.Equal(t, http.StatusOK, code)

	code, quit := doJSON[SessionJSON](
		t, mux, http.MethodPost, "/game/"+session.SessionId+"/quit",
	)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, game.Quit, quit.Status)
}

func TestWatchStreamsToCompletion(t *testing.T) {
	srv := httptest.NewServer(testMux(t))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") +
		"/watch?width=4&height=4&mine_count=0&player=csp"
	c, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	defer c.Close()

	// a mine-free board ends in a single move
	var frame watchFrame
	require.NoError(t, c.ReadJSON(&frame))
	assert.Equal(t, game.Victory, frame.Status)
	assert.Len(t, frame.NewSquares, 16)
	assert.Equal(t, 1, frame.NumMoves)
}

func TestFrameEmitterQuietAfterFailure(t *testing.T) {
	g, err := game.NewGame(game.Config{Width: 2, Height: 2, MineCount: 0}, player.NewRand())
	require.NoError(t, err)
	result, err := g.Select(0, 0)
	require.NoError(t, err)

	// once a write fails the emitter must not touch the connection again
	e := &frameEmitter{err: errors.New("write: broken pipe")}
	assert.NotPanics(t, func() { e.OnStep(g, result) })
}

func TestSessionsRegistry(t *testing.T) {
	sessions := NewSessions()
	g, err := game.NewGame(game.Config{Width: 2, Height: 2, MineCount: 0}, player.NewRand())
	require.NoError(t, err)

	s1 := sessions.Create(g)
	s2 := sessions.Create(g)
	assert.NotEqual(t, s1.Id, s2.Id)

	got, ok := sessions.Get(s1.Id)
	assert.True(t, ok)
	assert.Same(t, s1, got)

	_, ok = sessions.Get("missing")
	assert.False(t, ok)
}
