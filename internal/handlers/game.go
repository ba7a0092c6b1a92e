package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/vancomm/minesweeper-ai/internal/game"
)

type GameHandler struct {
	logger   *slog.Logger
	sessions *Sessions
	mu       sync.Mutex // guards rnd
	rnd      *rand.Rand
}

func NewGameHandler(logger *slog.Logger, rnd *rand.Rand) *GameHandler {
	return &GameHandler{
		logger:   logger,
		sessions: NewSessions(),
		rnd:      rnd,
	}
}

func (h *GameHandler) newGame(cfg game.Config) (*game.Game, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return game.NewGame(cfg, h.rnd)
}

func (h *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	cfg, err := ParseConfig(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	g, err := h.newGame(cfg)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create a game", "error", err)
		return
	}
	session := h.sessions.Create(g)
	session.Lock()
	defer session.Unlock()
	sendJSONOrLog(w, h.logger, sessionView(session))
}

func (h *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	session.Lock()
	defer session.Unlock()
	sendJSONOrLog(w, h.logger, sessionView(session))
}

type moveResponse struct {
	SessionJSON
	NewSquares []game.Square `json:"new_squares"`
}

func (h *GameHandler) Open(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	session, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	session.Lock()
	defer session.Unlock()

	result, err := session.Game.Select(pos.X, pos.Y)
	if err != nil {
		// every select failure is a caller error, not a server one
		var oob game.OutOfBoundsError
		switch {
		case errors.As(err, &oob),
			errors.Is(err, game.ErrAlreadyExposed),
			errors.Is(err, game.ErrGameOver):
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, h.logger, wrapError(err))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			h.logger.Error("select failed", "error", err)
		}
		return
	}
	sendJSONOrLog(w, h.logger, moveResponse{
		SessionJSON: sessionView(session),
		NewSquares:  result.NewSquares,
	})
}

func (h *GameHandler) Quit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	session.Lock()
	defer session.Unlock()
	session.Game.Quit()
	sendJSONOrLog(w, h.logger, sessionView(session))
}
