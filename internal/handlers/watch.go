package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/grid"
	"github.com/vancomm/minesweeper-ai/internal/player"
	"github.com/vancomm/minesweeper-ai/internal/runner"
	"github.com/vancomm/minesweeper-ai/internal/solver"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WatchParams struct {
	Player  string `schema:"player"`
	DelayMs int    `schema:"delay_ms"`
}

// watchFrame is one step of a watched game, sent as a single ws message.
type watchFrame struct {
	Status     game.Status   `json:"status"`
	NumMoves   int           `json:"num_moves"`
	NewSquares []game.Square `json:"new_squares"`
	Flags      []grid.Point  `json:"flags"`
	Board      game.Board    `json:"board"`
}

// frameEmitter streams each step of a run over a websocket. After a write
// failure it goes quiet and lets the run finish on its own.
type frameEmitter struct {
	c      *websocket.Conn
	delay  time.Duration
	logger *slog.Logger
	err    error
}

// [frameEmitter] implements [runner.Observer]
func (e *frameEmitter) OnStep(g *game.Game, result *game.MoveResult) {
	if e.err != nil {
		return
	}
	frame := watchFrame{
		Status:     result.Status,
		NumMoves:   g.NumMoves(),
		NewSquares: result.NewSquares,
		Flags:      g.Flags(),
		Board:      g.State(),
	}
	if err := e.c.WriteJSON(frame); err != nil {
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			e.logger.Warn("write failed", "error", err)
		}
		e.err = err
		return
	}
	if e.delay > 0 {
		time.Sleep(e.delay)
	}
}

func newWatchPlayer(name string) (player.Player, error) {
	switch name {
	case "", "csp":
		return solver.New(nil), nil
	case "random":
		return player.NewRandom(nil), nil
	default:
		return nil, fmt.Errorf("unknown player %q", name)
	}
}

// Watch runs a fresh game with the requested player and streams one JSON
// frame per move until the game is terminal. The client is read-only.
func (h *GameHandler) Watch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	cfg, err := ParseConfig(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	var params WatchParams
	if err := dec.Decode(&params, query); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	p, err := newWatchPlayer(params.Player)
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
	p.Reset(cfg)

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("upgrade failed", "error", err)
		return
	}
	defer c.Close()

	emitter := &frameEmitter{
		c:      c,
		delay:  time.Duration(params.DelayMs) * time.Millisecond,
		logger: h.logger,
	}
	if _, err := runner.New(g, p).Run(emitter); err != nil {
		h.logger.Error("watch run failed", "error", err)
		return
	}
	if emitter.err != nil {
		return
	}

	h.logger.Info(
		"watched game finished",
		slog.String("status", g.Status().String()),
		slog.Int("moves", g.NumMoves()),
	)
	c.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
}
