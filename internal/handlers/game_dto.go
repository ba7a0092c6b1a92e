package handlers

import (
	"net/url"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/grid"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type PosParams struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParseConfig(query url.Values) (game.Config, error) {
	var cfg game.Config
	if err := dec.Decode(&cfg, query); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func ParsePosition(query url.Values) (PosParams, error) {
	var pos PosParams
	err := dec.Decode(&pos, query)
	return pos, err
}

// SessionJSON is the player-visible view of a session. Board holds -1 for
// covered cells and neighbor mine counts for exposed ones.
type SessionJSON struct {
	SessionId string       `json:"session_id"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	MineCount int          `json:"mine_count"`
	Status    game.Status  `json:"status"`
	NumMoves  int          `json:"num_moves"`
	Board     game.Board   `json:"board"`
	Flags     []grid.Point `json:"flags"`
}

// sessionView snapshots a session. The caller must hold the session lock.
func sessionView(s *Session) SessionJSON {
	cfg := s.Game.Config()
	return SessionJSON{
		SessionId: s.Id,
		Width:     cfg.Width,
		Height:    cfg.Height,
		MineCount: cfg.MineCount,
		Status:    s.Game.Status(),
		NumMoves:  s.Game.NumMoves(),
		Board:     s.Game.State(),
		Flags:     s.Game.Flags(),
	}
}
