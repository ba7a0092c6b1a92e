// Package runner drives a game/player pair one synchronous move at a time
// and evaluates players over batches of independent games.
package runner

import (
	"errors"

	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/player"
)

// ErrDone is returned by [Runner.Step] once the game is terminal.
var ErrDone = errors.New("game is over")

// Observer receives each step of a run, read-only. Used by visualizers
// such as the watch websocket.
type Observer interface {
	OnStep(g *game.Game, result *game.MoveResult)
}

// Runner alternates player decisions and game moves.
type Runner struct {
	Game   *game.Game
	Player player.Player
}

func New(g *game.Game, p player.Player) *Runner {
	return &Runner{Game: g, Player: p}
}

// Step advances the game by exactly one move: read the visible state, ask
// the player, select, feed the result back. While the game stays in play
// the player's flags are mirrored onto the game for display. Returns
// [ErrDone] if the game was already terminal; a Runner must not be stepped
// past that point.
func (r *Runner) Step() (*game.MoveResult, error) {
	if r.Game.GameOver() {
		return nil, ErrDone
	}
	pos := r.Player.Next(r.Game.State())
	result, err := r.Game.Select(pos.X, pos.Y)
	if err != nil {
		return nil, err
	}
	r.Player.Update(result)
	if result.Status == game.Playing {
		r.Game.SetFlags(r.Player.Flags())
	}
	return result, nil
}

// Run steps the game to completion. obs may be nil.
func (r *Runner) Run(obs Observer) (game.GameResult, error) {
	for {
		result, err := r.Step()
		if errors.Is(err, ErrDone) {
			return r.Game.Result()
		}
		if err != nil {
			return game.GameResult{}, err
		}
		if obs != nil {
			obs.OnStep(r.Game, result)
		}
	}
}
