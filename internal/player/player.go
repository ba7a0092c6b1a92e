// Package player defines the contract a game-playing strategy must
// satisfy, and a baseline strategy that guesses uniformly at random.
package player

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/grid"
)

// Player is anything that can play minesweeper. The driving loop calls
// Reset once per game, then alternates Next and Update until the game is
// terminal. Implementations own their tracking state exclusively; a single
// Player must not be shared between concurrently running games.
type Player interface {
	// Reset reinitializes all internal tracking for a new game.
	Reset(cfg game.Config)
	// Next proposes a cell to select. The returned cell is never one the
	// player has already seen exposed, nor one of its own flags.
	Next(state game.Board) grid.Point
	// Update must be called after every move so the player can record the
	// newly exposed squares.
	Update(result *game.MoveResult)
	// Flags lists the cells the player believes are mines. Display only.
	Flags() []grid.Point
}

// NewRand returns a PCG source seeded the same way the server seeds its
// per-handler generators.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}
