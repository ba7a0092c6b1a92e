// Package solver implements a constraint-satisfaction player. Every
// exposed cell with a non-zero count yields one equation — the set of its
// still-covered neighbors plus the number of mines hiding among them — and
// two inference rules are propagated to a fixpoint:
//
//   - saturation: a set exactly as large as its mine count is all mines;
//   - exhaustion: a set with a zero mine count is all safe.
//
// Confirmed mines are removed from every equation with its count
// decremented; confirmed safe cells are removed without touching the
// count. When no safe cell can be proven the solver guesses like
// [player.Random].
package solver

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/grid"
	"github.com/vancomm/minesweeper-ai/internal/player"
)

var Log = logrus.New()

// Solver implements [player.Player].
type Solver struct {
	width, height int
	rnd           *rand.Rand
	exposed       map[grid.Point]struct{}
	flagged       map[grid.Point]struct{}
}

func New(rnd *rand.Rand) *Solver {
	if rnd == nil {
		rnd = player.NewRand()
	}
	return &Solver{
		rnd:     rnd,
		exposed: make(map[grid.Point]struct{}),
		flagged: make(map[grid.Point]struct{}),
	}
}

func (s *Solver) Reset(cfg game.Config) {
	s.width, s.height = cfg.Width, cfg.Height
	clear(s.exposed)
	clear(s.flagged)
}

// Next rebuilds the equation system from the current visible state, runs
// the inference rules to a fixpoint, and returns a proven-safe cell if one
// exists. Newly proven mines are added to the flag set. With nothing
// proven safe it falls back to a uniformly random covered, unflagged cell.
func (s *Solver) Next(state game.Board) grid.Point {
	eqs := s.buildEquations(state)
	mines, safe := deduce(eqs)

	for p := range mines {
		s.flagged[p] = struct{}{}
	}
	if len(mines) > 0 || len(safe) > 0 {
		Log.WithFields(logrus.Fields{
			"mines": len(mines), "safe": len(safe),
		}).Debug("deduction fixpoint")
	}

	for p := range safe {
		return p
	}
	return s.guess()
}

func (s *Solver) guess() grid.Point {
	for {
		pos := grid.Point{X: s.rnd.IntN(s.width), Y: s.rnd.IntN(s.height)}
		if _, ok := s.exposed[pos]; ok {
			continue
		}
		if _, ok := s.flagged[pos]; ok {
			continue
		}
		return pos
	}
}

// Update records the newly exposed squares. A flag on a cell that turns
// out to be exposed is stale and gets pruned.
func (s *Solver) Update(result *game.MoveResult) {
	for _, sq := range result.NewSquares {
		p := grid.Point{X: sq.X, Y: sq.Y}
		s.exposed[p] = struct{}{}
		delete(s.flagged, p)
	}
}

func (s *Solver) Flags() []grid.Point {
	points := make([]grid.Point, 0, len(s.flagged))
	for p := range s.flagged {
		points = append(points, p)
	}
	return points
}
