package solver

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/grid"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(5, 7))
}

func pset(points ...grid.Point) map[grid.Point]struct{} {
	s := make(map[grid.Point]struct{}, len(points))
	for _, p := range points {
		s[p] = struct{}{}
	}
	return s
}

func TestDeduceSaturation(t *testing.T) {
	a, b := grid.Point{X: 1, Y: 0}, grid.Point{X: 1, Y: 1}
	eqs := map[grid.Point]*equation{
		{X: 0, Y: 0}: {cells: pset(a, b), mines: 2},
	}
	mines, safe := deduce(eqs)
	assert.Equal(t, pset(a, b), mines)
	assert.Empty(t, safe)
}

func TestDeduceExhaustion(t *testing.T) {
	a := grid.Point{X: 1, Y: 0}
	eqs := map[grid.Point]*equation{
		{X: 0, Y: 0}: {cells: pset(a), mines: 0},
	}
	mines, safe := deduce(eqs)
	assert.Empty(t, mines)
	assert.Equal(t, pset(a), safe)
}

func TestDeducePropagation(t *testing.T) {
	// {a} = 1 proves a is a mine; subtracting it from {a,b} = 1 leaves
	// {b} = 0, which proves b safe
	a, b := grid.Point{X: 2, Y: 0}, grid.Point{X: 2, Y: 1}
	eqs := map[grid.Point]*equation{
		{X: 0, Y: 0}: {cells: pset(a), mines: 1},
		{X: 0, Y: 1}: {cells: pset(a, b), mines: 1},
	}
	mines, safe := deduce(eqs)
	assert.Equal(t, pset(a), mines)
	assert.Equal(t, pset(b), safe)
}

func TestDeduceNothingProvable(t *testing.T) {
	// two covered cells, one mine: either could be it
	a, b := grid.Point{X: 1, Y: 0}, grid.Point{X: 1, Y: 1}
	eqs := map[grid.Point]*equation{
		{X: 0, Y: 0}: {cells: pset(a, b), mines: 1},
	}
	mines, safe := deduce(eqs)
	assert.Empty(t, mines)
	assert.Empty(t, safe)
}

func TestSolverDeducesStripEndgame(t *testing.T) {
	// 6x1 strip, mine at (4,0). Opening (0,0) floods up to the count-1
	// cell (3,0). The only equation is {(4,0)} = 1, so the solver must
	// flag (4,0) and, with no safe cell proven, guess the only eligible
	// cell left: (5,0).
	cfg := game.Config{Width: 6, Height: 1, MineCount: 1}
	g, err := game.NewGameWithMines(cfg, []grid.Point{{X: 4, Y: 0}})
	require.NoError(t, err)

	s := New(testRand())
	s.Reset(cfg)

	result, err := g.Select(0, 0)
	require.NoError(t, err)
	s.Update(result)

	next := s.Next(g.State())
	assert.Equal(t, grid.Point{X: 5, Y: 0}, next)
	assert.Equal(t, []grid.Point{{X: 4, Y: 0}}, s.Flags())

	result, err = g.Select(next.X, next.Y)
	require.NoError(t, err)
	assert.Equal(t, game.Victory, result.Status)
}

func TestSolverFlagsStayUnique(t *testing.T) {
	cfg := game.Config{Width: 6, Height: 1, MineCount: 1}
	g, err := game.NewGameWithMines(cfg, []grid.Point{{X: 4, Y: 0}})
	require.NoError(t, err)

	s := New(testRand())
	s.Reset(cfg)
	result, err := g.Select(0, 0)
	require.NoError(t, err)
	s.Update(result)

	state := g.State()
	s.Next(state)
	s.Next(state)
	assert.Len(t, s.Flags(), 1)
}

func TestSolverPrunesExposedFlags(t *testing.T) {
	s := New(testRand())
	s.Reset(game.Config{Width: 3, Height: 1, MineCount: 1})
	s.flagged[grid.Point{X: 2, Y: 0}] = struct{}{}

	s.Update(&game.MoveResult{
		Status:     game.Defeat,
		NewSquares: []game.Square{{X: 2, Y: 0, NumMines: 0}},
	})
	assert.Empty(t, s.Flags())
}

// Soundness: everything deduced must agree with the hidden layout, on
// every step of many randomly generated games.
func TestSolverSoundness(t *testing.T) {
	cfg := game.Config{Width: 9, Height: 9, MineCount: 10}
	rnd := testRand()
	for run := range 30 {
		g, err := game.NewGame(cfg, rnd)
		require.NoError(t, err)

		s := New(rnd)
		s.Reset(cfg)

		for !g.GameOver() {
			state := g.State()

			mines, safe := deduce(s.buildEquations(state))
			for p := range mines {
				require.True(t, g.IsMine(p.X, p.Y),
					"run %d: (%d,%d) deduced a mine but is not one", run, p.X, p.Y)
			}
			for p := range safe {
				require.False(t, g.IsMine(p.X, p.Y),
					"run %d: (%d,%d) deduced safe but is a mine", run, p.X, p.Y)
			}

			pos := s.Next(state)
			result, err := g.Select(pos.X, pos.Y)
			require.NoError(t, err)
			s.Update(result)

			for _, p := range s.Flags() {
				require.True(t, g.IsMine(p.X, p.Y),
					"run %d: flag on (%d,%d) which is not a mine", run, p.X, p.Y)
			}
		}
	}
}
