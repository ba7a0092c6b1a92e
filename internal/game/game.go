package game

import (
	"math/rand/v2"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-ai/internal/grid"
)

var Log = logrus.New()

// Game is a single minesweeper board: the mine layout, per-cell neighbor
// mine counts and the exposure state. All grids are flat row-major slices
// indexed y*width+x. A Game must not be shared between goroutines.
type Game struct {
	cfg        Config
	mines      []bool
	exposed    []bool
	counts     []uint8
	flags      map[grid.Point]struct{}
	numExposed int
	numMoves   int
	exploded   bool
	quit       bool
}

// NewGame creates a game with cfg.MineCount mines placed uniformly at
// random without replacement, using r as the source of randomness.
func NewGame(cfg Config, r *rand.Rand) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := newEmptyGame(cfg)
	placed := 0
	for placed < cfg.MineCount {
		i := grid.Index(cfg.Width, r.IntN(cfg.Width), r.IntN(cfg.Height))
		if !g.mines[i] {
			g.mines[i] = true
			placed++
		}
	}
	g.initCounts()
	Log.WithFields(logrus.Fields{
		"width": cfg.Width, "height": cfg.Height, "mines": cfg.MineCount,
	}).Debug("game initialized")
	return g, nil
}

// NewGameWithMines creates a game with an externally supplied mine layout,
// so that tests and replays are deterministic. cfg.MineCount must match
// the number of distinct points in mines.
func NewGameWithMines(cfg Config, mines []grid.Point) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := newEmptyGame(cfg)
	placed := 0
	for _, p := range mines {
		if !grid.Contains(cfg.Width, cfg.Height, p.X, p.Y) {
			return nil, OutOfBoundsError{p.X, p.Y}
		}
		i := grid.Index(cfg.Width, p.X, p.Y)
		if !g.mines[i] {
			g.mines[i] = true
			placed++
		}
	}
	if placed != cfg.MineCount {
		return nil, ErrBadLayout
	}
	g.initCounts()
	return g, nil
}

func newEmptyGame(cfg Config) *Game {
	n := cfg.NumCells()
	return &Game{
		cfg:     cfg,
		mines:   make([]bool, n),
		exposed: make([]bool, n),
		counts:  make([]uint8, n),
		flags:   make(map[grid.Point]struct{}),
	}
}

func (g *Game) initCounts() {
	w, h := g.cfg.Width, g.cfg.Height
	for i := range g.counts {
		x, y := grid.Coords(w, i)
		g.counts[i] = uint8(grid.CountNeighbors(w, h, x, y,
			func(nx, ny int) bool {
				return g.mines[grid.Index(w, nx, ny)]
			}))
	}
}

func (g *Game) Config() Config { return g.cfg }

// NumMoves is the number of successful selections so far.
func (g *Game) NumMoves() int { return g.numMoves }

// NumExposed is the number of exposed cells. It only ever grows.
func (g *Game) NumExposed() int { return g.numExposed }

// IsMine reveals the hidden layout. It exists for post-game reveals and
// for tests that check deductions against the ground truth; players must
// not consult it.
func (g *Game) IsMine(x, y int) bool {
	return g.mines[grid.Index(g.cfg.Width, x, y)]
}

// Select exposes (x, y). Selecting a mine loses the game. Selecting a cell
// with no neighboring mines triggers region growing: the connected area of
// zero-count cells and its non-zero boundary are exposed in one move.
func (g *Game) Select(x, y int) (*MoveResult, error) {
	if !grid.Contains(g.cfg.Width, g.cfg.Height, x, y) {
		return nil, OutOfBoundsError{x, y}
	}
	if g.GameOver() {
		return nil, ErrGameOver
	}
	i := grid.Index(g.cfg.Width, x, y)
	if g.exposed[i] {
		return nil, ErrAlreadyExposed
	}

	g.numMoves++
	squares := g.expand(x, y)
	Log.WithFields(logrus.Fields{
		"x": x, "y": y, "revealed": len(squares),
	}).Debug("cell selected")
	return &MoveResult{Status: g.Status(), NewSquares: squares}, nil
}

// expand exposes (x, y) and, if it has a zero count, grows the exposed
// region through zero-count cells using an explicit worklist. Each cell is
// checked-and-marked exposed before it is pushed, so no cell is visited
// twice and the loop terminates after at most width×height pops.
func (g *Game) expand(x, y int) []Square {
	w, h := g.cfg.Width, g.cfg.Height
	i := grid.Index(w, x, y)

	g.expose(i)
	squares := []Square{{x, y, int(g.counts[i])}}
	if g.mines[i] {
		g.exploded = true
		return squares
	}
	if g.counts[i] != 0 {
		return squares
	}

	var todo deque.Deque[int]
	todo.PushBack(i)
	for todo.Len() > 0 {
		j := todo.PopBack()
		jx, jy := grid.Coords(w, j)
		grid.ForEachNeighbor(w, h, jx, jy, func(nx, ny int) {
			k := grid.Index(w, nx, ny)
			if g.exposed[k] {
				return
			}
			g.expose(k)
			squares = append(squares, Square{nx, ny, int(g.counts[k])})
			if g.counts[k] == 0 {
				todo.PushBack(k)
			}
		})
	}
	return squares
}

func (g *Game) expose(i int) {
	g.exposed[i] = true
	g.numExposed++
}

// Quit marks the game as quit. Exposure state is untouched.
func (g *Game) Quit() {
	Log.Debug("quitting")
	g.quit = true
}

func (g *Game) GameOver() bool {
	return g.exploded || g.quit || g.numExposed == g.cfg.NumSafe()
}

func (g *Game) Status() Status {
	switch {
	case !g.GameOver():
		return Playing
	case g.quit:
		return Quit
	case g.exploded:
		return Defeat
	default:
		return Victory
	}
}

// Result reports the outcome of a finished game. It fails with [ErrNotOver]
// while the game is still running.
func (g *Game) Result() (GameResult, error) {
	if !g.GameOver() {
		return GameResult{}, ErrNotOver
	}
	return GameResult{
		Victory:  g.Status() == Victory,
		NumMoves: g.numMoves,
	}, nil
}

// State is the board from the player's perspective: [Covered] for
// unexposed cells, the neighbor mine count for exposed ones.
func (g *Game) State() Board {
	state := make(Board, len(g.exposed))
	for i := range state {
		if g.exposed[i] {
			state[i] = CellState(g.counts[i])
		} else {
			state[i] = Covered
		}
	}
	return state
}

// SetFlags replaces the display-only flag set. Flags never affect the
// win/loss logic.
func (g *Game) SetFlags(points []grid.Point) {
	g.flags = make(map[grid.Point]struct{}, len(points))
	for _, p := range points {
		g.flags[p] = struct{}{}
	}
}

func (g *Game) Flags() []grid.Point {
	points := make([]grid.Point, 0, len(g.flags))
	for p := range g.flags {
		points = append(points, p)
	}
	return points
}
