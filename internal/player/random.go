package player

import (
	"math/rand/v2"

	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/grid"
)

// Random guesses uniformly among the cells it has not seen exposed and has
// not flagged. It never flags anything, so its flag list stays empty.
type Random struct {
	width, height int
	rnd           *rand.Rand
	exposed       map[grid.Point]struct{}
}

func NewRandom(rnd *rand.Rand) *Random {
	if rnd == nil {
		rnd = NewRand()
	}
	return &Random{
		rnd:     rnd,
		exposed: make(map[grid.Point]struct{}),
	}
}

func (p *Random) Reset(cfg game.Config) {
	p.width, p.height = cfg.Width, cfg.Height
	clear(p.exposed)
}

func (p *Random) Next(_ game.Board) grid.Point {
	for {
		pos := grid.Point{X: p.rnd.IntN(p.width), Y: p.rnd.IntN(p.height)}
		if _, ok := p.exposed[pos]; !ok {
			return pos
		}
	}
}

func (p *Random) Update(result *game.MoveResult) {
	for _, sq := range result.NewSquares {
		p.exposed[grid.Point{X: sq.X, Y: sq.Y}] = struct{}{}
	}
}

func (p *Random) Flags() []grid.Point {
	return nil
}
