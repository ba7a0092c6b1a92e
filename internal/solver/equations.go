package solver

import (
	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/grid"
)

// equation is one constraint: exactly `mines` of the cells in `cells` hide
// a mine. Equations live for a single Next call.
type equation struct {
	cells map[grid.Point]struct{}
	mines int
}

// buildEquations creates one equation per exposed cell with a non-zero
// visible count, over its currently covered neighbors. Cells with no
// covered neighbors left are fully resolved and skipped.
func (s *Solver) buildEquations(state game.Board) map[grid.Point]*equation {
	eqs := make(map[grid.Point]*equation)
	for p := range s.exposed {
		count := state.At(s.width, p.X, p.Y)
		if count <= 0 {
			continue
		}
		cells := make(map[grid.Point]struct{})
		grid.ForEachNeighbor(s.width, s.height, p.X, p.Y,
			func(nx, ny int) {
				if state.At(s.width, nx, ny) == game.Covered {
					cells[grid.Point{X: nx, Y: ny}] = struct{}{}
				}
			})
		if len(cells) > 0 {
			eqs[p] = &equation{cells: cells, mines: int(count)}
		}
	}
	return eqs
}

// deduce runs the saturation and exhaustion rules over the equation system
// until neither produces a new cell. Both accumulated sets only ever grow
// and are bounded by the board size, so the loop always terminates. The
// equations are consumed.
func deduce(eqs map[grid.Point]*equation) (mines, safe map[grid.Point]struct{}) {
	mines = make(map[grid.Point]struct{})
	safe = make(map[grid.Point]struct{})
	for {
		newMines := make(map[grid.Point]struct{})
		for _, eq := range eqs {
			if len(eq.cells) > 0 && len(eq.cells) == eq.mines {
				for p := range eq.cells {
					if _, ok := mines[p]; !ok {
						newMines[p] = struct{}{}
					}
				}
			}
		}
		for p := range newMines {
			mines[p] = struct{}{}
			// a found mine no longer needs finding: drop it everywhere
			// and lower each affected target by one
			for _, eq := range eqs {
				if _, ok := eq.cells[p]; ok {
					delete(eq.cells, p)
					eq.mines--
				}
			}
		}

		newSafe := make(map[grid.Point]struct{})
		for _, eq := range eqs {
			if eq.mines == 0 {
				for p := range eq.cells {
					if _, ok := safe[p]; !ok {
						newSafe[p] = struct{}{}
					}
				}
			}
		}
		for p := range newSafe {
			safe[p] = struct{}{}
			// a safe cell contributes nothing to any count
			for _, eq := range eqs {
				delete(eq.cells, p)
			}
		}

		if len(newMines) == 0 && len(newSafe) == 0 {
			return mines, safe
		}
	}
}
