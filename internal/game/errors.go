package game

import (
	"errors"
	"fmt"
)

var (
	// ErrGameOver is returned by [Game.Select] once the game is terminal.
	ErrGameOver = errors.New("game is already over")
	// ErrAlreadyExposed is returned when selecting an exposed cell.
	ErrAlreadyExposed = errors.New("position already exposed")
	// ErrNotOver is returned by [Game.Result] while the game is running.
	ErrNotOver = errors.New("game is not over")
	// ErrBadLayout is returned by [NewGameWithMines] when the supplied
	// layout does not match the configured mine count.
	ErrBadLayout = errors.New("mine layout does not match mine count")
)

// OutOfBoundsError reports a coordinate outside the board.
type OutOfBoundsError struct {
	X, Y int
}

// [OutOfBoundsError] implements [error]
func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf("position (%d,%d) is outside the board", e.X, e.Y)
}
