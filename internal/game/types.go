package game

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status of a game. A game is terminal in every status except [Playing].
type Status int

const (
	Playing Status = iota + 1
	Victory
	Defeat
	Quit
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	case Quit:
		return "quit"
	default:
		return "invalid"
	}
}

// [Status] implements [json.Marshaler]
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// [Status] implements [json.Unmarshaler]
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "playing":
		*s = Playing
	case "victory":
		*s = Victory
	case "defeat":
		*s = Defeat
	case "quit":
		*s = Quit
	default:
		return fmt.Errorf("invalid status %q", name)
	}
	return nil
}

// Square is a snapshot of a cell the moment it was exposed.
type Square struct {
	X        int `json:"x"`
	Y        int `json:"y"`
	NumMines int `json:"num_mines"` // mines among the up-to-8 neighbors
}

// MoveResult describes the outcome of a single selection. NewSquares is a
// set: callers must not rely on its order.
type MoveResult struct {
	Status     Status   `json:"status"`
	NewSquares []Square `json:"new_squares"`
}

// GameResult summarizes a finished game.
type GameResult struct {
	Victory  bool `json:"victory"`
	NumMoves int  `json:"num_moves"`
}

// CellState is a cell as seen by the player: [Covered], or a neighbor mine
// count in [0, 8].
type CellState int8

const Covered CellState = -1

func (s CellState) String() string {
	if s == Covered {
		return "."
	}
	return strconv.Itoa(int(s))
}

// Board is the player-visible state of a game, a flat row-major grid of
// [CellState] values.
type Board []CellState

// At returns the state of (x, y) on a board of the given width.
func (b Board) At(width, x, y int) CellState {
	return b[y*width+x]
}

func (b Board) ToString(width int) string {
	var sb strings.Builder
	for y := range len(b) / width {
		for x := range width {
			fmt.Fprint(&sb, b[y*width+x].String()+" ")
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
