package game

import "fmt"

// Config holds the immutable parameters of a game.
type Config struct {
	Width     int `json:"width" schema:"width,required"`
	Height    int `json:"height" schema:"height,required"`
	MineCount int `json:"mine_count" schema:"mine_count,required"`
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid board dimensions %dx%d", c.Width, c.Height)
	}
	if c.MineCount < 0 || c.MineCount >= c.Width*c.Height {
		return fmt.Errorf(
			"mine count %d out of range for a %dx%d board",
			c.MineCount, c.Width, c.Height,
		)
	}
	return nil
}

func (c Config) NumCells() int {
	return c.Width * c.Height
}

// NumSafe is the number of cells a player must expose to win.
func (c Config) NumSafe() int {
	return c.Width*c.Height - c.MineCount
}
