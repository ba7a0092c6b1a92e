package runner

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/player"
)

// Factory creates a fresh player for one game of a batch. Each game gets
// its own player so no tracking state is shared between games.
type Factory func() player.Player

// RunGames plays numGames independent games of cfg and returns one result
// per game. Games run on up to parallelism goroutines; they share no state,
// so no further synchronization is involved. A canceled ctx stops the
// batch after the games already in flight.
func RunGames(
	ctx context.Context,
	cfg game.Config,
	numGames int,
	parallelism int,
	newPlayer Factory,
) ([]game.GameResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if parallelism < 1 {
		parallelism = 1
	}

	results := make([]game.GameResult, numGames)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(parallelism)
	for i := range numGames {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := newPlayer()
			p.Reset(cfg)
			g, err := game.NewGame(cfg, player.NewRand())
			if err != nil {
				return err
			}
			results[i], err = New(g, p).Run(nil)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary aggregates a batch of game results.
type Summary struct {
	Games     int     `json:"games"`
	Wins      int     `json:"wins"`
	WinRate   float64 `json:"win_rate"`
	MeanMoves float64 `json:"mean_moves"`
}

func Summarize(results []game.GameResult) Summary {
	s := Summary{Games: len(results)}
	if s.Games == 0 {
		return s
	}
	var moves int
	for _, r := range results {
		if r.Victory {
			s.Wins++
		}
		moves += r.NumMoves
	}
	s.WinRate = float64(s.Wins) / float64(s.Games)
	s.MeanMoves = float64(moves) / float64(s.Games)
	return s
}
