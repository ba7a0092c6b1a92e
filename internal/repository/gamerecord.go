package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper-ai/internal/game"
)

// Summary is one aggregate row per (profile, board shape).
type Summary struct {
	Name      string  `json:"name"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	MineCount int     `json:"mine_count"`
	Games     int     `json:"games"`
	Wins      int     `json:"wins"`
	WinRate   float64 `json:"win_rate"`
	MeanMoves float64 `json:"mean_moves"`
}

// SaveResults stores one row per finished game of a batch.
func (q Queries) SaveResults(
	ctx context.Context,
	profileId int,
	cfg game.Config,
	results []game.GameResult,
) error {
	batch := &pgx.Batch{}
	for _, res := range results {
		batch.Queue(`
			INSERT INTO game_record (
				profile_id, width, height, mine_count, victory, num_moves
			)
			VALUES (
				@profile_id, @width, @height, @mine_count, @victory, @num_moves
			)`,
			pgx.NamedArgs{
				"profile_id": profileId,
				"width":      cfg.Width,
				"height":     cfg.Height,
				"mine_count": cfg.MineCount,
				"victory":    res.Victory,
				"num_moves":  res.NumMoves,
			})
	}
	return q.db.SendBatch(ctx, batch).Close()
}

func (q Queries) GetSummaries(ctx context.Context) ([]Summary, error) {
	rows, err := q.db.Query(ctx, `
		SELECT
			name,
			width,
			height,
			mine_count,
			count(*) games,
			count(*) FILTER (WHERE victory) wins,
			avg(victory::int) win_rate,
			avg(num_moves) mean_moves
		FROM game_record
			JOIN profile USING (profile_id)
		GROUP BY name, width, height, mine_count
		ORDER BY name, width, height, mine_count;`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Summary])
}
