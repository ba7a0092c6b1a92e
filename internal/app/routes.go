package app

import (
	"github.com/vancomm/minesweeper-ai/internal/handlers"
	"github.com/vancomm/minesweeper-ai/internal/player"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.logger, player.NewRand())

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/open", game.Open)
	a.router.HandleFunc("POST /game/{id}/quit", game.Quit)
	a.router.HandleFunc("/watch", game.Watch)
}
