package app

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-ai/internal/config"
	"github.com/vancomm/minesweeper-ai/internal/middleware"
)

type App struct {
	logger *slog.Logger
	router *http.ServeMux
}

func New(logger *slog.Logger) *App {
	return &App{
		logger: logger,
		router: http.NewServeMux(),
	}
}

func (a *App) Start(ctx context.Context) error {
	a.loadRoutes()

	server := &http.Server{
		Addr: config.Addr(),
		Handler: middleware.Wrap(
			a.router,
			middleware.Cors(),
			middleware.Logging(a.logger),
		),
	}

	a.logger.Info("server listening", slog.String("addr", server.Addr))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		return server.Shutdown(context.Background())
	})
	return g.Wait()
}
