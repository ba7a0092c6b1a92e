package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-ai/internal/database"
	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/player"
	"github.com/vancomm/minesweeper-ai/internal/repository"
	"github.com/vancomm/minesweeper-ai/internal/runner"
	"github.com/vancomm/minesweeper-ai/internal/solver"
)

//go:embed migrations/*.sql
var migrations embed.FS

var (
	log = logrus.New()

	width       int
	height      int
	mineCount   int
	numGames    int
	parallelism int
	playerName  string
	profileName string
	dbUrl       string
	logFile     string
	showSummary bool
	verbose     bool
)

func init() {
	flag.IntVar(&width, "width", 8, "board width")
	flag.IntVar(&height, "height", 8, "board height")
	flag.IntVar(&mineCount, "mines", 10, "number of mines")
	flag.IntVar(&numGames, "games", 100, "number of games to play")
	flag.IntVar(&parallelism, "parallel", runtime.NumCPU(),
		"number of games played concurrently")
	flag.StringVar(&playerName, "player", "csp", "player to evaluate (csp|random)")
	flag.StringVar(&profileName, "profile", "", "profile name for stored results (defaults to player)")
	flag.StringVar(&dbUrl, "db-url", "", "store results in this Postgres database")
	flag.StringVar(&logFile, "log-file", "", "also log to this file (rotated)")
	flag.BoolVar(&showSummary, "summary", false,
		"print stored per-profile summaries from the database (use -games 0 to only print)")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
}

func setupLogging() {
	logLevel := logrus.InfoLevel
	if verbose {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	// the engine and solver log per-move detail; keep it out of the
	// console unless asked for
	for _, l := range []*logrus.Logger{game.Log, solver.Log} {
		l.SetLevel(logLevel)
		if !verbose {
			l.SetLevel(logrus.WarnLevel)
		}
	}

	if logFile == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to create log file hook: ", err)
	}
	log.AddHook(hook)
}

func newPlayerFactory() (runner.Factory, error) {
	switch playerName {
	case "csp":
		return func() player.Player { return solver.New(nil) }, nil
	case "random":
		return func() player.Player { return player.NewRandom(nil) }, nil
	default:
		return nil, fmt.Errorf("unknown player %q", playerName)
	}
}

func saveResults(
	ctx context.Context, cfg game.Config, results []game.GameResult,
) error {
	db, err := database.ConnectAndMigrate(ctx, dbUrl, migrations)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.New(db)
	name := profileName
	if name == "" {
		name = playerName
	}
	profile, err := repo.EnsureProfile(ctx, name)
	if err != nil {
		return err
	}
	return repo.SaveResults(ctx, profile.ProfileId, cfg, results)
}

func formatSummary(s repository.Summary) string {
	return fmt.Sprintf(
		"%s %dx%d/%d: %d games, %d wins (%.1f%%), %.1f mean moves",
		s.Name, s.Width, s.Height, s.MineCount,
		s.Games, s.Wins, s.WinRate*100, s.MeanMoves,
	)
}

func printSummaries(ctx context.Context) error {
	db, err := database.ConnectAndMigrate(ctx, dbUrl, migrations)
	if err != nil {
		return err
	}
	defer db.Close()

	summaries, err := repository.New(db).GetSummaries(ctx)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		log.Info("no stored results")
		return nil
	}
	for _, s := range summaries {
		log.Info(formatSummary(s))
	}
	return nil
}

func main() {
	flag.Parse()
	setupLogging()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if showSummary && dbUrl == "" {
		log.Fatal("-summary requires -db-url")
	}

	if numGames > 0 {
		cfg := game.Config{Width: width, Height: height, MineCount: mineCount}
		factory, err := newPlayerFactory()
		if err != nil {
			log.Fatal(err)
		}

		log.WithFields(logrus.Fields{
			"width": cfg.Width, "height": cfg.Height, "mines": cfg.MineCount,
			"games": numGames, "player": playerName, "parallel": parallelism,
		}).Info("starting batch")

		results, err := runner.RunGames(ctx, cfg, numGames, parallelism, factory)
		if err != nil {
			log.Fatal("batch failed: ", err)
		}

		summary := runner.Summarize(results)
		log.WithFields(logrus.Fields{
			"games":      summary.Games,
			"wins":       summary.Wins,
			"win_rate":   fmt.Sprintf("%.1f%%", summary.WinRate*100),
			"mean_moves": fmt.Sprintf("%.1f", summary.MeanMoves),
		}).Info("batch finished")

		if dbUrl != "" {
			if err := saveResults(ctx, cfg, results); err != nil {
				log.Fatal("unable to store results: ", err)
			}
			log.Info("results stored")
		}
	}

	if showSummary {
		if err := printSummaries(ctx); err != nil {
			log.Fatal("unable to fetch summaries: ", err)
		}
	}
}
