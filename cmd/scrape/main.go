package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MironKaigorodcev/ETLfootball/internal/app"
	"github.com/MironKaigorodcev/ETLfootball/internal/config"
	"github.com/MironKaigorodcev/ETLfootball/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "version", cfg.ServiceVersion)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := app.NewScrapeService(ctx, cfg, logger)
	if err != nil {
		logger.Error("build scrape pipeline", "error", err)
		os.Exit(1)
	}
	defer func() { _ = cleanup() }()

	sum, err := svc.Run(ctx)
	if err != nil {
		logger.Error("scrape run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("scrape run complete",
		"teams_discovered", sum.TeamsDiscovered,
		"teams_stored", sum.TeamsStored,
		"teams_skipped", sum.TeamsSkipped,
		"teams_failed", sum.TeamsFailed,
		"players_created", sum.PlayersCreated,
		"matches_created", sum.MatchesCreated,
		"squad_stats_created", sum.SquadStatsCreated,
		"player_stats_created", sum.PlayerStatsCreated)
}
