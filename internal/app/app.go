// Package app wires configuration, storage, the source client and the
// services into runnable units for the cmd binaries.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/MironKaigorodcev/ETLfootball/external/fbref"
	"github.com/MironKaigorodcev/ETLfootball/internal/config"
	"github.com/MironKaigorodcev/ETLfootball/internal/infrastructure/repository/postgres"
	"github.com/MironKaigorodcev/ETLfootball/internal/interfaces/httpapi"
	"github.com/MironKaigorodcev/ETLfootball/internal/platform/logging"
	"github.com/MironKaigorodcev/ETLfootball/internal/usecase"
)

// NewHTTPServer builds the read-only query API over the configured
// database. The returned cleanup closes the connection pool.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	db, err := postgres.Open(ctx, cfg.DBURL)
	if err != nil {
		return nil, nil, err
	}

	provider := postgres.NewStoreProvider(db)
	stats := usecase.NewStatsService(provider, cfg.Season, cfg.Competition)
	router := httpapi.NewRouter(httpapi.NewHandler(stats, logger), logger)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return srv, db.Close, nil
}

// NewScrapeService builds the full scrape pipeline and makes sure the
// schema exists, the way a first run against a fresh database expects.
func NewScrapeService(ctx context.Context, cfg config.Config, logger *logging.Logger) (*usecase.ScrapeService, func() error, error) {
	db, err := postgres.Open(ctx, cfg.DBURL)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	client := fbref.NewClient(fbref.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.RequestTimeout},
		BaseURL:        cfg.SourceBaseURL,
		MinDelay:       cfg.MinRequestDelay,
		MaxDelay:       cfg.MaxRequestDelay,
		LongPauseEvery: cfg.LongPauseInterval,
		LongPauseMin:   cfg.LongPauseMin,
		LongPauseMax:   cfg.LongPauseMax,
		RotateUAEvery:  cfg.UserAgentRotate,
		MaxRetries:     cfg.MaxRetries,
		RetryBaseDelay: cfg.RetryBaseDelay,
		Timeout:        cfg.RequestTimeout,
		Logger:         logger,
	})

	scrapeCfg := usecase.ScrapeConfig{
		LeagueURL:   cfg.LeagueURL,
		Season:      cfg.Season,
		Competition: cfg.Competition,
	}
	if cfg.Debug {
		scrapeCfg.TeamLimit = cfg.DebugTeamLimit
	}

	svc := usecase.NewScrapeService(client, postgres.NewStoreProvider(db), scrapeCfg, logger)
	return svc, db.Close, nil
}

// ShutdownTimeout bounds graceful HTTP shutdown.
const ShutdownTimeout = 10 * time.Second
