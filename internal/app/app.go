// Package app wires configuration into the crawler's collaborators.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-crawler/external/riot"
	"github.com/riskibarqy/match-crawler/internal/config"
	"github.com/riskibarqy/match-crawler/internal/domain/match"
	"github.com/riskibarqy/match-crawler/internal/domain/player"
	"github.com/riskibarqy/match-crawler/internal/domain/timeline"
	"github.com/riskibarqy/match-crawler/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/match-crawler/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-crawler/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/match-crawler/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/match-crawler/internal/platform/id"
	"github.com/riskibarqy/match-crawler/internal/platform/logging"
	"github.com/riskibarqy/match-crawler/internal/platform/metrics"
	"github.com/riskibarqy/match-crawler/internal/platform/resilience"
	"github.com/riskibarqy/match-crawler/internal/usecase"
)

// App holds the long-lived collaborators shared by every crawl.
type App struct {
	Config     config.Config
	Logger     *logging.Logger
	Metrics    *metrics.Metrics
	Riot       *riot.Client
	Players    player.Repository
	Crawler    *usecase.CrawlService
	Dispatcher *usecase.Dispatcher

	db *sqlx.DB
}

type repositories struct {
	players   player.Repository
	matches   match.Repository
	timelines timeline.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(nil)
	}

	riotClient := riot.NewClient(riot.ClientConfig{
		BaseURL:            cfg.RiotBaseURL,
		Token:              cfg.RiotAPIToken,
		Timeout:            cfg.RiotTimeout,
		InsecureSkipVerify: cfg.RiotTLSInsecureSkipVerify,
		Retry: riot.RetryPolicy{
			MaxAttempts: cfg.RiotRateLimitMaxAttempts,
			MaxElapsed:  cfg.RiotRateLimitMaxElapsed,
			Delay:       cfg.RiotRateLimitDelay,
		},
		Logger:  logger.Named("riot"),
		Metrics: m,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.RiotCircuitEnabled,
			FailureThreshold: cfg.RiotCircuitFailureCount,
			OpenTimeout:      cfg.RiotCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.RiotCircuitHalfOpenMaxReq,
		},
	})

	repos, db, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	players := repos.players
	if cfg.PlayerCacheTTL > 0 {
		players = cache.NewPlayerRepository(players, cfg.PlayerCacheTTL)
	}

	ids := idgen.NewUUIDGenerator()
	crawler := usecase.NewCrawlService(
		riotClient,
		players,
		repos.matches,
		repos.timelines,
		ids,
		usecase.CrawlConfig{
			PageSize:            cfg.CrawlPageSize,
			HarvestParticipants: cfg.CrawlHarvestParticipants,
			SkipGameModes:       cfg.CrawlSkipGameModes,
		},
		m,
		logger.Named("crawl"),
	)

	dispatcher, err := usecase.NewDispatcher(crawler, ids, usecase.DispatcherConfig{
		Workers:          cfg.CrawlWorkers,
		BatchConcurrency: cfg.CrawlBatchConcurrency,
	}, logger.Named("dispatcher"))
	if err != nil {
		closeDB(db, logger)
		return nil, fmt.Errorf("create crawl dispatcher: %w", err)
	}

	return &App{
		Config:     cfg,
		Logger:     logger,
		Metrics:    m,
		Riot:       riotClient,
		Players:    players,
		Crawler:    crawler,
		Dispatcher: dispatcher,
		db:         db,
	}, nil
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("using in-memory storage, crawled data is lost on exit")
		matches := memory.NewMatchRepository()
		return repositories{
			players:   memory.NewPlayerRepository(nil),
			matches:   matches,
			timelines: memory.NewTimelineRepository(matches),
		}, nil, nil
	}

	db, err := OpenDB(ctx, cfg)
	if err != nil {
		return repositories{}, nil, err
	}
	logger.Info("database connected", "driver", cfg.DBDriver, "db_name", dbNameFromURL(cfg.DBURL))
	return repositories{
		players:   postgres.NewPlayerRepository(db),
		matches:   postgres.NewMatchRepository(db),
		timelines: postgres.NewTimelineRepository(db),
	}, db, nil
}

// HTTPServer builds the trigger API server. It does not start listening.
func (a *App) HTTPServer() (*http.Server, error) {
	if a.Config.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(a.Dispatcher, a.Players, httpapi.ServiceInfo{
		Name:    a.Config.ServiceName,
		Version: a.Config.ServiceVersion,
	}, a.Logger.Named("http"))

	var metricsHandler http.Handler
	if a.Metrics != nil {
		metricsHandler = a.Metrics.Handler()
	}

	router := httpapi.NewRouter(handler, a.Logger, httpapi.RouterConfig{
		CORSAllowedOrigins: a.Config.CORSAllowedOrigins,
		TriggerToken:       a.Config.CrawlTriggerToken,
		Metrics:            metricsHandler,
	})

	return &http.Server{
		Addr:         a.Config.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.Config.ReadTimeout,
		WriteTimeout: a.Config.WriteTimeout,
	}, nil
}

// Close drains running crawls until ctx is done, then releases the database.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Dispatcher.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close crawl dispatcher: %w", err))
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close database failed", "error", err)
	}
}
