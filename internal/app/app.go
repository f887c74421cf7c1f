package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/weekend-fixtures/external/fixturefeed"
	"github.com/riskibarqy/weekend-fixtures/internal/config"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/weekend-fixtures/internal/infrastructure/repository/file"
	"github.com/riskibarqy/weekend-fixtures/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/weekend-fixtures/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/weekend-fixtures/internal/interfaces/httpapi"
	"github.com/riskibarqy/weekend-fixtures/internal/platform/logging"
	"github.com/riskibarqy/weekend-fixtures/internal/usecase"
)

// NewFixtureRepository builds the configured fixture source, wrapped in the
// month cache when enabled. The returned close func releases the DB pool, if any.
func NewFixtureRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (fixture.Repository, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	noop := func() error { return nil }

	var (
		repo    fixture.Repository
		closeFn = noop
	)
	switch cfg.FixtureSource {
	case config.SourceFile:
		repo = file.NewFixtureRepository(cfg.FixtureDataDir)
	case config.SourceRemote:
		client, err := fixturefeed.NewClient(fixturefeed.ClientConfig{
			BaseURL:        cfg.FixtureFeedBaseURL,
			Timeout:        cfg.FixtureFeedTimeout,
			MaxRetries:     cfg.FixtureFeedMaxRetries,
			Logger:         logger,
			CircuitBreaker: cfg.FixtureFeedCircuit,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("build fixture feed client: %w", err)
		}
		repo = client
	case config.SourcePostgres:
		db, err := OpenDB(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
		if err != nil {
			return nil, nil, err
		}
		repo = postgres.NewFixtureRepository(db, cfg.Location)
		closeFn = closeDB(db)
	case config.SourceMemory:
		repo = memory.NewFixtureRepository(memory.SeedFixtures())
	default:
		return nil, nil, fmt.Errorf("unknown fixture source %q", cfg.FixtureSource)
	}

	logger.Info("fixture source ready",
		"source", cfg.FixtureSource,
		"cache_enabled", cfg.CacheEnabled,
		"cache_ttl", cfg.CacheTTL.String(),
	)
	if cfg.CacheEnabled {
		cached := cache.NewFixtureRepository(repo, cfg.CacheTTL)
		repo = cached
		closeSource := closeFn
		closeFn = func() error {
			stats := cached.Stats()
			logger.Info("fixture cache stats", "hits", stats.Hits, "misses", stats.Misses, "months", stats.Size)
			return closeSource()
		}
	}

	return repo, closeFn, nil
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repo, closeFn, err := NewFixtureRepository(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	calendar := usecase.NewCalendarService(cfg.Location)
	fixtureSvc := usecase.NewFixtureService(repo, calendar, logger)

	handler := httpapi.NewHandler(fixtureSvc, httpapi.HeaderLocator{}, httpapi.Defaults{
		Reference: cfg.DefaultReference,
		RadiusKm:  cfg.DefaultRadiusKm,
	}, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, closeFn, nil
}

func closeDB(db *sqlx.DB) func() error {
	return func() error {
		return db.Close()
	}
}
