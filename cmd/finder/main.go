package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/riskibarqy/weekend-fixtures/external/ipgeo"
	"github.com/riskibarqy/weekend-fixtures/internal/app"
	"github.com/riskibarqy/weekend-fixtures/internal/config"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
	"github.com/riskibarqy/weekend-fixtures/internal/interfaces/terminal"
	"github.com/riskibarqy/weekend-fixtures/internal/platform/logging"
	"github.com/riskibarqy/weekend-fixtures/internal/usecase"
)

func main() {
	monthFlag := flag.String("month", "", "initial month (YYYY-MM), current month when empty")
	levelFlag := flag.String("level", "ALL", "initial level filter")
	radiusFlag := flag.Float64("radius", -1, "initial radius in km, DEFAULT_RADIUS_KM when negative")
	noLocate := flag.Bool("no-locate", false, "skip IP geolocation")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Logs go to stderr at warn or above; stdout belongs to the finder.
	level := cfg.LogLevel
	if level < logging.LevelWarn && level != logging.LevelDebug {
		level = logging.LevelWarn
	}
	logger := logging.NewJSONTo(os.Stderr, level)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *monthFlag, *levelFlag, *radiusFlag, *noLocate); err != nil && ctx.Err() == nil {
		logger.Error("finder failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger, month, level string, radius float64, noLocate bool) error {
	repo, closeRepo, err := app.NewFixtureRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeRepo() }()

	calendar := usecase.NewCalendarService(cfg.Location)
	service := usecase.NewFixtureService(repo, calendar, logger)
	renderer := terminal.NewRenderer(os.Stdout, cfg.Location)
	session := usecase.NewSession(service, renderer, usecase.SessionConfig{
		DefaultReference:   cfg.DefaultReference,
		DefaultRadiusKm:    cfg.DefaultRadiusKm,
		GeolocationTimeout: cfg.GeolocationTimeout,
	}, logger)

	var locator geo.Locator
	if !noLocate {
		locator = ipgeo.NewClient(ipgeo.ClientConfig{URL: cfg.GeolocationURL, Timeout: cfg.GeolocationHTTPTimeout, Logger: logger})
	}
	if _, err := session.Boot(ctx, locator); err != nil {
		return err
	}

	if month != "" {
		m, err := weekend.ParseMonth(month)
		if err != nil {
			return err
		}
		if err := session.SelectMonth(ctx, m); err != nil {
			return err
		}
	}
	if level != "" && level != "ALL" {
		session.SetLevel(ctx, level)
	}
	if radius >= 0 {
		if err := session.SetRadiusKm(ctx, radius); err != nil {
			return err
		}
	}

	loop := terminal.NewLoop(session, calendar, renderer, logger)
	renderer.Printf("tapez help pour la liste des commandes\n")
	return loop.Run(ctx, os.Stdin)
}
