package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/riskibarqy/weekend-fixtures/internal/app"
	"github.com/riskibarqy/weekend-fixtures/internal/config"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
	"github.com/riskibarqy/weekend-fixtures/internal/infrastructure/fixturedoc"
	"github.com/riskibarqy/weekend-fixtures/internal/infrastructure/repository/file"
	"github.com/riskibarqy/weekend-fixtures/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/weekend-fixtures/internal/platform/logging"
)

var logger = logging.NewJSON(logging.LevelInfo)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "split":
		err = runSplit(os.Args[2:])
	case "touch":
		err = runTouch(os.Args[2:])
	case "import":
		err = runImport(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("fixturedata failed", "command", os.Args[1], "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func runSplit(args []string) error {
	fs := flag.NewFlagSet("split", flag.ExitOnError)
	in := fs.String("in", "matches_raw.json", "raw export with every fixture")
	out := fs.String("out", "data", "directory receiving YYYY-MM.json files")
	workers := fs.Int("workers", 4, "concurrent month writers")
	_ = fs.Parse(args)

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read %s: %w", *in, err)
	}

	result, err := fixturedoc.Split(data, *out, time.Now(), *workers)
	if err != nil {
		return err
	}

	months := make([]string, 0, len(result.Months))
	for _, m := range result.Months {
		months = append(months, m.String())
	}
	logger.Info("export split",
		"items", result.Items,
		"months", months,
		"skipped", result.Skipped,
		"out", *out,
	)
	return nil
}

func runTouch(args []string) error {
	fs := flag.NewFlagSet("touch", flag.ExitOnError)
	path := fs.String("file", "matches.json", "document whose updated_at is refreshed")
	_ = fs.Parse(args)

	if err := fixturedoc.Touch(*path, time.Now()); err != nil {
		return err
	}
	logger.Info("document touched", "file", *path)
	return nil
}

// runImport loads month files into Postgres, replacing each month's rows.
func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dir := fs.String("dir", "data", "directory of YYYY-MM.json files")
	monthFlag := fs.String("month", "", "single month to import (YYYY-MM); all files when empty")
	_ = fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	months, err := importMonths(*dir, *monthFlag)
	if err != nil {
		return err
	}

	db, err := app.OpenDB(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
	if err != nil {
		return err
	}
	defer db.Close()

	source := file.NewFixtureRepository(*dir)
	target := postgres.NewFixtureRepository(db, cfg.Location)
	for _, month := range months {
		items, err := source.ListByMonth(ctx, month)
		if err != nil {
			return fmt.Errorf("read month %s: %w", month, err)
		}
		valid := items[:0]
		for _, item := range items {
			if err := item.Validate(); err != nil {
				logger.Warn("skip malformed fixture", "month", month.String(), "home_team", item.HomeTeam, "error", err)
				continue
			}
			valid = append(valid, item)
		}
		n, err := target.ReplaceMonth(ctx, month, valid)
		if err != nil {
			return fmt.Errorf("import month %s: %w", month, err)
		}
		logger.Info("month imported", "month", month.String(), "rows", n, "skipped", len(items)-len(valid))
	}
	return nil
}

func importMonths(dir, single string) ([]weekend.Month, error) {
	if single != "" {
		month, err := weekend.ParseMonth(single)
		if err != nil {
			return nil, err
		}
		return []weekend.Month{month}, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "????-??.json"))
	if err != nil {
		return nil, err
	}
	out := make([]weekend.Month, 0, len(matches))
	for _, path := range matches {
		name := filepath.Base(path)
		month, err := weekend.ParseMonth(name[:len(name)-len(".json")])
		if err != nil {
			logger.Warn("ignore file", "path", path, "error", err)
			continue
		}
		out = append(out, month)
	}
	return out, nil
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <split|touch|import> [flags]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s split -in matches_raw.json -out data\n", name)
	fmt.Fprintf(os.Stderr, "  %s touch -file matches.json\n", name)
	fmt.Fprintf(os.Stderr, "  %s import -dir data -month 2026-02\n", name)
}
