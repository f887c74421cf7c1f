package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
	"github.com/riskibarqy/weekend-fixtures/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

// MonthCollection is the validated fixture set of one or more months.
// Skipped counts records rejected by fixture validation.
type MonthCollection struct {
	Months   []weekend.Month
	Fixtures []fixture.Fixture
	Skipped  int
	Notices  []Notice
}

type SearchInput struct {
	Month     weekend.Month
	WeekendID string
	Level     string
	RadiusKm  float64
	Reference geo.Point
}

type SearchResult struct {
	Month     weekend.Month
	Window    weekend.Window
	Level     string
	RadiusKm  float64
	Reference geo.Point
	Items     []fixture.Filtered
	Levels    []string
	Skipped   int
	Notices   []Notice
}

type FixtureService struct {
	fixtureRepo fixture.Repository
	calendar    *CalendarService
	logger      *logging.Logger
}

func NewFixtureService(fixtureRepo fixture.Repository, calendar *CalendarService, logger *logging.Logger) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureService{
		fixtureRepo: fixtureRepo,
		calendar:    calendar,
		logger:      logger,
	}
}

func (s *FixtureService) Calendar() *CalendarService {
	return s.calendar
}

// LoadMonth never fails on data problems: a missing or unreadable month
// yields an empty collection with a notice. Only cancellation is returned.
func (s *FixtureService) LoadMonth(ctx context.Context, month weekend.Month) (MonthCollection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.LoadMonth")
	defer span.End()

	out := MonthCollection{Months: []weekend.Month{month}, Fixtures: []fixture.Fixture{}}
	if month.IsZero() {
		return out, fmt.Errorf("%w: month is required", ErrInvalidInput)
	}

	items, err := s.fixtureRepo.ListByMonth(ctx, month)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, ctxErr
		}
		if errors.Is(err, fixture.ErrMonthNotFound) {
			s.logger.InfoContext(ctx, "no fixture data for month", "month", month.String())
		} else {
			s.logger.WarnContext(ctx, "load fixtures failed", "month", month.String(), "error", err)
		}
		out.Notices = append(out.Notices, dataUnavailableNotice(month))
		return out, nil
	}

	for i, item := range items {
		if err := item.Validate(); err != nil {
			out.Skipped++
			s.logger.WarnContext(ctx, "skip malformed fixture",
				"month", month.String(),
				"index", i,
				"home_team", item.HomeTeam,
				"away_team", item.AwayTeam,
				"error", err,
			)
			continue
		}
		item.Level = fixture.NormalizeLevel(item.Level)
		out.Fixtures = append(out.Fixtures, item)
	}
	if out.Skipped > 0 {
		out.Notices = append(out.Notices, malformedFixturesNotice(month, out.Skipped))
	}

	return out, nil
}

// LoadWindow loads every month a weekend touches. A weekend straddling a
// month boundary needs both files.
func (s *FixtureService) LoadWindow(ctx context.Context, window weekend.Window) (MonthCollection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.LoadWindow")
	defer span.End()

	months := window.Months()
	results := make([]MonthCollection, len(months))
	errs := make([]error, len(months))

	var wg conc.WaitGroup
	for i, month := range months {
		wg.Go(func() {
			results[i], errs[i] = s.LoadMonth(ctx, month)
		})
	}
	wg.Wait()

	out := MonthCollection{Months: months, Fixtures: []fixture.Fixture{}}
	for i := range results {
		if errs[i] != nil {
			return out, errs[i]
		}
		out.Fixtures = append(out.Fixtures, results[i].Fixtures...)
		out.Skipped += results[i].Skipped
		out.Notices = append(out.Notices, results[i].Notices...)
	}
	return out, nil
}

// Search resolves defaults, loads the weekend's data, and applies the selection.
func (s *FixtureService) Search(ctx context.Context, input SearchInput) (SearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Search")
	defer span.End()

	if math.IsNaN(input.RadiusKm) || math.IsInf(input.RadiusKm, 0) || input.RadiusKm < 0 {
		return SearchResult{}, fmt.Errorf("%w: radius must be >= 0", ErrInvalidInput)
	}
	if !input.Reference.Valid() {
		return SearchResult{}, fmt.Errorf("%w: reference position out of range", ErrInvalidInput)
	}

	month := input.Month
	if month.IsZero() {
		month = s.calendar.CurrentMonth()
	}

	var window weekend.Window
	if input.WeekendID != "" {
		w, err := s.calendar.ParseWeekend(input.WeekendID)
		if err != nil {
			return SearchResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		window = w
	} else {
		window = s.calendar.DefaultWeekend(month)
	}

	collection, err := s.LoadWindow(ctx, window)
	if err != nil {
		return SearchResult{}, fmt.Errorf("load window %s: %w", window.ID(), err)
	}

	level := fixture.NormalizeLevel(input.Level)
	items := fixture.Select(collection.Fixtures, fixture.Criteria{
		Level:        level,
		Window:       window,
		Reference:    input.Reference,
		RadiusMeters: input.RadiusKm * 1000,
	})

	return SearchResult{
		Month:     month,
		Window:    window,
		Level:     level,
		RadiusKm:  input.RadiusKm,
		Reference: input.Reference,
		Items:     items,
		Levels:    fixture.Levels(collection.Fixtures),
		Skipped:   collection.Skipped,
		Notices:   collection.Notices,
	}, nil
}
