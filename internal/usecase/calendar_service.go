package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
)

type MonthOption struct {
	Month   weekend.Month
	Label   string
	Current bool
}

type WeekendOption struct {
	Window  weekend.Window
	Label   string
	Default bool
}

// CalendarService builds month and weekend selector data in the display location.
type CalendarService struct {
	loc *time.Location
	now func() time.Time
}

func NewCalendarService(loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarService{loc: loc, now: time.Now}
}

// WithClock replaces the wall clock, for tests and replays.
func (s *CalendarService) WithClock(now func() time.Time) *CalendarService {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *CalendarService) Location() *time.Location {
	return s.loc
}

func (s *CalendarService) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *CalendarService) CurrentMonth() weekend.Month {
	return weekend.MonthOf(s.Now())
}

func (s *CalendarService) ListMonths(ctx context.Context) []MonthOption {
	_, span := startUsecaseSpan(ctx, "usecase.CalendarService.ListMonths")
	defer span.End()

	current := s.CurrentMonth()
	months := weekend.UpcomingMonths(s.Now(), weekend.DefaultUpcomingMonths)
	out := make([]MonthOption, 0, len(months))
	for _, m := range months {
		out = append(out, MonthOption{Month: m, Label: m.Label(), Current: m == current})
	}
	return out
}

func (s *CalendarService) ListWeekends(ctx context.Context, month weekend.Month) []WeekendOption {
	_, span := startUsecaseSpan(ctx, "usecase.CalendarService.ListWeekends")
	defer span.End()

	def := s.DefaultWeekend(month)
	windows := weekend.ListMonthWeekends(month, s.loc)
	out := make([]WeekendOption, 0, len(windows))
	for _, w := range windows {
		out = append(out, WeekendOption{Window: w, Label: w.Label(), Default: w.ID() == def.ID()})
	}
	return out
}

func (s *CalendarService) DefaultWeekend(month weekend.Month) weekend.Window {
	return weekend.DefaultMonthWeekend(month, s.Now(), s.loc)
}

func (s *CalendarService) ParseWeekend(id string) (weekend.Window, error) {
	return weekend.ParseID(id, s.loc)
}
