package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
	fixturemock "github.com/riskibarqy/weekend-fixtures/internal/mocks/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestFixtureService_LoadMonth_SkipsMalformedUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fixtureRepo := fixturemock.NewRepository(t)
	service := NewFixtureService(fixtureRepo, fixedCalendar(time.Date(2026, 2, 10, 12, 0, 0, 0, cet)), logging.NewNop())

	items := demoFixtures()
	items = append(items, fixture.Fixture{Level: "R1", HomeTeam: "No Date", Venue: fixture.Venue{Lat: 49, Lon: 3}})
	items = append(items, fixture.Fixture{Level: "R1", StartsAt: time.Date(2026, 2, 14, 15, 0, 0, 0, cet)})

	fixtureRepo.
		On("ListByMonth", mock.MatchedBy(func(v context.Context) bool { return v != nil }), february2026).
		Return(items, nil).
		Once()

	got, err := service.LoadMonth(ctx, february2026)
	if err != nil {
		t.Fatalf("load month: %v", err)
	}
	if len(got.Fixtures) != 3 {
		t.Fatalf("unexpected fixture count: got=%d want=3", len(got.Fixtures))
	}
	if got.Skipped != 2 {
		t.Fatalf("unexpected skipped count: got=%d want=2", got.Skipped)
	}
	if got.Fixtures[1].Level != "R2" {
		t.Fatalf("expected normalized level R2, got %q", got.Fixtures[1].Level)
	}
	if len(got.Notices) != 1 || got.Notices[0].Kind != NoticeMalformedFixtures {
		t.Fatalf("expected malformed notice, got %+v", got.Notices)
	}
}

func TestFixtureService_LoadMonth_MissingMonthIsEmptyUsingMockery(t *testing.T) {
	t.Parallel()

	fixtureRepo := fixturemock.NewRepository(t)
	service := NewFixtureService(fixtureRepo, fixedCalendar(time.Date(2026, 2, 10, 12, 0, 0, 0, cet)), logging.NewNop())
	month := weekend.Month{Year: 2026, Month: time.March}

	fixtureRepo.
		On("ListByMonth", mock.Anything, month).
		Return(nil, fixture.ErrMonthNotFound).
		Once()

	got, err := service.LoadMonth(context.Background(), month)
	if err != nil {
		t.Fatalf("missing month must not fail: %v", err)
	}
	if got.Fixtures == nil || len(got.Fixtures) != 0 {
		t.Fatalf("expected empty non-nil fixtures, got %#v", got.Fixtures)
	}
	if len(got.Notices) != 1 || got.Notices[0].Kind != NoticeDataUnavailable {
		t.Fatalf("expected data unavailable notice, got %+v", got.Notices)
	}
}

func TestFixtureService_LoadMonth_TransportErrorIsRecoveredUsingMockery(t *testing.T) {
	t.Parallel()

	fixtureRepo := fixturemock.NewRepository(t)
	service := NewFixtureService(fixtureRepo, fixedCalendar(time.Date(2026, 2, 10, 12, 0, 0, 0, cet)), logging.NewNop())

	fixtureRepo.
		On("ListByMonth", mock.Anything, february2026).
		Return(nil, errors.New("connection reset")).
		Once()

	got, err := service.LoadMonth(context.Background(), february2026)
	if err != nil {
		t.Fatalf("transport error must not fail: %v", err)
	}
	if len(got.Fixtures) != 0 || len(got.Notices) != 1 {
		t.Fatalf("unexpected collection: %+v", got)
	}
}

func TestFixtureService_LoadMonth_ReturnsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fixtureRepo := fixturemock.NewRepository(t)
	service := NewFixtureService(fixtureRepo, fixedCalendar(time.Date(2026, 2, 10, 12, 0, 0, 0, cet)), logging.NewNop())
	fixtureRepo.
		On("ListByMonth", mock.Anything, february2026).
		Return(nil, context.Canceled).
		Once()

	if _, err := service.LoadMonth(ctx, february2026); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFixtureService_Search_DefaultWeekendWithinRadiusUsingMockery(t *testing.T) {
	t.Parallel()

	fixtureRepo := fixturemock.NewRepository(t)
	service := NewFixtureService(fixtureRepo, fixedCalendar(time.Date(2026, 2, 10, 12, 0, 0, 0, cet)), logging.NewNop())

	fixtureRepo.
		On("ListByMonth", mock.Anything, february2026).
		Return(demoFixtures(), nil).
		Once()

	got, err := service.Search(context.Background(), SearchInput{
		Level:     "all",
		RadiusKm:  25,
		Reference: saintQuentin,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got.Window.ID() != "2026-02-14" {
		t.Fatalf("unexpected default weekend: %s", got.Window.ID())
	}
	if len(got.Items) != 1 || got.Items[0].HomeTeam != "Chauny FC" {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
	if got.Items[0].DistanceMeters != 0 {
		t.Fatalf("expected zero distance, got %f", got.Items[0].DistanceMeters)
	}
	if len(got.Levels) != 3 {
		t.Fatalf("unexpected levels: %v", got.Levels)
	}
}

func TestFixtureService_Search_StraddlingWeekendLoadsBothMonthsUsingMockery(t *testing.T) {
	t.Parallel()

	fixtureRepo := fixturemock.NewRepository(t)
	service := NewFixtureService(fixtureRepo, fixedCalendar(time.Date(2026, 1, 20, 12, 0, 0, 0, cet)), logging.NewNop())
	january := weekend.Month{Year: 2026, Month: time.January}

	saturday := demoFixtures()[0]
	saturday.StartsAt = time.Date(2026, 1, 31, 18, 0, 0, 0, cet)
	sunday := demoFixtures()[0]
	sunday.HomeTeam = "Sunday FC"
	sunday.StartsAt = time.Date(2026, 2, 1, 15, 0, 0, 0, cet)

	fixtureRepo.On("ListByMonth", mock.Anything, january).Return([]fixture.Fixture{saturday}, nil).Once()
	fixtureRepo.On("ListByMonth", mock.Anything, february2026).Return([]fixture.Fixture{sunday}, nil).Once()

	got, err := service.Search(context.Background(), SearchInput{
		WeekendID: "2026-01-31",
		RadiusKm:  10,
		Reference: saintQuentin,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected both days, got %+v", got.Items)
	}
	if got.Items[0].HomeTeam != "Chauny FC" || got.Items[1].HomeTeam != "Sunday FC" {
		t.Fatalf("unexpected order: %s, %s", got.Items[0].HomeTeam, got.Items[1].HomeTeam)
	}
}

func TestFixtureService_Search_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	service := NewFixtureService(fixturemock.NewRepository(t), fixedCalendar(time.Date(2026, 2, 10, 12, 0, 0, 0, cet)), logging.NewNop())

	cases := []SearchInput{
		{RadiusKm: -1, Reference: saintQuentin},
		{RadiusKm: 25, Reference: geo.Point{Lat: 95, Lon: 3}},
		{RadiusKm: 25, Reference: saintQuentin, WeekendID: "2026-02-15"},
	}
	for _, tc := range cases {
		if _, err := service.Search(context.Background(), tc); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", tc, err)
		}
	}
}
