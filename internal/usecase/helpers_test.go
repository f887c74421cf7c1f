package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
)

var (
	cet          = time.FixedZone("CET", 3600)
	saintQuentin = geo.Point{Lat: 49.8489, Lon: 3.2876}
	chauny       = geo.Point{Lat: 49.6137, Lon: 3.2180}
	february2026 = weekend.Month{Year: 2026, Month: time.February}
)

func demoFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{
			Sport:       "football",
			Level:       "R1",
			StartsAt:    time.Date(2026, 2, 14, 18, 0, 0, 0, cet),
			Competition: "R1 Seniors HDF",
			HomeTeam:    "Chauny FC",
			AwayTeam:    "Saint-Quentin SC",
			Venue:       fixture.Venue{Name: "Stade Demo Saint-Quentin", City: "Saint-Quentin", Lat: 49.8489, Lon: 3.2876},
		},
		{
			Sport:       "football",
			Level:       "r2",
			StartsAt:    time.Date(2026, 2, 15, 15, 0, 0, 0, cet),
			Competition: "R2 Seniors HDF",
			HomeTeam:    "FC Demo Chauny",
			AwayTeam:    "SC Demo Amiens",
			Venue:       fixture.Venue{Name: "Stade Demo Chauny", City: "Chauny", Lat: 49.6137, Lon: 3.2180},
		},
		{
			Sport:       "football",
			Level:       "R3",
			StartsAt:    time.Date(2026, 2, 15, 15, 0, 0, 0, cet),
			Competition: "R3 Seniors HDF",
			HomeTeam:    "ES Demo Amiens",
			AwayTeam:    "CS Demo Lille",
			Venue:       fixture.Venue{Name: "Stade Demo Amiens", City: "Amiens", Lat: 49.8941, Lon: 2.2957},
		},
	}
}

func fixedCalendar(now time.Time) *CalendarService {
	calendar := NewCalendarService(cet)
	calendar.now = func() time.Time { return now }
	return calendar
}

type recordingRenderer struct {
	mu      sync.Mutex
	frames  []Frame
	notices []Notice
	events  []string
}

func (r *recordingRenderer) Render(_ context.Context, frame Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
	if frame.Located {
		r.events = append(r.events, "render:located")
	} else {
		r.events = append(r.events, "render:default")
	}
}

func (r *recordingRenderer) Notify(_ context.Context, notice Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
	r.events = append(r.events, "notice:"+string(notice.Kind))
}

func (r *recordingRenderer) eventLog() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type locatorFunc func(ctx context.Context) (geo.Point, error)

func (f locatorFunc) Locate(ctx context.Context) (geo.Point, error) {
	return f(ctx)
}

func (r *recordingRenderer) snapshot() ([]Frame, []Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...), append([]Notice(nil), r.notices...)
}
