package fixture

import (
	"math"
	"testing"
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cet          = time.FixedZone("CET", 3600)
	saintQuentin = geo.Point{Lat: 49.8489, Lon: 3.2876}
)

func demoFixtures() []Fixture {
	return []Fixture{
		{
			Sport:       "football",
			Level:       "R1",
			StartsAt:    time.Date(2026, 2, 14, 18, 0, 0, 0, cet),
			Competition: "R1 Seniors HDF",
			HomeTeam:    "Chauny FC",
			AwayTeam:    "Saint-Quentin SC",
			Venue:       Venue{Name: "Stade Demo Saint-Quentin", City: "Saint-Quentin", Lat: 49.8489, Lon: 3.2876},
			SourceURL:   "https://example.com",
		},
		{
			Sport:       "football",
			Level:       "R2",
			StartsAt:    time.Date(2026, 2, 15, 15, 0, 0, 0, cet),
			Competition: "R2 Seniors HDF",
			HomeTeam:    "FC Demo Chauny",
			AwayTeam:    "SC Demo Amiens",
			Venue:       Venue{Name: "Stade Demo Chauny", City: "Chauny", Lat: 49.6137, Lon: 3.2180},
		},
		{
			Sport:       "football",
			Level:       "R3",
			StartsAt:    time.Date(2026, 2, 15, 15, 0, 0, 0, cet),
			Competition: "R3 Seniors HDF",
			HomeTeam:    "ES Demo Amiens",
			AwayTeam:    "CS Demo Lille",
			Venue:       Venue{Name: "Stade Demo Amiens", City: "Amiens", Lat: 49.8941, Lon: 2.2957},
		},
	}
}

func demoWindow(t *testing.T) weekend.Window {
	t.Helper()
	w, err := weekend.ParseID("2026-02-14", cet)
	require.NoError(t, err)
	return w
}

func TestSelect_KeepsInRangeFixtureAndDropsDistantOne(t *testing.T) {
	t.Parallel()

	inRange := demoFixtures()[0]
	farAway := inRange
	farAway.HomeTeam = "Lille B"
	farAway.Venue = Venue{Name: "Stade Lille", City: "Lille", Lat: 50.6292, Lon: 3.0573}

	got := Select([]Fixture{farAway, inRange}, Criteria{
		Level:        "R1",
		Window:       demoWindow(t),
		Reference:    saintQuentin,
		RadiusMeters: 25 * 1000,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Chauny FC", got[0].HomeTeam)
	assert.Equal(t, 0.0, got[0].DistanceMeters)
}

func TestSelect_AllEqualsUnionOfLevels(t *testing.T) {
	t.Parallel()

	fixtures := demoFixtures()
	base := Criteria{Window: demoWindow(t), Reference: saintQuentin, RadiusMeters: 200 * 1000}

	all := base
	all.Level = LevelAll
	total := len(Select(fixtures, all))

	union := 0
	for _, level := range Levels(fixtures) {
		c := base
		c.Level = level
		union += len(Select(fixtures, c))
	}

	assert.Equal(t, 3, total)
	assert.Equal(t, total, union)
}

func TestSelect_StableSortByKickoff(t *testing.T) {
	t.Parallel()

	fixtures := demoFixtures()
	// Put the later, tied fixtures first: R2 and R3 kick off at the same time.
	input := []Fixture{fixtures[2], fixtures[1], fixtures[0]}

	got := Select(input, Criteria{Level: LevelAll, Window: demoWindow(t), Reference: saintQuentin, RadiusMeters: math.MaxFloat64})
	require.Len(t, got, 3)

	assert.Equal(t, "R1", got[0].Level)
	assert.Equal(t, "R3", got[1].Level, "tie must keep input order")
	assert.Equal(t, "R2", got[2].Level, "tie must keep input order")
	for i := 1; i < len(got); i++ {
		if got[i].StartsAt.Before(got[i-1].StartsAt) {
			t.Fatalf("result not sorted at index %d", i)
		}
	}
}

func TestSelect_ZeroRadiusKeepsFixtureAtReference(t *testing.T) {
	t.Parallel()

	got := Select(demoFixtures(), Criteria{Level: LevelAll, Window: demoWindow(t), Reference: saintQuentin, RadiusMeters: 0})
	require.Len(t, got, 1)
	assert.Equal(t, "Stade Demo Saint-Quentin", got[0].Venue.Name)
}

func TestSelect_WindowBoundsAreInclusive(t *testing.T) {
	t.Parallel()

	w := demoWindow(t)
	at := func(ts time.Time) Fixture {
		f := demoFixtures()[0]
		f.StartsAt = ts
		return f
	}

	input := []Fixture{
		at(w.Start.Add(-time.Millisecond)),
		at(w.Start),
		at(w.End),
		at(w.End.Add(time.Millisecond)),
		at(w.Start.In(time.UTC)),
	}
	got := Select(input, Criteria{Level: LevelAll, Window: w, Reference: saintQuentin, RadiusMeters: 1})

	require.Len(t, got, 3)
	for _, item := range got {
		if !w.Contains(item.StartsAt) {
			t.Fatalf("fixture at %s outside window %s..%s", item.StartsAt, w.Start, w.End)
		}
	}
}

func TestSelect_EmptyInput(t *testing.T) {
	t.Parallel()

	got := Select(nil, Criteria{Level: LevelAll, Window: demoWindow(t), Reference: saintQuentin, RadiusMeters: 1000})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := demoFixtures()
	input[0], input[2] = input[2], input[0]
	snapshot := append([]Fixture(nil), input...)

	_ = Select(input, Criteria{Level: LevelAll, Window: demoWindow(t), Reference: saintQuentin, RadiusMeters: math.MaxFloat64})
	assert.Equal(t, snapshot, input)
}

func TestSelect_DuplicatesAreKept(t *testing.T) {
	t.Parallel()

	f := demoFixtures()[0]
	got := Select([]Fixture{f, f}, Criteria{Level: "R1", Window: demoWindow(t), Reference: saintQuentin, RadiusMeters: 10})
	assert.Len(t, got, 2)
}

func TestLevels(t *testing.T) {
	t.Parallel()

	fixtures := append(demoFixtures(), demoFixtures()[0])
	assert.Equal(t, []string{"R1", "R2", "R3"}, Levels(fixtures))
}
