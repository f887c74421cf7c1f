package memory

import (
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
)

var demoZone = time.FixedZone("CET", 3600)

// SeedFixtures is the demo data set served by FIXTURE_SOURCE=memory.
func SeedFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{
			Sport:       "football",
			Level:       "R1",
			StartsAt:    time.Date(2026, 2, 14, 18, 0, 0, 0, demoZone),
			Competition: "R1 Seniors HDF",
			HomeTeam:    "Chauny FC",
			AwayTeam:    "Saint-Quentin SC",
			Venue:       fixture.Venue{Name: "Stade Demo Saint-Quentin", City: "Saint-Quentin", Lat: 49.8489, Lon: 3.2876},
			SourceURL:   "https://example.com",
		},
		{
			Sport:       "football",
			Level:       "R2",
			StartsAt:    time.Date(2026, 2, 15, 15, 0, 0, 0, demoZone),
			Competition: "R2 Seniors HDF",
			HomeTeam:    "FC Demo Chauny",
			AwayTeam:    "SC Demo Amiens",
			Venue:       fixture.Venue{Name: "Stade Demo Chauny", City: "Chauny", Lat: 49.6137, Lon: 3.2180},
		},
		{
			Sport:       "football",
			Level:       "R3",
			StartsAt:    time.Date(2026, 2, 15, 15, 0, 0, 0, demoZone),
			Competition: "R3 Seniors HDF",
			HomeTeam:    "ES Demo Amiens",
			AwayTeam:    "CS Demo Lille",
			Venue:       fixture.Venue{Name: "Stade Demo Amiens", City: "Amiens", Lat: 49.8941, Lon: 2.2957},
		},
	}
}
