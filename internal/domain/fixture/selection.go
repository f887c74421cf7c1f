package fixture

import (
	"sort"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
)

// Criteria drives one selection pass.
type Criteria struct {
	Level        string
	Window       weekend.Window
	Reference    geo.Point
	RadiusMeters float64
}

// Select filters fixtures by level, weekend window and radius around the
// reference position, annotates each with its distance, and sorts by kickoff.
// Fixtures with equal kickoff keep their input order. The input is not modified.
func Select(fixtures []Fixture, criteria Criteria) []Filtered {
	out := make([]Filtered, 0, len(fixtures))
	for _, item := range fixtures {
		if criteria.Level != LevelAll && item.Level != criteria.Level {
			continue
		}
		if !criteria.Window.Contains(item.StartsAt) {
			continue
		}

		distance := criteria.Reference.DistanceTo(item.Venue.Point())
		if distance > criteria.RadiusMeters {
			continue
		}

		out = append(out, Filtered{Fixture: item, DistanceMeters: distance})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})

	return out
}

// Levels lists the distinct level codes present in fixtures, sorted.
func Levels(fixtures []Fixture) []string {
	seen := make(map[string]struct{}, 4)
	out := make([]string, 0, 4)
	for _, item := range fixtures {
		if item.Level == "" {
			continue
		}
		if _, ok := seen[item.Level]; ok {
			continue
		}
		seen[item.Level] = struct{}{}
		out = append(out, item.Level)
	}
	sort.Strings(out)
	return out
}
