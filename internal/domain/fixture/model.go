package fixture

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
)

// LevelAll disables level filtering. It is never a real fixture level.
const LevelAll = "ALL"

var (
	ErrMalformed     = errors.New("malformed fixture")
	ErrMonthNotFound = errors.New("fixture month not found")
)

// Fixture represents one scheduled weekend match.
type Fixture struct {
	Sport       string
	Level       string
	StartsAt    time.Time
	Competition string
	HomeTeam    string
	AwayTeam    string
	Venue       Venue
	SourceURL   string
}

// Venue is where a fixture is played.
type Venue struct {
	Name string
	City string
	Lat  float64
	Lon  float64
}

func (v Venue) Point() geo.Point {
	return geo.Point{Lat: v.Lat, Lon: v.Lon}
}

// Filtered is a fixture annotated with its distance from the reference position.
type Filtered struct {
	Fixture
	DistanceMeters float64
}

func (f Filtered) DistanceKm() float64 {
	return f.DistanceMeters / 1000
}

func NormalizeLevel(value string) string {
	level := strings.ToUpper(strings.TrimSpace(value))
	if level == "" {
		return LevelAll
	}
	return level
}

func (f Fixture) HasSource() bool {
	return strings.TrimSpace(f.SourceURL) != ""
}

// Validate reports records that cannot go through the selection pipeline.
func (f Fixture) Validate() error {
	if f.StartsAt.IsZero() {
		return fmt.Errorf("%w: missing starts_at", ErrMalformed)
	}
	if strings.EqualFold(strings.TrimSpace(f.Level), LevelAll) {
		return fmt.Errorf("%w: level %q is reserved", ErrMalformed, LevelAll)
	}
	lat, lon := f.Venue.Lat, f.Venue.Lon
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return fmt.Errorf("%w: non-finite venue coordinates", ErrMalformed)
	}
	if lat == 0 && lon == 0 {
		return fmt.Errorf("%w: missing venue coordinates", ErrMalformed)
	}
	if !f.Venue.Point().Valid() {
		return fmt.Errorf("%w: venue coordinates out of range lat=%v lon=%v", ErrMalformed, lat, lon)
	}
	return nil
}
