package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
)

type fixtureTableModel struct {
	ID          int64          `db:"id" insert:"-"`
	Sport       string         `db:"sport"`
	Level       string         `db:"level"`
	StartsAt    time.Time      `db:"starts_at"`
	Competition string         `db:"competition"`
	HomeTeam    string         `db:"home_team"`
	AwayTeam    string         `db:"away_team"`
	VenueName   string         `db:"venue_name"`
	VenueCity   string         `db:"venue_city"`
	VenueLat    float64        `db:"venue_lat"`
	VenueLon    float64        `db:"venue_lon"`
	SourceURL   sql.NullString `db:"source_url"`
	CreatedAt   time.Time      `db:"created_at" insert:"-"`
	UpdatedAt   time.Time      `db:"updated_at" insert:"-"`
	DeletedAt   *time.Time     `db:"deleted_at" insert:"-"`
}

var fixtureColumns = []string{
	"id", "sport", "level", "starts_at", "competition", "home_team", "away_team",
	"venue_name", "venue_city", "venue_lat", "venue_lon", "source_url",
}

func (m fixtureTableModel) toDomain(loc *time.Location) fixture.Fixture {
	return fixture.Fixture{
		Sport:       m.Sport,
		Level:       m.Level,
		StartsAt:    m.StartsAt.In(loc),
		Competition: m.Competition,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		Venue: fixture.Venue{
			Name: m.VenueName,
			City: m.VenueCity,
			Lat:  m.VenueLat,
			Lon:  m.VenueLon,
		},
		SourceURL: m.SourceURL.String,
	}
}

func fixtureModelFromDomain(f fixture.Fixture) fixtureTableModel {
	return fixtureTableModel{
		Sport:       f.Sport,
		Level:       f.Level,
		StartsAt:    f.StartsAt,
		Competition: f.Competition,
		HomeTeam:    f.HomeTeam,
		AwayTeam:    f.AwayTeam,
		VenueName:   f.Venue.Name,
		VenueCity:   f.Venue.City,
		VenueLat:    f.Venue.Lat,
		VenueLon:    f.Venue.Lon,
		SourceURL:   sql.NullString{String: f.SourceURL, Valid: f.SourceURL != ""},
	}
}
