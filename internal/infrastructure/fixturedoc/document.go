// Package fixturedoc is the JSON document format of monthly fixture files
// and of the remote fixture feed: {"updated_at": ..., "items": [...]}.
package fixturedoc

import (
	"encoding/json"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
)

type Document struct {
	UpdatedAt *string  `json:"updated_at"`
	Items     []Record `json:"items"`
}

type Record struct {
	Sport       string `json:"sport"`
	Level       string `json:"level"`
	StartsAt    string `json:"starts_at"`
	Competition string `json:"competition"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	Venue       Venue  `json:"venue"`
	SourceURL   string `json:"source_url,omitempty"`
}

type Venue struct {
	Name string  `json:"name"`
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// RawDocument keeps items as undecoded JSON so tools can regroup them
// without dropping unknown fields.
type RawDocument struct {
	UpdatedAt *string           `json:"updated_at"`
	Items     []json.RawMessage `json:"items"`
}

// Decode parses a month document. A record with an unparsable starts_at
// decodes with a zero StartsAt and is rejected later by validation.
func Decode(data []byte) ([]fixture.Fixture, error) {
	var doc Document
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, crerr.Wrap(err, "decode fixture document")
	}

	out := make([]fixture.Fixture, 0, len(doc.Items))
	for _, rec := range doc.Items {
		out = append(out, rec.Fixture())
	}
	return out, nil
}

func Encode(items []fixture.Fixture, updatedAt time.Time) ([]byte, error) {
	doc := Document{Items: make([]Record, 0, len(items))}
	if !updatedAt.IsZero() {
		stamp := updatedAt.UTC().Format(time.RFC3339)
		doc.UpdatedAt = &stamp
	}
	for _, item := range items {
		doc.Items = append(doc.Items, FromFixture(item))
	}

	data, err := sonic.ConfigDefault.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, crerr.Wrap(err, "encode fixture document")
	}
	return data, nil
}

func (r Record) Fixture() fixture.Fixture {
	return fixture.Fixture{
		Sport:       strings.TrimSpace(r.Sport),
		Level:       strings.TrimSpace(r.Level),
		StartsAt:    ParseStartsAt(r.StartsAt),
		Competition: strings.TrimSpace(r.Competition),
		HomeTeam:    strings.TrimSpace(r.HomeTeam),
		AwayTeam:    strings.TrimSpace(r.AwayTeam),
		Venue: fixture.Venue{
			Name: strings.TrimSpace(r.Venue.Name),
			City: strings.TrimSpace(r.Venue.City),
			Lat:  r.Venue.Lat,
			Lon:  r.Venue.Lon,
		},
		SourceURL: strings.TrimSpace(r.SourceURL),
	}
}

func FromFixture(f fixture.Fixture) Record {
	return Record{
		Sport:       f.Sport,
		Level:       f.Level,
		StartsAt:    f.StartsAt.Format(time.RFC3339),
		Competition: f.Competition,
		HomeTeam:    f.HomeTeam,
		AwayTeam:    f.AwayTeam,
		Venue: Venue{
			Name: f.Venue.Name,
			City: f.Venue.City,
			Lat:  f.Venue.Lat,
			Lon:  f.Venue.Lon,
		},
		SourceURL: f.SourceURL,
	}
}

// ParseStartsAt accepts RFC 3339 with or without fractional seconds. It
// returns the zero time for anything else.
func ParseStartsAt(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// MonthOfStartsAt buckets a raw starts_at by the month of its own wall clock,
// so "2026-02-28T23:30:00+01:00" belongs to February even though it is
// March in UTC.
func MonthOfStartsAt(raw string) (weekend.Month, bool) {
	t := ParseStartsAt(raw)
	if t.IsZero() {
		return weekend.Month{}, false
	}
	return weekend.MonthOf(t), true
}
