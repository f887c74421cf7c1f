package terminal

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
	"github.com/riskibarqy/weekend-fixtures/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame() usecase.Frame {
	kickoff := time.Date(2026, 2, 14, 18, 0, 0, 0, cet)
	return usecase.Frame{
		Month:     weekend.MonthOf(kickoff),
		Window:    weekend.Containing(kickoff),
		Level:     "ALL",
		RadiusKm:  25,
		Reference: geo.Point{Lat: 49.8489, Lon: 3.2876},
		Located:   true,
		Levels:    []string{"R1", "R2"},
		Items: []fixture.Filtered{{
			Fixture: fixture.Fixture{
				Sport:     "football",
				Level:     "R1",
				StartsAt:  kickoff,
				HomeTeam:  "Chauny FC",
				AwayTeam:  "Saint-Quentin SC",
				Venue:     fixture.Venue{Name: "Stade", City: "Saint-Quentin", Lat: 49.85, Lon: 3.29},
				SourceURL: "https://example.fr/match/1",
			},
			DistanceMeters: 1200,
		}},
	}
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := NewRenderer(&out, cet)
	r.Render(context.Background(), testFrame())

	text := out.String()
	assert.Contains(t, text, "niveau ALL | 25.0 km autour de votre position ==")
	assert.Contains(t, text, "niveaux: R1, R2")
	assert.Contains(t, text, "1 match(s) trouvé(s)")
	assert.Contains(t, text, " 1. R1")
	assert.Contains(t, text, "1.2 km")
	assert.Contains(t, text, "source: https://example.fr/match/1")
	assert.Contains(t, text, "carte: 49.8489, 3.2876")
}

func TestRenderer_FocusUsesLastRender(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := NewRenderer(&out, cet)
	require.ErrorIs(t, r.Focus(1), usecase.ErrInvalidInput)

	r.Render(context.Background(), testFrame())
	out.Reset()
	require.NoError(t, r.Focus(1))
	assert.Contains(t, out.String(), "carte: 49.8500, 3.2900")
	assert.Contains(t, out.String(), "Chauny FC — Saint-Quentin SC")
	require.ErrorIs(t, r.Focus(2), usecase.ErrInvalidInput)
}

func TestRenderer_Notify(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := NewRenderer(&out, cet)
	r.Notify(context.Background(), usecase.Notice{Message: "position indisponible"})
	assert.Equal(t, "! position indisponible\n", out.String())
}
