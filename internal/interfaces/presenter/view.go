package presenter

import (
	"fmt"
	"html"
	"strconv"
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/valyala/bytebufferpool"
)

const (
	ReferenceZoom = 9
	FocusZoom     = 12

	directionsBaseURL = "https://www.google.com/maps/dir/?api=1&destination="
	separator         = " • "
)

type View struct {
	CountLabel string   `json:"countLabel"`
	Cards      []Card   `json:"cards"`
	Markers    []Marker `json:"markers"`
	Center     Center   `json:"center"`
}

type Card struct {
	Meta          string  `json:"meta"`
	Title         string  `json:"title"`
	Place         string  `json:"place"`
	DirectionsURL string  `json:"directionsUrl"`
	SourceURL     string  `json:"sourceUrl,omitempty"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
}

type Marker struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	PopupHTML string  `json:"popupHtml"`
}

type Center struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom int     `json:"zoom"`
}

// Build turns an ordered selection into list cards and map markers. Card i
// and marker i always describe items[i].
func Build(items []fixture.Filtered, reference geo.Point, loc *time.Location) View {
	if loc == nil {
		loc = time.Local
	}

	view := View{
		CountLabel: CountLabel(len(items)),
		Cards:      make([]Card, 0, len(items)),
		Markers:    make([]Marker, 0, len(items)),
		Center:     Center{Lat: reference.Lat, Lon: reference.Lon, Zoom: ReferenceZoom},
	}
	for _, item := range items {
		card := buildCard(item, loc)
		view.Cards = append(view.Cards, card)
		view.Markers = append(view.Markers, Marker{
			Lat:       item.Venue.Lat,
			Lon:       item.Venue.Lon,
			PopupHTML: popupHTML(item, loc),
		})
	}
	return view
}

func CountLabel(n int) string {
	return fmt.Sprintf("%d match(s) trouvé(s)", n)
}

// Focus centers the map on a card's venue.
func Focus(card Card) Center {
	return Center{Lat: card.Lat, Lon: card.Lon, Zoom: FocusZoom}
}

func DirectionsURL(lat, lon float64) string {
	return directionsBaseURL + formatCoord(lat) + "," + formatCoord(lon)
}

func buildCard(item fixture.Filtered, loc *time.Location) Card {
	return Card{
		Meta:          item.Level + separator + FormatKickoff(item.StartsAt, loc) + separator + FormatKm(item.DistanceKm()) + " km",
		Title:         item.HomeTeam + " — " + item.AwayTeam,
		Place:         item.Venue.Name + separator + item.Venue.City,
		DirectionsURL: DirectionsURL(item.Venue.Lat, item.Venue.Lon),
		SourceURL:     item.SourceURL,
		Lat:           item.Venue.Lat,
		Lon:           item.Venue.Lon,
	}
}

// popupHTML renders the marker popup: bold level and kickoff, then the
// teams, then the venue.
func popupHTML(item fixture.Filtered, loc *time.Location) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("<b>")
	_, _ = buf.WriteString(html.EscapeString(item.Level + separator + FormatKickoff(item.StartsAt, loc)))
	_, _ = buf.WriteString("</b><br>")
	_, _ = buf.WriteString(html.EscapeString(item.HomeTeam + " — " + item.AwayTeam))
	_, _ = buf.WriteString("<br>")
	_, _ = buf.WriteString(html.EscapeString(item.Venue.Name + separator + item.Venue.City))
	return buf.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
