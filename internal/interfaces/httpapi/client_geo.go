package httpapi

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
)

// HeaderLocator reads the position a CDN edge attached to the request. It
// implements geo.Locator for requests that went through EdgeLocation.
type HeaderLocator struct{}

func (HeaderLocator) Locate(ctx context.Context) (geo.Point, error) {
	if p, ok := edgeLocationFromContext(ctx); ok {
		return p, nil
	}
	return geo.Point{}, geo.ErrLocationUnavailable
}

// EdgeLocation stores the edge-provided client position in the request context.
func EdgeLocation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if p, ok := resolveEdgeLocation(r); ok {
			ctx = withEdgeLocation(ctx, p)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func resolveEdgeLocation(r *http.Request) (geo.Point, bool) {
	pairs := [][2]string{
		{r.Header.Get("CF-IPLatitude"), r.Header.Get("CF-IPLongitude")},
		{r.Header.Get("X-Vercel-IP-Latitude"), r.Header.Get("X-Vercel-IP-Longitude")},
	}
	if latLon := strings.TrimSpace(r.Header.Get("X-AppEngine-CityLatLong")); latLon != "" {
		if lat, lon, ok := strings.Cut(latLon, ","); ok {
			pairs = append(pairs, [2]string{lat, lon})
		}
	}

	for _, pair := range pairs {
		if p, ok := parseLatLon(pair[0], pair[1]); ok {
			return p, true
		}
	}
	return geo.Point{}, false
}

func parseLatLon(rawLat, rawLon string) (geo.Point, bool) {
	rawLat, rawLon = strings.TrimSpace(rawLat), strings.TrimSpace(rawLon)
	if rawLat == "" || rawLon == "" {
		return geo.Point{}, false
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return geo.Point{}, false
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return geo.Point{}, false
	}
	p := geo.Point{Lat: lat, Lon: lon}
	// App Engine sends "0.000000,0.000000" when it does not know.
	if !p.Valid() || (lat == 0 && lon == 0) {
		return geo.Point{}, false
	}
	return p, true
}

func resolveClientIP(r *http.Request) string {
	candidates := []string{
		r.Header.Get("Fly-Client-IP"),
		r.Header.Get("CF-Connecting-IP"),
		r.Header.Get("X-Forwarded-For"),
		r.Header.Get("X-Real-IP"),
		r.RemoteAddr,
	}

	for _, candidate := range candidates {
		if ip := normalizeIP(candidate); ip != "" {
			return ip
		}
	}
	return ""
}

func normalizeIP(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if first, _, ok := strings.Cut(value, ","); ok {
		value = strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = strings.TrimSpace(host)
	}

	parsed := net.ParseIP(value)
	if parsed == nil {
		return ""
	}
	return parsed.String()
}
