package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEdgeLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		want    geo.Point
		ok      bool
	}{
		{name: "cloudflare", headers: map[string]string{"CF-IPLatitude": "49.8489", "CF-IPLongitude": "3.2876"}, want: geo.Point{Lat: 49.8489, Lon: 3.2876}, ok: true},
		{name: "vercel", headers: map[string]string{"X-Vercel-IP-Latitude": "49.6137", "X-Vercel-IP-Longitude": "3.2180"}, want: geo.Point{Lat: 49.6137, Lon: 3.2180}, ok: true},
		{name: "app engine", headers: map[string]string{"X-AppEngine-CityLatLong": "49.894100,2.295700"}, want: geo.Point{Lat: 49.8941, Lon: 2.2957}, ok: true},
		{name: "app engine unknown", headers: map[string]string{"X-AppEngine-CityLatLong": "0.000000,0.000000"}},
		{name: "out of range", headers: map[string]string{"CF-IPLatitude": "91", "CF-IPLongitude": "3"}},
		{name: "garbage", headers: map[string]string{"CF-IPLatitude": "north", "CF-IPLongitude": "3"}},
		{name: "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			got, ok := resolveEdgeLocation(req)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want.Lat, got.Lat, 1e-9)
				assert.InDelta(t, tt.want.Lon, got.Lon, 1e-9)
			}
		})
	}
}

func TestHeaderLocator(t *testing.T) {
	t.Parallel()

	_, err := HeaderLocator{}.Locate(context.Background())
	assert.ErrorIs(t, err, geo.ErrLocationUnavailable)

	p, err := HeaderLocator{}.Locate(withEdgeLocation(context.Background(), saintQuentin))
	require.NoError(t, err)
	assert.Equal(t, saintQuentin, p)
}

func TestNormalizeIP(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "203.0.113.7", normalizeIP("203.0.113.7, 10.0.0.1"))
	assert.Equal(t, "203.0.113.7", normalizeIP("203.0.113.7:4431"))
	assert.Equal(t, "", normalizeIP("not-an-ip"))
}
