package ipgeo

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/riskibarqy/weekend-fixtures/internal/platform/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultURL = "https://ipapi.co/json/"

type ClientConfig struct {
	HTTPClient *http.Client
	URL        string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client locates the caller from its public IP address. It implements geo.Locator.
type Client struct {
	httpClient *http.Client
	url        string
	logger     *logging.Logger
}

// payload accepts both {latitude, longitude} and {lat, lon} providers.
type payload struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Error     bool     `json:"error"`
	Reason    string   `json:"reason"`
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 3 * time.Second
	}

	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		url = defaultURL
	}

	return &Client{httpClient: httpClient, url: url, logger: logger}
}

func (c *Client) Locate(ctx context.Context) (geo.Point, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return geo.Point{}, crerr.Wrap(err, "build geolocation request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return geo.Point{}, ctx.Err()
		}
		return geo.Point{}, crerr.Wrapf(geo.ErrLocationUnavailable, "send geolocation request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return geo.Point{}, crerr.Wrapf(geo.ErrLocationUnavailable, "read geolocation response: %v", err)
	}

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return geo.Point{}, crerr.Wrapf(geo.ErrLocationDenied, "provider status=%d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return geo.Point{}, crerr.Wrapf(geo.ErrLocationUnavailable, "provider status=%d", resp.StatusCode)
	}

	return decodePoint(raw)
}

func decodePoint(raw []byte) (geo.Point, error) {
	var body payload
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return geo.Point{}, crerr.Wrapf(geo.ErrLocationUnavailable, "decode geolocation response: %v", err)
	}
	if body.Error {
		return geo.Point{}, crerr.Wrapf(geo.ErrLocationUnavailable, "provider error: %s", body.Reason)
	}

	lat, lon := body.Latitude, body.Longitude
	if lat == nil || lon == nil {
		lat, lon = body.Lat, body.Lon
	}
	if lat == nil || lon == nil {
		return geo.Point{}, crerr.Wrap(geo.ErrLocationUnavailable, "provider response has no coordinates")
	}

	point := geo.Point{Lat: *lat, Lon: *lon}
	if !point.Valid() {
		return geo.Point{}, crerr.Wrapf(geo.ErrLocationUnavailable, "provider returned invalid coordinates %f,%f", point.Lat, point.Lon)
	}
	return point, nil
}
