package fixturefeed

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
	"github.com/riskibarqy/weekend-fixtures/internal/infrastructure/fixturedoc"
	"github.com/riskibarqy/weekend-fixtures/internal/platform/logging"
	"github.com/riskibarqy/weekend-fixtures/internal/platform/resilience"
	"github.com/riskibarqy/weekend-fixtures/internal/usecase"
	"github.com/valyala/fasthttp"
)

const maxBodySize = 8 << 20

var errFeedTransient = crerr.New("fixture feed transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads monthly documents from "<BaseURL>/YYYY-MM.json".
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	timeout    time.Duration
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, crerr.New("fixture feed base url is required")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, crerr.Newf("fixture feed base url %q must use http or https", baseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "weekend-fixtures",
			MaxResponseBodySize: maxBodySize,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		breaker: resilience.NewCircuitBreaker("fixture-feed", cfg.CircuitBreaker, func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", string(from), "to", string(to))
		}),
	}, nil
}

func (c *Client) MonthURL(month weekend.Month) string {
	return c.baseURL + "/" + month.String() + ".json"
}

func (c *Client) ListByMonth(ctx context.Context, month weekend.Month) ([]fixture.Fixture, error) {
	url := c.MonthURL(month)

	var (
		body     []byte
		notFound bool
	)
	err := c.breaker.Do(func() error {
		var reqErr error
		body, notFound, reqErr = c.fetch(ctx, url)
		return reqErr
	})
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "fixture feed circuit breaker rejected request", "state", string(c.breaker.State()), "month", month.String())
		return nil, fmt.Errorf("%w: fixture feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch month=%s", month.String())
	}
	if notFound {
		return nil, crerr.Wrapf(fixture.ErrMonthNotFound, "month=%s", month.String())
	}

	items, err := fixturedoc.Decode(body)
	if err != nil {
		return nil, crerr.Wrapf(err, "month=%s", month.String())
	}
	return items, nil
}

// fetch reports a 404 as notFound with a nil error so it does not trip the breaker.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, bool, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		body, status, err := c.do(ctx, url)
		switch {
		case err != nil:
			lastErr = crerr.Wrapf(errFeedTransient, "send request: %v", err)
		case status == fasthttp.StatusOK:
			return body, false, nil
		case status == fasthttp.StatusNotFound:
			return nil, true, nil
		case status >= 500 || status == fasthttp.StatusTooManyRequests:
			lastErr = crerr.Wrapf(errFeedTransient, "feed status=%d", status)
		default:
			return nil, false, crerr.Newf("feed status=%d", status)
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * 200 * time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, false, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "fixture feed request failed", "url", url, "error", lastErr)
	return nil, false, lastErr
}

func (c *Client) do(ctx context.Context, url string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	// resp is released on return; the body must be copied.
	body := append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), nil
}
