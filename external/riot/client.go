package riot

import (
	"context"
	"crypto/tls"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-crawler/internal/platform/logging"
	"github.com/riskibarqy/match-crawler/internal/platform/metrics"
	"github.com/riskibarqy/match-crawler/internal/platform/resilience"
	"github.com/riskibarqy/match-crawler/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL  = "https://euw1.api.riotgames.com"
	tokenHeader     = "X-Riot-Token"
	maxResponseBody = 6 << 20
)

var errRiotTransient = crerr.New("riot transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	Timeout    time.Duration
	// InsecureSkipVerify disables TLS peer validation on the default transport.
	InsecureSkipVerify bool
	Retry              RetryPolicy
	Logger             *logging.Logger
	Metrics            *metrics.Metrics
	CircuitBreaker     resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	retry      RetryPolicy
	logger     *logging.Logger
	metrics    *metrics.Metrics
	breaker    *resilience.CircuitBreaker
	flight     resilience.Flight[[]byte]
	wait       func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.InsecureSkipVerify {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		}
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(transport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breaker := cfg.CircuitBreaker.Build()
	if breaker != nil {
		cfg.Metrics.SetCircuitState(breaker.State().String())
	}
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("riot circuit breaker state changed", "from", from.String(), "to", to.String())
		cfg.Metrics.SetCircuitState(to.String())
	})

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		retry:      cfg.Retry.normalize(),
		logger:     logger,
		metrics:    cfg.Metrics,
		breaker:    breaker,
		wait:       sleepContext,
	}
}

// Fetch issues one logical request and decodes the JSON body into target.
// Throttled responses are retried according to the client's RetryPolicy;
// every other non-2xx status surfaces as *UpstreamError.
func (c *Client) Fetch(ctx context.Context, method, path string, params url.Values, target any) error {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}
	fullURL := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	// Only the request that actually goes out takes a breaker slot; callers
	// sharing an in-flight GET inherit its result. A GET keeps running until
	// every caller sharing it has cancelled.
	execute := func(ctx context.Context) ([]byte, error) {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "riot circuit breaker rejected request", "state", c.breaker.State().String(), "path", path)
			return nil, fmt.Errorf("%w: riot api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		raw, reqErr := c.executeRequest(ctx, method, routeLabel(path), fullURL)
		c.breaker.Record(isRiotCircuitFailure(reqErr))
		return raw, reqErr
	}

	var (
		raw []byte
		err error
	)
	if method == http.MethodGet {
		raw, err, _ = c.flight.DoContext(ctx, fullURL, execute)
	} else {
		raw, err = execute(ctx)
	}
	if err != nil {
		return err
	}
	if target == nil || len(raw) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode riot payload path=%s", path)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, method, route, fullURL string) ([]byte, error) {
	started := time.Now()
	for attempt := 1; ; attempt++ {
		raw, status, header, err := c.roundTrip(ctx, method, route, fullURL)
		if err != nil {
			return nil, err
		}
		if status >= 200 && status < 300 {
			return raw, nil
		}

		upstream := &UpstreamError{
			URL:        redactURL(fullURL, c.token),
			StatusCode: status,
			Reason:     sanitizeSensitiveText(abbreviateBody(raw), c.token),
		}
		if status != http.StatusTooManyRequests {
			if status >= http.StatusInternalServerError {
				return nil, crerr.Mark(upstream, errRiotTransient)
			}
			return nil, upstream
		}

		delay := c.retry.delayFor(header)
		if c.retry.exhausted(attempt, time.Since(started), delay) {
			c.metrics.IncRetryExhausted()
			c.logger.WarnContext(ctx, "riot rate limit retries exhausted", "url", upstream.URL, "attempts", attempt)
			return nil, fmt.Errorf("%w: %w", ErrRateLimitExhausted, upstream)
		}

		c.metrics.IncThrottleWait()
		c.logger.InfoContext(ctx, "riot rate limited, waiting before retry", "url", upstream.URL, "attempt", attempt, "delay", delay.String())
		if err := c.wait(ctx, delay); err != nil {
			return nil, err
		}
	}
}

func (c *Client) roundTrip(ctx context.Context, method, route, fullURL string) ([]byte, int, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, 0, nil, crerr.Wrap(err, "build riot request")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set(tokenHeader, c.token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstreamRequest(route, 0, time.Since(started))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, 0, nil, ctxErr
		}
		return nil, 0, nil, crerr.Mark(
			crerr.Newf("send riot request: %s", sanitizeSensitiveText(err.Error(), c.token)),
			errRiotTransient,
		)
	}
	defer resp.Body.Close()
	c.metrics.ObserveUpstreamRequest(route, resp.StatusCode, time.Since(started))

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseBody)); err != nil {
		return nil, 0, nil, crerr.Mark(crerr.Wrap(err, "read riot response body"), errRiotTransient)
	}

	raw := make([]byte, buf.Len())
	copy(raw, buf.B)
	return raw, resp.StatusCode, resp.Header, nil
}

func isRiotCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return crerr.Is(err, errRiotTransient) && !stderrors.Is(err, context.Canceled)
}

// routeLabel drops the trailing identifier segment so metric labels stay bounded.
func routeLabel(path string) string {
	path = strings.TrimRight(path, "/")
	if idx := strings.LastIndex(path, "/"); idx > 0 {
		return path[:idx]
	}
	return path
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

func redactURL(rawURL, token string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitizeSensitiveText(rawURL, token)
	}
	query := parsed.Query()
	if query.Has("api_key") {
		query.Set("api_key", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return sanitizeSensitiveText(parsed.String(), token)
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
