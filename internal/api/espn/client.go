package espn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/omarshaarawi/hoopswrapped/internal/config"
	"github.com/omarshaarawi/hoopswrapped/internal/metrics"
)

const defaultBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/fba"

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("espn api unavailable")

type Client struct {
	httpClient *http.Client
	Config     config.ESPNAPI
	baseURL    string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	metrics    *metrics.Metrics
}

func NewClient(cfg config.ESPNAPI, m *metrics.Metrics) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	rps, burst := cfg.RequestsPerSecond, cfg.Burst
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 1
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		Config:     cfg,
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		metrics:    m,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "espn",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// Client-side mistakes say nothing about upstream health.
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code < 500 && se.Code != http.StatusTooManyRequests
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			m.SetBreakerState(int(to))
		},
	})
	return c
}

// StatusError is a non-200 response from ESPN.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

func (c *Client) Get(ctx context.Context, endpoint string, params, headers map[string]string, result interface{}) error {
	start := time.Now()
	_, err := c.breaker.Execute(func() (interface{}, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return nil, c.do(ctx, endpoint, params, headers, result)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	c.metrics.ObserveRequest(params["view"], time.Since(start).Seconds(), err)
	if err != nil {
		slog.Error("ESPN request failed", "endpoint", endpoint, "view", params["view"], "error", err)
	}
	return err
}

func (c *Client) do(ctx context.Context, endpoint string, params, headers map[string]string, result interface{}) error {
	url := fmt.Sprintf("%s%s", c.baseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		values := strings.Split(value, ",")
		for _, v := range values {
			q.Add(key, strings.TrimSpace(v))
		}
	}
	req.URL.RawQuery = q.Encode()

	c.setCookies(req)

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

// setCookies is a no-op for public leagues.
func (c *Client) setCookies(req *http.Request) {
	if !c.Config.Private() {
		return
	}
	cookie := fmt.Sprintf("SWID=%s; espn_s2=%s", c.Config.SWID, c.Config.ESPNS2)
	req.Header.Set("Cookie", cookie)
}
