package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yatralink/bustrack/internal/pkg/circuitbreaker"
	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/retry"
)

// Config configures a Client
type Config struct {
	BaseURL string
	Timeout time.Duration
	Retry   retry.Config
	Breaker circuitbreaker.Config
}

// Client is an HTTP client for upstream JSON APIs. Every call goes through
// a circuit breaker and is retried on transport errors and 5xx responses.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retrier    *retry.Retrier
	breaker    *circuitbreaker.CircuitBreaker
}

// HTTPError represents a non-2xx upstream response
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

// NewClient creates a new HTTP client
func NewClient(config Config, l *logger.ZapLogger) *Client {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.Breaker.Name == "" {
		name := config.BaseURL
		if u, err := url.Parse(config.BaseURL); err == nil && u.Host != "" {
			name = u.Host
		}
		breaker := circuitbreaker.DefaultConfig(name)
		breaker.OnStateChange = config.Breaker.OnStateChange
		config.Breaker = breaker
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		retrier: retry.New(config.Retry, l),
		breaker: circuitbreaker.New(config.Breaker, l),
	}
}

// Get performs a GET request for path with the given query. The caller
// owns the returned body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var resp *http.Response
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.retrier.Execute(ctx, func(ctx context.Context) error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return retry.Permanent(err)
			}
			req.Header.Set("Accept", "application/json")

			r, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}

			if r.StatusCode >= 500 {
				r.Body.Close()
				return &HTTPError{StatusCode: r.StatusCode, Message: http.StatusText(r.StatusCode)}
			}
			if r.StatusCode >= 400 {
				r.Body.Close()
				return retry.Permanent(&HTTPError{StatusCode: r.StatusCode, Message: http.StatusText(r.StatusCode)})
			}

			resp = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetJSON performs a GET request and decodes the JSON body into target
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, target interface{}) error {
	resp, err := c.Get(ctx, path, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Breaker exposes the client's circuit breaker for health reporting
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}
