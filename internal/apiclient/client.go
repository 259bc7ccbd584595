package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AsrarMemon/event-management-frontend/internal/domain"
	"github.com/AsrarMemon/event-management-frontend/internal/metrics"
	"github.com/AsrarMemon/event-management-frontend/pkg/logger"
	"github.com/AsrarMemon/event-management-frontend/pkg/retry"
	"github.com/AsrarMemon/event-management-frontend/pkg/telemetry"
	"go.uber.org/zap"
)

// ErrNotFound matches any *APIError with status 404
var ErrNotFound = domain.ErrNotFound

// maxErrorBody bounds how much of an error response is read
const maxErrorBody = 64 << 10

// APIError is a non-2xx answer from the events API
type APIError struct {
	StatusCode int
	// Message is what the server said; empty when the body carried none
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Config holds client settings
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	MaxRetries    int
	RetryInterval time.Duration
	// Transport is wrapped with tracing; nil uses http.DefaultTransport
	Transport http.RoundTripper
	Logger    *logger.Logger
}

// Client talks to the events REST API
type Client struct {
	baseURL       string
	httpClient    *http.Client
	maxRetries    int
	retryInterval time.Duration
	log           *logger.Logger
}

// DefaultTimeout applies when Config.Timeout is unset
const DefaultTimeout = 10 * time.Second

// New creates a new Client
func New(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: telemetry.NewTransport(cfg.Transport),
		},
		maxRetries:    cfg.MaxRetries,
		retryInterval: cfg.RetryInterval,
		log:           log,
	}
}

// BaseURL returns the upstream base URL without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks that the API answers. A single attempt, no retries.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/events", url.Values{"limit": {"1"}}, nil)
	return err
}

// get performs a read with the constant-delay retry policy
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	cfg := retry.Constant(c.maxRetries, c.retryInterval)
	cfg.ShouldRetry = isRetryable

	var body []byte
	result := retry.DoWithCallback(ctx, cfg, func(ctx context.Context) error {
		b, err := c.do(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return err
		}
		body = b
		return nil
	}, func(attempt int, err error, next time.Duration) {
		metrics.APIRetry(routeOf(path))
		c.log.WarnContext(ctx, "Retrying API request",
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Duration("next_in", next),
			zap.Error(err),
		)
	})

	if err := result.Cause(); err != nil {
		return nil, err
	}
	return body, nil
}

// routeOf collapses event ids so metric labels stay bounded
func routeOf(path string) string {
	if strings.HasPrefix(path, "/events/") {
		return "/events/:id"
	}
	return path
}

// send performs a mutation. Mutations are never retried.
func (c *Client) send(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return c.do(ctx, method, path, nil, buf)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// isRetryable retries transport failures and 5xx answers
func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled)
}

// errorMessage extracts the server's message: "error" as a string or an
// object with "message", then a top-level "message". It returns "" when
// the body has neither.
func errorMessage(body []byte) string {
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if len(payload.Error) > 0 {
			var s string
			if json.Unmarshal(payload.Error, &s) == nil && s != "" {
				return s
			}
			var obj struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(payload.Error, &obj) == nil && obj.Message != "" {
				return obj.Message
			}
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return ""
}
