package proxy

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/AsrarMemon/event-management-frontend/internal/repository"
	"github.com/AsrarMemon/event-management-frontend/pkg/logger"
	"github.com/AsrarMemon/event-management-frontend/pkg/response"
	"github.com/AsrarMemon/event-management-frontend/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Config holds the pass-through configuration
type Config struct {
	// BaseURL is the upstream API root, e.g. http://localhost:3001/api
	BaseURL string
	// StripPrefix is removed from the incoming path before forwarding
	StripPrefix string
	Timeout     time.Duration
	// Transport is wrapped with tracing; nil uses http.DefaultTransport
	Transport http.RoundTripper
	// Invalidator is told about successful mutations; nil when caching is off
	Invalidator repository.CacheInvalidator
	Logger      *logger.Logger
}

// ReverseProxy forwards raw API calls to the upstream events API
type ReverseProxy struct {
	config Config
	proxy  *httputil.ReverseProxy
	log    *logger.Logger
}

// NewReverseProxy creates a new reverse proxy instance
func NewReverseProxy(config Config) (*ReverseProxy, error) {
	targetURL, err := url.Parse(config.BaseURL)
	if err != nil || targetURL.Scheme == "" || targetURL.Host == "" {
		return nil, fmt.Errorf("invalid upstream URL %q", config.BaseURL)
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	rp := &ReverseProxy{
		config: config,
		log:    config.Logger,
	}
	if rp.log == nil {
		rp.log = logger.NewNop()
	}

	proxy := httputil.NewSingleHostReverseProxy(targetURL)
	proxy.Transport = telemetry.NewTransport(config.Transport)

	originalDirector := proxy.Director
	proxy.Director = func(req *http.Request) {
		originalDirector(req)
		req.Host = targetURL.Host
	}

	proxy.ErrorHandler = rp.handleError
	proxy.ModifyResponse = rp.modifyResponse

	rp.proxy = proxy
	return rp, nil
}

// Handler returns a Gin handler for proxying requests
func (rp *ReverseProxy) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := telemetry.StartSpan(c.Request.Context(), "proxy.forward")
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.path", c.Request.URL.Path),
		)

		if rp.config.StripPrefix != "" {
			c.Request.URL.Path = strings.TrimPrefix(c.Request.URL.Path, rp.config.StripPrefix)
			if c.Request.URL.Path == "" {
				c.Request.URL.Path = "/"
			}
			c.Request.URL.RawPath = ""
		}

		ctx = context.WithValue(ctx, forwardSpanKey{}, span)
		timeoutCtx, cancel := context.WithTimeout(ctx, rp.config.Timeout)
		defer cancel()
		c.Request = c.Request.WithContext(timeoutCtx)

		rp.proxy.ServeHTTP(c.Writer, c.Request)
	}
}

func (rp *ReverseProxy) handleError(w http.ResponseWriter, r *http.Request, err error) {
	rp.log.WarnContext(r.Context(), "Upstream API request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	span := forwardSpan(r.Context())
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var (
		status int
		code   string
		msg    string
	)
	switch {
	case isTimeoutError(err):
		status, code, msg = http.StatusGatewayTimeout, response.CodeGatewayTimeout, "Events API timed out"
	case isConnectionError(err):
		status, code, msg = http.StatusBadGateway, response.CodeBadGateway, "Events API unavailable"
	default:
		status, code, msg = http.StatusBadGateway, response.CodeBadGateway, "Events API error"
	}
	writeError(w, status, code, msg)
}

func (rp *ReverseProxy) modifyResponse(resp *http.Response) error {
	resp.Header.Set("X-Proxied-By", "event-console")
	markSpan(resp)

	if rp.config.Invalidator == nil || !isMutation(resp.Request.Method) {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil
	}

	id := eventIDFromPath(resp.Request.URL.Path)
	if err := rp.config.Invalidator.InvalidateEvents(resp.Request.Context(), id); err != nil {
		rp.log.WarnContext(resp.Request.Context(), "Failed to invalidate event cache after pass-through mutation",
			zap.String("event_id", id),
			zap.Error(err),
		)
	}
	return nil
}

type forwardSpanKey struct{}

// forwardSpan returns the proxy.forward span. The transport wraps the
// request in its own client span, so SpanFromContext would return that.
func forwardSpan(ctx context.Context) trace.Span {
	if span, ok := ctx.Value(forwardSpanKey{}).(trace.Span); ok {
		return span
	}
	return trace.SpanFromContext(ctx)
}

// markSpan settles the forward span once the upstream has answered.
// Transport failures never get here; handleError marks those.
func markSpan(resp *http.Response) {
	span := forwardSpan(resp.Request.Context())
	span.SetAttributes(attribute.Int("http.upstream_status", resp.StatusCode))
	if resp.StatusCode >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, fmt.Sprintf("upstream answered %d", resp.StatusCode))
		return
	}
	span.SetStatus(codes.Ok, "")
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// eventIDFromPath returns the segment after "events", if any
func eventIDFromPath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		if part == "events" && i+1 < len(parts) {
			id, err := url.PathUnescape(parts[i+1])
			if err != nil {
				return parts[i+1]
			}
			return id
		}
	}
	return ""
}

// isTimeoutError checks if error is a timeout
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "timeout")
}

// isConnectionError checks if error is a connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "no such host")
}
