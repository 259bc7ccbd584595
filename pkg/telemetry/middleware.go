package telemetry

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName is the instrumentation scope of console spans
	TracerName = "event-console"

	// TraceIDHeader echoes the trace ID back to the browser
	TraceIDHeader = "X-Trace-ID"

	// RequestIDHeader is read to tie a span to the access log line
	RequestIDHeader = "X-Request-ID"

	// UnmatchedRoute names spans for requests no route matched
	UnmatchedRoute = "unmatched"
)

// SpanName returns "<METHOD> <route pattern>" so every event page shares
// one name regardless of its ID.
func SpanName(method, route string) string {
	if route == "" {
		route = UnmatchedRoute
	}
	return method + " " + route
}

// TracingMiddleware opens a server span per request. Paths in skip are
// served without a span.
func TracingMiddleware(serviceName string, skip ...string) gin.HandlerFunc {
	tracer := otel.Tracer(TracerName, trace.WithInstrumentationAttributes(attribute.String("service.name", serviceName)))
	propagator := otel.GetTextMapPropagator()
	skipped := make(map[string]struct{}, len(skip))
	for _, path := range skip {
		skipped[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		ctx := propagator.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		route := c.FullPath()

		attrs := []attribute.KeyValue{
			semconv.HTTPMethod(c.Request.Method),
			semconv.HTTPURL(c.Request.URL.String()),
			semconv.NetHostName(c.Request.Host),
			semconv.UserAgentOriginal(c.Request.UserAgent()),
			attribute.String("http.client_ip", c.ClientIP()),
			attribute.Bool("console.api", strings.HasPrefix(route, "/api/")),
		}
		if route != "" {
			attrs = append(attrs, semconv.HTTPRoute(route))
		}
		if id := c.Request.Header.Get(RequestIDHeader); id != "" {
			attrs = append(attrs, attribute.String("http.request_id", id))
		}

		ctx, span := tracer.Start(ctx, SpanName(c.Request.Method, route),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		if sc := span.SpanContext(); sc.HasTraceID() {
			c.Header(TraceIDHeader, sc.TraceID().String())
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(
			semconv.HTTPStatusCode(status),
			attribute.Int("http.response_size", c.Writer.Size()),
		)
		for _, err := range c.Errors {
			span.RecordError(err.Err)
		}

		// 4xx stays unset on server spans; the client caused it
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
