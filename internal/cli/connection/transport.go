package connection

import (
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yndnr/examprep-go/internal/telemetry/logger"
)

// HeaderRequestID carries the client-generated request ID.
const HeaderRequestID = "X-Request-ID"

// NewRequestID returns a new time-ordered request ID.
func NewRequestID() string {
	return ulid.Make().String()
}

// loggingTransport logs each round trip at debug level. The logger and
// request ID come from the request context set up by newRequest.
type loggingTransport struct {
	next http.RoundTripper
}

func newLoggingTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	l := logger.L(req.Context())

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		l.Debug("api request error",
			"method", req.Method,
			"path", req.URL.Path,
			"duration", elapsed,
			"error", err,
		)
		return nil, err
	}

	l.Debug("api request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", elapsed,
	)
	return resp, nil
}

// tracingTransport wraps each round trip in a client span.
type tracingTransport struct {
	next   http.RoundTripper
	tracer trace.Tracer
}

func newTracingTransport(next http.RoundTripper, tracer trace.Tracer) http.RoundTripper {
	return &tracingTransport{next: next, tracer: tracer}
}

func (t *tracingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, span := t.tracer.Start(req.Context(), req.Method+" "+req.URL.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL.String()),
			attribute.String("examprep.request_id", req.Header.Get(HeaderRequestID)),
		),
	)
	defer span.End()

	resp, err := t.next.RoundTrip(req.WithContext(ctx))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	return resp, nil
}
