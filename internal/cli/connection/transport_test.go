package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/yndnr/examprep-go/internal/telemetry/logger"
)

func TestNewRequestID(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	if len(a) != 26 || len(b) != 26 {
		t.Fatalf("ids = %q, %q; want 26-char ULIDs", a, b)
	}
	if a == b {
		t.Error("request IDs must be unique")
	}
}

func TestLoggingTransport_LogsRequestID(t *testing.T) {
	var seen string
	srv := mockServer(t, map[string]http.HandlerFunc{
		"GET /exams": func(w http.ResponseWriter, r *http.Request) {
			seen = r.Header.Get(HeaderRequestID)
			writeJSON(w, http.StatusOK, `[]`)
		},
	})

	var buf bytes.Buffer
	l, err := logger.New(logger.Config{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("logger.New() error = %v", err)
	}
	t.Cleanup(func() { logger.SetLevel("warn") })

	c, _, _ := newTestClient(t, srv.URL, WithLogger(l))
	if err := c.Request(context.Background(), "/exams", RequestOptions{}, nil); err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	if len(seen) != 26 {
		t.Fatalf("X-Request-ID = %q, want ULID", seen)
	}
	var found bool
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line %q: %v", line, err)
		}
		if entry["msg"] != "api request" {
			continue
		}
		found = true
		if entry["request_id"] != seen {
			t.Errorf("request_id = %v, want %q", entry["request_id"], seen)
		}
		if entry["status"] != float64(http.StatusOK) {
			t.Errorf("status = %v, want 200", entry["status"])
		}
	}
	if !found {
		t.Errorf("no api request log line in %q", buf.String())
	}
}

func TestWithTracer_RecordsSpans(t *testing.T) {
	srv := mockServer(t, map[string]http.HandlerFunc{
		"GET /exams": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `[]`)
		},
		"GET /statistics": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
		},
	})

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	c, _, _ := newTestClient(t, srv.URL, WithTracer(tp.Tracer("test")))

	var exams []any
	if err := c.Request(context.Background(), "/exams", RequestOptions{}, &exams); err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	_ = c.Request(context.Background(), "/statistics", RequestOptions{}, nil)

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}
	if spans[0].Name() != "GET /exams" || spans[0].Status().Code != codes.Unset {
		t.Errorf("span 0 = %s %v", spans[0].Name(), spans[0].Status())
	}
	if spans[1].Name() != "GET /statistics" || spans[1].Status().Code != codes.Error {
		t.Errorf("span 1 = %s %v", spans[1].Name(), spans[1].Status())
	}

	var requestID string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "examprep.request_id" {
			requestID = kv.Value.AsString()
		}
	}
	if len(requestID) != 26 {
		t.Errorf("request id attribute = %q, want a ULID", requestID)
	}
}
