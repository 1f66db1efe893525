package connection

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/yndnr/examprep-go/internal/cli/notify"
	"github.com/yndnr/examprep-go/internal/cli/session"
	"github.com/yndnr/examprep-go/internal/infra/buildinfo"
	"github.com/yndnr/examprep-go/internal/telemetry/logger"
	"github.com/yndnr/examprep-go/internal/telemetry/metric"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "http://localhost:3000/api"

// maxErrorBody bounds how much of an error response is read for its message.
const maxErrorBody = 1 << 20

// RequestOptions describes one API call.
type RequestOptions struct {
	// Method is GET, POST, PUT or DELETE. Empty means GET.
	Method string
	// Headers are merged last and win over the defaults, Authorization included.
	Headers map[string]string
	// Body is JSON-encoded when non-nil; otherwise no body is sent.
	Body any
	// SkipAuth omits the Authorization header even when a session exists.
	SkipAuth bool
}

// Client talks to the exam platform API on behalf of the stored session.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	store      session.Store
	notifier   notify.Notifier
	httpClient *http.Client
	userAgent  string
	logger     logger.Logger
	metrics    *metric.Registry
}

type clientOptions struct {
	notifier   notify.Notifier
	httpClient *http.Client
	timeout    time.Duration
	tlsConfig  *tls.Config
	metrics    *metric.Registry
	logger     logger.Logger
	userAgent  string
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*clientOptions)

// WithNotifier sets where failures are reported. Default: notify.Discard.
func WithNotifier(n notify.Notifier) Option {
	return func(o *clientOptions) { o.notifier = n }
}

// WithHTTPClient replaces the HTTP client entirely; timeout, TLS,
// metrics and tracer options are then ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithTimeout bounds each request. Zero (the default) leaves requests
// bounded only by the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithTLSConfig sets the TLS configuration for HTTPS APIs.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *clientOptions) { o.tlsConfig = cfg }
}

// WithMetrics records request and session metrics in r.
func WithMetrics(r *metric.Registry) Option {
	return func(o *clientOptions) { o.metrics = r }
}

// WithLogger sets the client logger. Default: logger.Default().
func WithLogger(l logger.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithTracer records one span per round trip.
func WithTracer(t trace.Tracer) Option {
	return func(o *clientOptions) { o.tracer = t }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) { o.userAgent = ua }
}

// NewClient creates a client for baseURL. A nil store means an in-memory one.
func NewClient(baseURL string, store session.Store, opts ...Option) *Client {
	o := clientOptions{
		notifier:  notify.Discard,
		logger:    logger.Default(),
		userAgent: buildinfo.UserAgent(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if store == nil {
		store = session.NewMemoryStore()
	}
	if o.notifier == nil {
		o.notifier = notify.Discard
	}

	hc := o.httpClient
	if hc == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if o.tlsConfig != nil {
			transport.TLSClientConfig = o.tlsConfig
		}
		var rt http.RoundTripper = transport
		if o.metrics != nil {
			rt = o.metrics.InstrumentRoundTripper(rt)
		}
		if o.tracer != nil {
			rt = newTracingTransport(rt, o.tracer)
		}
		hc = &http.Client{
			Transport: newLoggingTransport(rt),
			Timeout:   o.timeout,
		}
	}

	return &Client{
		baseURL:    NormalizeBaseURL(baseURL),
		store:      store,
		notifier:   o.notifier,
		httpClient: hc,
		userAgent:  o.userAgent,
		logger:     o.logger.With("component", "api-client"),
		metrics:    o.metrics,
	}
}

// NormalizeBaseURL adds a missing scheme and drops trailing slashes.
func NormalizeBaseURL(raw string) string {
	baseURL := strings.TrimSpace(raw)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return strings.TrimRight(baseURL, "/")
}

// BaseURL returns the base URL of the client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Store returns the session store the client reads tokens from.
func (c *Client) Store() session.Store {
	return c.store
}

// Request performs one API call and decodes a 2xx JSON body into out.
// out may be nil to ignore the body. Failures are reported through the
// notifier once, then returned.
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	err := c.do(ctx, endpoint, opts, out)
	if err != nil {
		c.report(ctx, err)
	}
	return err
}

// Do is the typed form of Client.Request.
func Do[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) (T, error) {
	var out T
	if err := c.Request(ctx, endpoint, opts, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// do is Request without reporting.
func (c *Client) do(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	req, resp, err := c.send(ctx, endpoint, opts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Checked before the body is touched: any 401 ends the session.
	if resp.StatusCode == http.StatusUnauthorized {
		c.expireSession(req.Context())
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseErrorResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return &DecodeError{StatusCode: resp.StatusCode, Err: err}
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		return &DecodeError{StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

// send builds and executes a request. The caller closes the response body.
func (c *Client) send(ctx context.Context, endpoint string, opts RequestOptions) (*http.Request, *http.Response, error) {
	req, err := c.newRequest(ctx, endpoint, opts)
	if err != nil {
		return nil, nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &TransportError{Err: err}
	}
	return req, resp, nil
}

func (c *Client) newRequest(ctx context.Context, endpoint string, opts RequestOptions) (*http.Request, error) {
	method := strings.ToUpper(opts.Method)
	switch method {
	case "":
		method = http.MethodGet
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, &RequestError{Message: fmt.Sprintf("unsupported method %q", opts.Method)}
	}

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, &RequestError{Message: fmt.Sprintf("encode request body: %v", err)}
		}
		body = bytes.NewReader(data)
	}

	requestID := NewRequestID()
	ctx = logger.WithRequestID(logger.WithLogger(ctx, c.logger), requestID)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, &RequestError{Message: fmt.Sprintf("create request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderRequestID, requestID)

	if !opts.SkipAuth {
		s, err := c.store.Get()
		switch {
		case err == nil:
			req.Header.Set("Authorization", "Bearer "+s.Token)
		case !errors.Is(err, session.ErrNoSession):
			c.logger.Warn("read session failed, sending request without credentials", "error", err)
		}
	}

	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

func (c *Client) expireSession(ctx context.Context) {
	if err := c.store.Clear(); err != nil {
		logger.L(ctx).Error("clear expired session failed", "error", err)
	}
	if c.metrics != nil {
		c.metrics.SessionsExpired.Inc()
	}
	logger.L(ctx).Info("session expired")
}

func (c *Client) report(ctx context.Context, err error) {
	if isCancellation(err) {
		return
	}
	c.logger.WithContext(ctx).Debug("api request failed", "error", err, "status", StatusCode(err))
	c.notifier.Notify(notify.Error(NotificationTitle, UserMessage(err)))
}

// parseErrorResponse builds a RequestError from a non-2xx response,
// preferring the server's JSON "message" field.
func parseErrorResponse(resp *http.Response) error {
	reqErr := &RequestError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var errResp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &errResp); err == nil {
		reqErr.Code = errResp.Code
		reqErr.Message = errResp.Message
	}
	if reqErr.Message == "" {
		reqErr.Message = fmt.Sprintf("Request failed with status %d", resp.StatusCode)
	}
	return reqErr
}
