package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Pranshu115/tatva/logger"
)

const tracerName = "github.com/Pranshu115/tatva/httpclient"

// Client is the interceptor pipeline wrapping net/http. Every call runs
// the request interceptors, the transport, status classification and the
// response interceptors, in that order, and produces exactly one outcome.
// There is no retry and no backoff.
type Client struct {
	httpClient *http.Client
	config     Config
	log        *logger.Logger
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	meters     metric.MeterProvider
	metrics    *metrics

	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// Option configures a Client at construction.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.WithComponent("httpclient")
		}
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.httpClient.Transport = rt }
}

// WithTracerProvider traces calls with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(tracerName) }
}

// WithMeterProvider records call metrics with mp instead of the global
// provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Client) { c.meters = mp }
}

// WithPropagator injects trace context with p instead of the global propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(c *Client) { c.propagator = p }
}

// WithRequestInterceptor appends a request interceptor.
func WithRequestInterceptor(i RequestInterceptor) Option {
	return func(c *Client) { c.requestInterceptors = append(c.requestInterceptors, i) }
}

// WithResponseInterceptor appends a response interceptor.
func WithResponseInterceptor(i ResponseInterceptor) Option {
	return func(c *Client) { c.responseInterceptors = append(c.responseInterceptors, i) }
}

// New creates a client with the given configuration and no session
// handling. Most callers want NewPipeline.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.clone()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	c := &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config:     cfg,
		log:        logger.Nop(),
		tracer:     otel.Tracer(tracerName),
		propagator: otel.GetTextMapPropagator(),
		meters:     otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(c)
	}
	m, err := newMetrics(c.meters)
	if err != nil {
		return nil, err
	}
	c.metrics = m
	return c, nil
}

// NewPipeline creates the application client: request IDs and bearer
// auth on the way out; diagnostic logging and session expiry on the way
// back. Extra options append interceptors after the defaults.
func NewPipeline(cfg Config, store SessionStore, nav Navigator, opts ...Option) (*Client, error) {
	c, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	c.requestInterceptors = append([]RequestInterceptor{
		RequestID(),
		SessionAuth(store, c.log),
	}, c.requestInterceptors...)
	c.responseInterceptors = append([]ResponseInterceptor{
		DiagnosticLogging(c.log),
		SessionExpiry(store, nav, c.log),
	}, c.responseInterceptors...)
	return c, nil
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.config.clone()
}

// Do executes req through the pipeline. On failure the error is an
// *Error; for status failures the response is returned alongside it.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	req = req.clone()

	ctx, span := c.tracer.Start(ctx, "HTTP "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.Path),
		))
	defer span.End()
	record := c.metrics.begin(ctx, req.Method)

	resp, err := c.roundTrip(ctx, &req)

	for _, interceptor := range c.responseInterceptors {
		if replaced := interceptor(ctx, &req, resp, err); replaced != nil {
			err = replaced
		}
	}

	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}
	if err != nil {
		span.SetAttributes(attribute.String("error.type", KindOf(err).String()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	record(resp, err)
	return resp, err
}

func (c *Client) roundTrip(ctx context.Context, req *Request) (*Response, error) {
	for _, interceptor := range c.requestInterceptors {
		if err := interceptor(ctx, req); err != nil {
			return nil, NewConstructionError(fmt.Errorf("request interceptor: %w", err))
		}
	}

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, NewConstructionError(err)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, NewNoResponseError(err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewNoResponseError(fmt.Errorf("read response body: %w", err))
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    flattenHeaders(httpResp.Header),
		Body:       body,
	}
	if classErr := ClassifyStatusCode(httpResp.StatusCode, body); classErr != nil {
		return resp, classErr
	}
	return resp, nil
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req *Request) (*http.Request, error) {
	if req.Method == "" {
		return nil, fmt.Errorf("method is required")
	}
	if strings.HasPrefix(req.Path, "http://") || strings.HasPrefix(req.Path, "https://") {
		return nil, fmt.Errorf("path %q must be relative to the base URL", req.Path)
	}
	url := strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if _, multipart := req.Body.(*MultipartBody); multipart || (contentType != "" && httpReq.Header.Get("Content-Type") == "") {
		httpReq.Header.Set("Content-Type", contentType)
	}

	c.propagator.Inject(ctx, propagation.HeaderCarrier(httpReq.Header))
	return httpReq, nil
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case *MultipartBody:
		return v.encode()
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
