package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/daastan/internal/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/dmitrijs2005/daastan/internal/client/api"

// Response is a 2xx outcome. Body is nil when the server sent no content.
type Response struct {
	Status int
	Header http.Header
	Body   json.RawMessage
}

// Decode unmarshals the body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Executor runs one Request. *Client implements it.
type Executor interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// Client sends Requests to the REST API. It holds no session state.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
	log     logging.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTracer sets the tracer used for the per-request span.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Execute sends req once and classifies the outcome:
//   - network failure, unreadable or malformed body: *TransportError
//   - 2xx: *Response
//   - 401 on an authenticated request: *HTTPError matching ErrUnauthorized
//   - any other status: *HTTPError
func (c *Client) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, req.Method+" "+req.Path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.String("url.path", req.Path),
		attribute.String("request.id", req.ID),
		attribute.Bool("request.requires_auth", req.RequiresAuth),
	)

	resp, err := c.do(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Debug(ctx, "api request failed", "id", req.ID, "method", req.Method, "path", req.Path, "error", err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.Status))
	c.log.Debug(ctx, "api request done", "id", req.ID, "method", req.Method, "path", req.Path, "status", resp.Status)
	return resp, nil
}

func (c *Client) do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	hreq, err := http.NewRequestWithContext(ctx, req.Method, req.URL(c.baseURL), body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	hreq.Header = req.Header.Clone()
	if hreq.Header == nil {
		hreq.Header = make(http.Header)
	}

	hresp, err := c.http.Do(hreq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer hresp.Body.Close()

	raw, err := io.ReadAll(hresp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && !json.Valid(raw) {
		return nil, &TransportError{Err: fmt.Errorf("%w: status %d", ErrMalformedBody, hresp.StatusCode)}
	}

	if hresp.StatusCode >= 200 && hresp.StatusCode < 300 {
		r := &Response{Status: hresp.StatusCode, Header: hresp.Header}
		if len(raw) > 0 {
			r.Body = json.RawMessage(raw)
		}
		return r, nil
	}

	return nil, &HTTPError{
		Status:      hresp.StatusCode,
		Message:     errorMessage(raw),
		authFailure: hresp.StatusCode == http.StatusUnauthorized && req.RequiresAuth,
	}
}

// errorMessage picks "error", then "message", then the default.
func errorMessage(raw []byte) string {
	var payload struct {
		Error   any `json:"error"`
		Message any `json:"message"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &payload) != nil {
		return DefaultErrorMessage
	}
	for _, v := range []any{payload.Error, payload.Message} {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return DefaultErrorMessage
}
