package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	headerRequestID     = "X-Request-ID"

	contentTypeJSON = "application/json"
	bearerPrefix    = "Bearer "
)

// Request describes one API call. It is not modified after dispatch; the
// Coordinator retries with a clone.
type Request struct {
	ID           string
	Method       string
	Path         string
	Query        url.Values
	Header       http.Header
	Body         []byte
	RequiresAuth bool
}

// URL joins base, path and the encoded query.
func (r *Request) URL(base string) string {
	u := strings.TrimRight(base, "/") + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	return u
}

// Bearer returns the token from the Authorization header, or "".
func (r *Request) Bearer() string {
	return strings.TrimPrefix(r.Header.Get(headerAuthorization), bearerPrefix)
}

func (r *Request) withBearer(token string) *Request {
	c := *r
	c.Header = r.Header.Clone()
	c.Header.Set(headerAuthorization, bearerPrefix+token)
	if r.Body != nil {
		c.Body = append([]byte(nil), r.Body...)
	}
	return &c
}

// TokenSource yields the current access token, "" when logged out.
type TokenSource interface {
	AccessToken(ctx context.Context) string
}

// Builder creates Requests.
type Builder struct {
	tokens TokenSource
}

func NewBuilder(tokens TokenSource) *Builder {
	return &Builder{tokens: tokens}
}

type BuildOption func(*Request)

// WithQuery sets the query string. Empty values are sent as given; callers
// drop absent filters before building.
func WithQuery(q url.Values) BuildOption {
	return func(r *Request) { r.Query = q }
}

// Build returns a Request for method and path. body is JSON-encoded for
// methods other than GET and DELETE, and ignored for those two. When
// requiresAuth is set and a token is stored, the bearer header is added;
// without a token the request goes out unauthenticated and the server's
// 401 drives the refresh path.
func (b *Builder) Build(ctx context.Context, method, path string, body any, requiresAuth bool, opts ...BuildOption) (*Request, error) {
	req := &Request{
		ID:           uuid.NewString(),
		Method:       method,
		Path:         path,
		Header:       make(http.Header),
		RequiresAuth: requiresAuth,
	}
	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set(headerAccept, contentTypeJSON)
	req.Header.Set(headerRequestID, req.ID)

	if requiresAuth && b.tokens != nil {
		if token := b.tokens.AccessToken(ctx); token != "" {
			req.Header.Set(headerAuthorization, bearerPrefix+token)
		}
	}

	if body != nil && method != http.MethodGet && method != http.MethodDelete {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		req.Body = raw
	}

	for _, opt := range opts {
		opt(req)
	}
	return req, nil
}
