package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/daastan/internal/client/session"
	"github.com/dmitrijs2005/daastan/internal/logging"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// DefaultRefreshPath is the token refresh endpoint.
const DefaultRefreshPath = "/auth/refresh"

var (
	errNoRefreshToken      = errors.New("no refresh token stored")
	errRefreshWithoutToken = errors.New("refresh response has no access_token")
)

// SessionStore is the part of session.Store the Coordinator needs.
type SessionStore interface {
	TokenSource
	RefreshToken(ctx context.Context) string
	Save(ctx context.Context, u session.Update) error
	Clear(ctx context.Context) error
}

// Coordinator sends requests through an Executor and recovers from an
// expired access token: one refresh, one retry. Concurrent 401s holding the
// same refresh token share a single refresh call.
type Coordinator struct {
	exec        Executor
	store       SessionStore
	builder     *Builder
	refreshPath string
	group       singleflight.Group
	log         logging.Logger
}

type CoordinatorOption func(*Coordinator)

func WithRefreshPath(p string) CoordinatorOption {
	return func(c *Coordinator) { c.refreshPath = p }
}

func WithCoordinatorLogger(l logging.Logger) CoordinatorOption {
	return func(c *Coordinator) { c.log = l }
}

func NewCoordinator(exec Executor, store SessionStore, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		exec:        exec,
		store:       store,
		builder:     NewBuilder(store),
		refreshPath: DefaultRefreshPath,
		log:         logging.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Builder returns the Builder bound to the session store.
func (c *Coordinator) Builder() *Builder { return c.builder }

// Send builds a request and runs it through Do.
func (c *Coordinator) Send(ctx context.Context, method, path string, body any, requiresAuth bool, opts ...BuildOption) (*Response, error) {
	req, err := c.builder.Build(ctx, method, path, body, requiresAuth, opts...)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// Do executes req. On a 401 for an authenticated request it refreshes the
// access token, persists it and retries once with the new bearer header.
// A second 401 is returned as a plain *HTTPError. If the refresh fails the
// session is cleared and ErrSessionExpired is returned; a cancelled ctx
// leaves the session alone and returns the context error.
func (c *Coordinator) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.exec.Execute(ctx, req)
	if !req.RequiresAuth || !errors.Is(err, ErrUnauthorized) {
		return resp, err
	}

	token, err := c.refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Warn(ctx, "token refresh failed, clearing session", "path", req.Path, "error", err)
		if cerr := c.store.Clear(ctx); cerr != nil {
			c.log.Error(ctx, "failed to clear session", "error", cerr)
		}
		return nil, ErrSessionExpired
	}

	resp, err = c.exec.Execute(ctx, req.withBearer(token))
	var he *HTTPError
	if errors.As(err, &he) && he.authFailure {
		return nil, he.settled()
	}
	return resp, err
}

func (c *Coordinator) refresh(ctx context.Context) (string, error) {
	rt := c.store.RefreshToken(ctx)
	if rt == "" {
		return "", errNoRefreshToken
	}

	// The shared call outlives any single waiter so one caller leaving does
	// not fail the others.
	ch := c.group.DoChan(rt, func() (any, error) {
		return c.doRefresh(context.WithoutCancel(ctx), rt)
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Coordinator) doRefresh(ctx context.Context, refreshToken string) (string, error) {
	req, err := c.builder.Build(ctx, http.MethodPost, c.refreshPath, nil, false)
	if err != nil {
		return "", err
	}
	req.Header.Set(headerAuthorization, bearerPrefix+refreshToken)

	resp, err := c.exec.Execute(ctx, req)
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}

	var tok oauth2.Token
	if err := resp.Decode(&tok); err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errRefreshWithoutToken
	}

	// A logout or another login while the refresh was in flight wins: the
	// token is only used for this call's retry.
	if c.store.RefreshToken(ctx) != refreshToken {
		c.log.Info(ctx, "session changed during refresh, not storing new token")
		return tok.AccessToken, nil
	}
	// A failed write still lets this call retry with the new token; the
	// next call will refresh again.
	if err := c.store.Save(ctx, session.Update{AccessToken: &tok.AccessToken}); err != nil {
		c.log.Error(ctx, "failed to persist refreshed token", "error", err)
	}
	c.log.Debug(ctx, "access token refreshed")
	return tok.AccessToken, nil
}
