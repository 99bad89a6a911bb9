// Package services exposes the storefront operations used by the CLI.
// Every call goes through the api.Coordinator, so token refresh is
// transparent to callers; the only session error they see is
// api.ErrSessionExpired.
package services

import (
	"context"
	"errors"
	"net/url"

	"github.com/dmitrijs2005/daastan/internal/client/api"
	"github.com/dmitrijs2005/daastan/internal/client/session"
	"github.com/dmitrijs2005/daastan/internal/logging"
)

// ErrMissingID is returned before any request when a path identifier is
// empty.
var ErrMissingID = errors.New("id is required")

// Sender sends one API call. *api.Coordinator implements it.
type Sender interface {
	Send(ctx context.Context, method, path string, body any, requiresAuth bool, opts ...api.BuildOption) (*api.Response, error)
}

// Storefront holds the domain operations.
type Storefront struct {
	api   Sender
	store *session.Store
	log   logging.Logger
}

type Option func(*Storefront)

func WithLogger(l logging.Logger) Option {
	return func(s *Storefront) { s.log = l }
}

func New(sender Sender, store *session.Store, opts ...Option) *Storefront {
	s := &Storefront{api: sender, store: store, log: logging.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Session returns the store the operations read and write.
func (s *Storefront) Session() *session.Store { return s.store }

// call sends a request and decodes the 2xx body into T.
func call[T any](ctx context.Context, s *Storefront, method, path string, body any, requiresAuth bool, opts ...api.BuildOption) (T, error) {
	var out T
	resp, err := s.api.Send(ctx, method, path, body, requiresAuth, opts...)
	if err != nil {
		return out, err
	}
	if err := resp.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

// resource joins a collection path and an escaped identifier.
func resource(collection, id string, rest ...string) (string, error) {
	if id == "" {
		return "", ErrMissingID
	}
	p := collection + "/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + r
	}
	return p, nil
}
