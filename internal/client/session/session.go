// Package session persists the storefront login session: access token,
// refresh token, user profile and the cached cart reference.
//
// The Store reads and writes its repository on every call and keeps no
// copy in memory, so two Stores over the same SQLite file (two CLI
// processes, say) always agree.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/daastan/internal/client/config"
	"github.com/dmitrijs2005/daastan/internal/client/models"
	"github.com/dmitrijs2005/daastan/internal/client/repositories/slots"
	"github.com/dmitrijs2005/daastan/internal/logging"
)

// ErrUserWithoutToken is returned by Save when the result would hold a user
// profile but no access token.
var ErrUserWithoutToken = errors.New("session: user profile requires an access token")

// Session is a snapshot of the persisted state. Empty strings and a nil
// User mean absent.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

// LoggedIn reports whether an access token is present.
func (s Session) LoggedIn() bool { return s.AccessToken != "" }

// Update lists the fields to overwrite. Nil fields are left untouched.
type Update struct {
	AccessToken  *string
	RefreshToken *string
	User         *models.User
}

// Store is the Session Store. It is safe for concurrent use.
type Store struct {
	repo slots.Repository
	keys config.StorageKeys
	log  logging.Logger
}

type Option func(*Store)

// WithLogger sets the logger used to report storage failures on Load.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore returns a Store over repo using the given slot names.
func NewStore(repo slots.Repository, keys config.StorageKeys, opts ...Option) *Store {
	s := &Store{repo: repo, keys: keys, log: logging.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Load returns the persisted session. It never fails: storage errors are
// logged and read as an empty session, and a user slot is ignored unless
// an access token is present.
func (s *Store) Load(ctx context.Context) Session {
	all, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error(ctx, "session load failed", "error", err)
		return Session{}
	}

	sess := Session{
		AccessToken:  string(all[s.keys.AccessToken]),
		RefreshToken: string(all[s.keys.RefreshToken]),
	}
	if sess.AccessToken == "" {
		return sess
	}
	if raw := all[s.keys.User]; len(raw) > 0 {
		var u models.User
		if err := json.Unmarshal(raw, &u); err != nil {
			s.log.Warn(ctx, "stored user profile is unreadable", "error", err)
		} else {
			sess.User = &u
		}
	}
	return sess
}

// Save merges u into the persisted session in one atomic write. An empty
// token string deletes that slot.
func (s *Store) Save(ctx context.Context, u Update) error {
	if u.AccessToken == nil && u.RefreshToken == nil && u.User == nil {
		return nil
	}

	if u.User != nil {
		var token string
		if u.AccessToken != nil {
			token = *u.AccessToken
		} else {
			token = s.Load(ctx).AccessToken
		}
		if token == "" {
			return ErrUserWithoutToken
		}
	} else if u.AccessToken != nil && *u.AccessToken == "" {
		// dropping the token drops the profile with it
		return s.Clear(ctx)
	}

	b := slots.Batch{}
	if u.AccessToken != nil {
		b[s.keys.AccessToken] = tokenValue(*u.AccessToken)
	}
	if u.RefreshToken != nil {
		b[s.keys.RefreshToken] = tokenValue(*u.RefreshToken)
	}
	if u.User != nil {
		raw, err := json.Marshal(u.User)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		b[s.keys.User] = raw
	}

	if err := s.repo.Apply(ctx, b); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear deletes all four session slots at once. Clearing an empty session
// is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	b := slots.Batch{}
	for _, k := range s.keys.All() {
		b[k] = nil
	}
	if err := s.repo.Apply(ctx, b); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// AccessToken returns the current access token or "".
func (s *Store) AccessToken(ctx context.Context) string {
	return s.Load(ctx).AccessToken
}

// RefreshToken returns the current refresh token or "".
func (s *Store) RefreshToken(ctx context.Context) string {
	return s.Load(ctx).RefreshToken
}

// IsAuthenticated reports whether an access token is stored.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.Load(ctx).LoggedIn()
}

// CurrentUser returns the stored profile, or nil when logged out.
func (s *Store) CurrentUser(ctx context.Context) *models.User {
	return s.Load(ctx).User
}

// Role returns the stored user's role. ok is false when no user is stored.
func (s *Store) Role(ctx context.Context) (role models.Role, ok bool) {
	u := s.CurrentUser(ctx)
	if u == nil {
		return 0, false
	}
	return u.Role, true
}

// IsAdmin reports whether the stored user has the admin role.
func (s *Store) IsAdmin(ctx context.Context) bool {
	role, ok := s.Role(ctx)
	return ok && role.IsAdmin()
}

// SaveCart caches the raw cart document in the cart slot.
func (s *Store) SaveCart(ctx context.Context, raw []byte) error {
	var v []byte
	if len(raw) > 0 {
		v = append([]byte(nil), raw...)
	}
	if err := s.repo.Apply(ctx, slots.Batch{s.keys.Cart: v}); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Cart returns the cached cart document, or nil.
func (s *Store) Cart(ctx context.Context) []byte {
	v, err := s.repo.Get(ctx, s.keys.Cart)
	if err != nil {
		s.log.Error(ctx, "cart load failed", "error", err)
		return nil
	}
	if len(v) == 0 {
		return nil
	}
	return v
}

func tokenValue(t string) []byte {
	if t == "" {
		return nil
	}
	return []byte(t)
}
