package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/daastan/internal/client/models"
	"github.com/dmitrijs2005/daastan/internal/client/session"
)

const (
	pathLogin          = "/auth/login"
	pathRegister       = "/auth/register"
	pathMe             = "/auth/me"
	pathChangePassword = "/auth/change-password"
	pathProfile        = "/auth/profile"
)

var (
	ErrNoAccessToken = errors.New("login response has no access token")
	ErrNoUser        = errors.New("login response has no user")
)

// Login authenticates and persists the access token, refresh token and
// user in one write. On any failure the stored session is left as it was.
func (s *Storefront) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	resp, err := call[models.LoginResponse](ctx, s, http.MethodPost, pathLogin, models.Credentials{Username: username, Password: password}, false)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, ErrNoAccessToken
	}
	// tokens without a profile would sit next to a previous account's user
	if resp.User == nil {
		return nil, ErrNoUser
	}

	if err := s.store.Save(ctx, session.Update{
		AccessToken:  &resp.AccessToken,
		RefreshToken: &resp.RefreshToken,
		User:         resp.User,
	}); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "logged in", "username", username)
	return &resp, nil
}

func (s *Storefront) Register(ctx context.Context, req models.RegisterRequest) (*models.UserResponse, error) {
	resp, err := call[models.UserResponse](ctx, s, http.MethodPost, pathRegister, req, false)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the current profile and refreshes the stored copy.
func (s *Storefront) Me(ctx context.Context) (*models.User, error) {
	u, err := call[models.User](ctx, s, http.MethodGet, pathMe, nil, true)
	if err != nil {
		return nil, err
	}
	s.rememberUser(ctx, &u)
	return &u, nil
}

// Logout clears the stored session. It never calls the server.
func (s *Storefront) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "logged out")
	return nil
}

func (s *Storefront) ChangePassword(ctx context.Context, oldPassword, newPassword string) (*models.Message, error) {
	resp, err := call[models.Message](ctx, s, http.MethodPut, pathChangePassword, models.PasswordChange{OldPassword: oldPassword, NewPassword: newPassword}, true)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile sends the non-nil fields of p and stores the returned user.
func (s *Storefront) UpdateProfile(ctx context.Context, p models.ProfileUpdate) (*models.UserResponse, error) {
	resp, err := call[models.UserResponse](ctx, s, http.MethodPut, pathProfile, p, true)
	if err != nil {
		return nil, err
	}
	s.rememberUser(ctx, resp.User)
	return &resp, nil
}

// rememberUser stores u when a session is active. A session that ended in
// the meantime is not resurrected.
func (s *Storefront) rememberUser(ctx context.Context, u *models.User) {
	if u == nil {
		return
	}
	err := s.store.Save(ctx, session.Update{User: u})
	switch {
	case err == nil, errors.Is(err, session.ErrUserWithoutToken):
	default:
		s.log.Warn(ctx, "failed to store user profile", "error", err)
	}
}
