package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the client can read from an access token without the
// server's key. Nothing here is verified; use it for display only.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim is before now. Tokens
// without exp never expire.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseClaims decodes the registered claims of a JWT without checking its
// signature.
func ParseClaims(raw string) (Claims, error) {
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &rc); err != nil {
		return Claims{}, fmt.Errorf("parse token claims: %w", err)
	}

	c := Claims{Subject: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}
