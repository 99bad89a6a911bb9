package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return tok
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	iat := exp.Add(-15 * time.Minute)
	raw := signedToken(t, jwt.RegisteredClaims{
		Subject:   "u-1",
		IssuedAt:  jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	c, err := ParseClaims(raw)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.Subject)
	assert.True(t, exp.Equal(c.ExpiresAt))
	assert.True(t, iat.Equal(c.IssuedAt))
	assert.False(t, c.Expired(time.Now()))
	assert.True(t, c.Expired(exp.Add(time.Second)))
}

func TestParseClaims_NoExpiryNeverExpires(t *testing.T) {
	c, err := ParseClaims(signedToken(t, jwt.RegisteredClaims{Subject: "u-1"}))
	require.NoError(t, err)
	assert.False(t, c.Expired(time.Now().Add(100*365*24*time.Hour)))
}

func TestParseClaims_Garbage(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	require.Error(t, err)
}
