package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields the backend embeds in its tokens.
type Claims struct {
	UserID int64 `json:"user_id"`
	Role   Role  `json:"role"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the token payload without verifying its signature.
// The client never holds the signing key, so the result is informational only
// and must not be used for access decisions.
func ParseClaims(token string) (Claims, error) {
	var c Claims
	if token == "" {
		return c, ErrInvalidToken
	}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}
	return c, nil
}

// Expiry returns the token expiration time, or the zero time if the token has none.
func (c Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// ExpiredAt reports whether the token is past its expiration at t.
// Tokens without an exp claim never expire.
func (c Claims) ExpiredAt(t time.Time) bool {
	exp := c.Expiry()
	return !exp.IsZero() && !t.Before(exp)
}
