package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession is returned when an operation needs an access token and there is none
var ErrNoSession = errors.New("no active session")

// Claims is the subset of access token claims shown to the user.
// The token is not verified; the server remains the authority.
type Claims struct {
	Subject   string
	UserID    string
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now.
// Tokens without an expiry never expire.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// accessClaims mirrors the claims issued by the backend's JWT access tokens
type accessClaims struct {
	jwt.RegisteredClaims
	UserID interface{} `json:"user_id,omitempty"`
}

// Claims decodes the current access token. Opaque tokens yield an error.
func (m *Manager) Claims() (*Claims, error) {
	token := m.AccessToken()
	if token == "" {
		return nil, ErrNoSession
	}
	return ParseClaims(token)
}

// ParseClaims decodes a JWT access token without verifying its signature
func ParseClaims(token string) (*Claims, error) {
	var ac accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &ac); err != nil {
		return nil, fmt.Errorf("failed to decode access token: %w", err)
	}

	c := &Claims{Subject: ac.Subject}
	if ac.ExpiresAt != nil {
		c.ExpiresAt = ac.ExpiresAt.Time
	}
	switch id := ac.UserID.(type) {
	case string:
		c.UserID = id
	case float64:
		c.UserID = strconv.FormatFloat(id, 'f', -1, 64)
	}

	return c, nil
}
