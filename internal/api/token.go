package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can read out of its bearer token without the
// server's signing key. Used for display and expiry warnings only; the server
// remains the authority on whether the token is accepted.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// InspectToken decodes the JWT claims without verifying the signature
func InspectToken(token string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}

// ExpiresSoon reports whether the token expires within the given window
func (t *TokenInfo) ExpiresSoon(window time.Duration) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return time.Until(t.ExpiresAt) < window
}
