package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned by ParseClaims when the token is not a JWT.
var ErrOpaqueToken = errors.New("session: token is not a JWT")

// Claims are the registered claims read from a JWT session token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ParseClaims reads a JWT's registered claims without verifying its signature.
func ParseClaims(token string) (Claims, error) {
	parser := jwt.NewParser()
	var rc jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(token, &rc); err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Claims{}, ErrOpaqueToken
		}
		return Claims{}, fmt.Errorf("session: parse token claims: %w", err)
	}

	var c Claims
	c.Subject = rc.Subject
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}
