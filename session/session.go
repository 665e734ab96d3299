package session

import (
	"maps"
	"time"
)

// Profile is the cached user profile returned by the backend at login.
type Profile map[string]any

// ID returns the profile's "id" field, or nil.
func (p Profile) ID() any {
	if p == nil {
		return nil
	}
	return p["id"]
}

// Session is the authenticated identity of the current user.
type Session struct {
	Token     string     `json:"token"`
	User      Profile    `json:"user,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the session carries an expiry that lies before now.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.User = maps.Clone(s.User)
	if s.ExpiresAt != nil {
		t := *s.ExpiresAt
		c.ExpiresAt = &t
	}
	return &c
}
