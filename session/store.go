package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Pranshu115/tatva/logger"
)

// DefaultKey is the backend key the session document is stored under.
const DefaultKey = "tatva:session"

var (
	// ErrNoSession is returned by Require when no user is logged in.
	ErrNoSession = errors.New("session: no active session")
	// ErrEmptyToken is returned by SetSession for an empty token.
	ErrEmptyToken = errors.New("session: token must not be empty")
)

// Store owns the single process-wide session. Token, User, SetSession and
// ClearSession are its read/write surface; every write replaces or removes
// the whole document so token and profile never diverge.
type Store struct {
	backend Backend
	key     string
	log     *logger.Logger
	now     func() time.Time

	// mu serializes writes; each mutation is one Save or Delete.
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log.WithComponent("session")
		}
	}
}

// WithClock overrides time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store on top of backend.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		log:     logger.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewMemoryStore creates a Store backed by a fresh MemoryBackend.
func NewMemoryStore(opts ...Option) *Store {
	return NewStore(NewMemoryBackend(), opts...)
}

// Session returns the current session, or (nil, nil) when none exists.
// An expired session is reported as absent; reads never write, so the
// document stays until the next login, logout or 401.
func (s *Store) Session(ctx context.Context) (*Session, error) {
	sess, err := s.backend.Load(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("session: load: %w", err)
	}
	if sess == nil || sess.Token == "" {
		return nil, nil
	}
	if sess.Expired(s.now()) {
		s.log.Debug("session expired")
		return nil, nil
	}
	return sess, nil
}

// Require returns the current session or ErrNoSession.
func (s *Store) Require(ctx context.Context) (*Session, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNoSession
	}
	return sess, nil
}

// Token returns the session token, or "" when not logged in.
func (s *Store) Token(ctx context.Context) (string, error) {
	sess, err := s.Session(ctx)
	if err != nil || sess == nil {
		return "", err
	}
	return sess.Token, nil
}

// User returns the cached profile, or nil when not logged in.
func (s *Store) User(ctx context.Context) (Profile, error) {
	sess, err := s.Session(ctx)
	if err != nil || sess == nil {
		return nil, err
	}
	return sess.User, nil
}

// SetSession stores token and user as one document. When the token is a JWT
// carrying an exp claim the session expires with it; a token that is
// already expired is still stored and reads report it as absent.
func (s *Store) SetSession(ctx context.Context, token string, user Profile) error {
	if token == "" {
		return ErrEmptyToken
	}

	sess := &Session{Token: token, User: user}
	var ttl time.Duration
	if claims, err := ParseClaims(token); err == nil && !claims.ExpiresAt.IsZero() {
		exp := claims.ExpiresAt
		sess.ExpiresAt = &exp
		ttl = max(exp.Sub(s.now()), 0)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Save(ctx, s.key, sess, ttl); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	s.log.Debug("session stored", logger.Fields(logger.FieldUserID, user.ID()))
	return nil
}

// ClearSession removes token and profile. Clearing an empty store is not an error.
func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	s.log.Debug("session cleared")
	return nil
}

// Close releases the backend if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
