package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Pranshu115/tatva/logger"
	"github.com/Pranshu115/tatva/redis"
)

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestStore_EmptyByDefault(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tok, err := s.Token(ctx)
	if err != nil || tok != "" {
		t.Fatalf("Token() = %q, %v; want empty", tok, err)
	}
	user, err := s.User(ctx)
	if err != nil || user != nil {
		t.Fatalf("User() = %v, %v; want nil", user, err)
	}
	if _, err := s.Require(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Require() error = %v, want ErrNoSession", err)
	}
}

func TestStore_SetSession(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.SetSession(ctx, "abc", Profile{"id": 1}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	tok, _ := s.Token(ctx)
	if tok != "abc" {
		t.Errorf("token = %q, want abc", tok)
	}
	user, _ := s.User(ctx)
	if user.ID() != 1 {
		t.Errorf("user id = %v, want 1", user.ID())
	}
	sess, err := s.Require(ctx)
	if err != nil {
		t.Fatalf("Require: %v", err)
	}
	if sess.ExpiresAt != nil {
		t.Errorf("opaque token should carry no expiry, got %v", sess.ExpiresAt)
	}
}

func TestStore_SetSessionEmptyToken(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.SetSession(ctx, "keep", Profile{"id": 7})

	if err := s.SetSession(ctx, "", Profile{"id": 8}); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
	user, _ := s.User(ctx)
	if user.ID() != 7 {
		t.Errorf("rejected write must leave the previous session, got %v", user)
	}
}

func TestStore_ClearSessionIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.SetSession(ctx, "abc", Profile{"id": 1})

	for i := 0; i < 2; i++ {
		if err := s.ClearSession(ctx); err != nil {
			t.Fatalf("ClearSession #%d: %v", i+1, err)
		}
		if tok, _ := s.Token(ctx); tok != "" {
			t.Fatalf("token after clear #%d = %q", i+1, tok)
		}
		if user, _ := s.User(ctx); user != nil {
			t.Fatalf("user after clear #%d = %v", i+1, user)
		}
	}
}

func TestStore_ReturnedProfileIsACopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.SetSession(ctx, "abc", Profile{"id": 1})

	user, _ := s.User(ctx)
	user["id"] = 99
	again, _ := s.User(ctx)
	if again.ID() != 1 {
		t.Errorf("mutating a returned profile changed the store: %v", again)
	}
}

func TestStore_JWTExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	s := NewMemoryStore(WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	tok := signedToken(t, "42", now.Add(time.Hour))
	if err := s.SetSession(ctx, tok, Profile{"id": 42}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	sess, _ := s.Require(ctx)
	if sess.ExpiresAt == nil || !sess.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("ExpiresAt = %v", sess.ExpiresAt)
	}

	clock = now.Add(2 * time.Hour)
	if got, _ := s.Token(ctx); got != "" {
		t.Errorf("expired session should be absent, got token %q", got)
	}
}

func TestStore_AlreadyExpiredJWTStoredButAbsent(t *testing.T) {
	now := time.Now()
	backend := NewMemoryBackend()
	s := NewStore(backend)
	ctx := context.Background()

	tok := signedToken(t, "1", now.Add(-time.Minute))
	if err := s.SetSession(ctx, tok, Profile{"id": 1}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if backend.Len() != 1 {
		t.Errorf("backend entries = %d, want 1", backend.Len())
	}
	if got, _ := s.Token(ctx); got != "" {
		t.Errorf("expired token reported as %q", got)
	}
}

func TestStore_ExpiredReadDoesNotWrite(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	backend := NewMemoryBackend()
	s := NewStore(backend, WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	if err := s.SetSession(ctx, signedToken(t, "7", now.Add(time.Hour)), nil); err != nil {
		t.Fatal(err)
	}
	clock = now.Add(2 * time.Hour)
	if sess, err := s.Session(ctx); err != nil || sess != nil {
		t.Fatalf("Session = %v, %v", sess, err)
	}
	if backend.Len() != 1 {
		t.Errorf("read removed the document, len = %d", backend.Len())
	}
}

func TestStore_WithKey(t *testing.T) {
	backend := NewMemoryBackend()
	a := NewStore(backend, WithKey("a"))
	b := NewStore(backend, WithKey("b"))
	ctx := context.Background()

	_ = a.SetSession(ctx, "ta", nil)
	if tok, _ := b.Token(ctx); tok != "" {
		t.Errorf("stores with different keys must not share sessions, got %q", tok)
	}
	if backend.Len() != 1 {
		t.Errorf("backend entries = %d, want 1", backend.Len())
	}
}

func TestStore_ConcurrentWritesKeepDocumentWhole(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%5 == 0 {
				_ = s.ClearSession(ctx)
				return
			}
			_ = s.SetSession(ctx, "tok", Profile{"id": i})
		}(i)
	}
	wg.Wait()

	sess, err := s.Session(ctx)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if sess != nil && (sess.Token == "" || sess.User == nil) {
		t.Fatalf("partial session observed: %+v", sess)
	}
}

type failingBackend struct{ err error }

func (f failingBackend) Load(context.Context, string) (*Session, error) { return nil, f.err }
func (f failingBackend) Save(context.Context, string, *Session, time.Duration) error {
	return f.err
}
func (f failingBackend) Delete(context.Context, string) error { return f.err }

func TestStore_BackendErrorsPropagate(t *testing.T) {
	boom := errors.New("disk gone")
	s := NewStore(failingBackend{err: boom})
	ctx := context.Background()

	if _, err := s.Token(ctx); !errors.Is(err, boom) {
		t.Errorf("Token error = %v", err)
	}
	if err := s.SetSession(ctx, "x", nil); !errors.Is(err, boom) {
		t.Errorf("SetSession error = %v", err)
	}
	if err := s.ClearSession(ctx); !errors.Is(err, boom) {
		t.Errorf("ClearSession error = %v", err)
	}
}

func TestStore_RedisBackend(t *testing.T) {
	mini := miniredis.RunT(t)
	client, err := redis.New(redis.Config{Addr: mini.Addr()}, logger.Nop())
	if err != nil {
		t.Fatalf("redis.New: %v", err)
	}
	s := NewStore(redis.NewStore[Session](client), WithKey("tatva:test"))
	defer s.Close()
	ctx := context.Background()

	if err := s.SetSession(ctx, "abc", Profile{"id": 1}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if !mini.Exists("tatva:test") {
		t.Fatal("expected session key in redis")
	}
	user, _ := s.User(ctx)
	// JSON numbers decode as float64.
	if user.ID() != float64(1) {
		t.Errorf("user id = %#v", user.ID())
	}
	if err := s.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if mini.Exists("tatva:test") {
		t.Error("expected key removed after ClearSession")
	}
}

func TestStore_RedisTTLFollowsToken(t *testing.T) {
	mini := miniredis.RunT(t)
	client, _ := redis.New(redis.Config{Addr: mini.Addr(), KeyPrefix: "p"}, logger.Nop())
	s := NewStore(redis.NewStore[Session](client))
	defer s.Close()

	tok := signedToken(t, "1", time.Now().Add(10*time.Minute))
	if err := s.SetSession(context.Background(), tok, nil); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	ttl := mini.TTL("p:" + DefaultKey)
	if ttl <= 0 || ttl > 10*time.Minute {
		t.Errorf("redis ttl = %v, want within (0, 10m]", ttl)
	}
}
