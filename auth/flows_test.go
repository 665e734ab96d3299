package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Pranshu115/tatva/httpclient"
	"github.com/Pranshu115/tatva/session"
)

func newFlows(t *testing.T, handler http.HandlerFunc) (*Flows, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	client, err := httpclient.NewPipeline(httpclient.Config{BaseURL: srv.URL}, store, httpclient.NopNavigator{})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return New(client, store), store
}

func TestLogin_StoresSession(t *testing.T) {
	flows, store := newFlows(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		var creds Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Username != "u" || creds.Password != "p" {
			t.Errorf("credentials = %+v", creds)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"token":"abc","user":{"id":1},"message":"welcome"}`)
	})
	ctx := context.Background()

	res, err := flows.Login(ctx, Credentials{Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "abc" || res.Body["message"] != "welcome" {
		t.Errorf("result = %+v", res)
	}

	token, _ := store.Token(ctx)
	if token != "abc" {
		t.Errorf("token = %q", token)
	}
	user, _ := store.User(ctx)
	if id, ok := user.ID().(float64); !ok || id != 1 {
		t.Errorf("user = %v", user)
	}
	if !flows.IsAuthenticated(ctx) {
		t.Error("IsAuthenticated = false")
	}
	if u, _ := flows.CurrentUser(ctx); u.ID() == nil {
		t.Errorf("CurrentUser = %v", u)
	}
}

func TestLogin_NoTokenLeavesSession(t *testing.T) {
	flows, store := newFlows(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"requiresVerification":true}`)
	})
	ctx := context.Background()

	res, err := flows.Login(ctx, Credentials{Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.HasToken() || res.Body["requiresVerification"] != true {
		t.Errorf("result = %+v", res)
	}
	if s, _ := store.Session(ctx); s != nil {
		t.Errorf("session = %+v, want none", s)
	}
}

func TestLogin_FailureLeavesSession(t *testing.T) {
	flows, store := newFlows(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"Invalid credentials"}`)
	})
	ctx := context.Background()
	if err := store.SetSession(ctx, "old", session.Profile{"id": 9}); err != nil {
		t.Fatal(err)
	}

	_, err := flows.Login(ctx, Credentials{Username: "u", Password: "wrong"})
	if httpclient.ServerMessage(err) != "Invalid credentials" {
		t.Fatalf("err = %v", err)
	}
	if token, _ := store.Token(ctx); token != "old" {
		t.Errorf("token = %q, want unchanged", token)
	}
}

func TestLogin_InvalidCredentialsNotSent(t *testing.T) {
	var calls atomic.Int32
	flows, _ := newFlows(t, func(http.ResponseWriter, *http.Request) { calls.Add(1) })

	_, err := flows.Login(context.Background(), Credentials{Username: "u"})
	if !httpclient.IsConstruction(err) {
		t.Fatalf("err = %v, want construction error", err)
	}
	if calls.Load() != 0 {
		t.Error("request was sent")
	}
}

func TestLogin_StoreFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"token":"abc","user":{"id":1}}`)
	}))
	defer srv.Close()

	client, err := httpclient.New(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	flows := New(client, failingStore{})

	res, err := flows.Login(context.Background(), Credentials{Username: "u", Password: "p"})
	if err == nil {
		t.Fatal("expected store error")
	}
	if res.Token != "abc" {
		t.Errorf("result should still carry the response, got %+v", res)
	}
}

func TestLogin_ExpiredTokenStillSucceeds(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	flows, store := newFlows(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"token":"`+tok+`","user":{"id":1}}`)
	})
	ctx := context.Background()

	res, err := flows.Login(ctx, Credentials{Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != tok {
		t.Errorf("result token = %q", res.Token)
	}
	if got, _ := store.Token(ctx); got != "" {
		t.Errorf("expired session reported token %q", got)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	flows, store := newFlows(t, func(http.ResponseWriter, *http.Request) {
		t.Error("logout must not call the backend")
	})
	ctx := context.Background()
	if err := store.SetSession(ctx, "abc", session.Profile{"id": 1}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := flows.Logout(ctx); err != nil {
			t.Fatalf("Logout #%d: %v", i+1, err)
		}
	}
	if flows.IsAuthenticated(ctx) {
		t.Error("still authenticated after logout")
	}
	if u, err := flows.CurrentUser(ctx); err != nil || u != nil {
		t.Errorf("CurrentUser = %v, %v", u, err)
	}
}

func TestRegisterAndVerify(t *testing.T) {
	flows, store := newFlows(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/register":
			_, _ = io.WriteString(w, `{"message":"check your email"}`)
		case "/auth/verify":
			_, _ = io.WriteString(w, `{"verified":true}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	res, err := flows.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret"})
	if err != nil || res.Body["message"] != "check your email" {
		t.Fatalf("Register = %+v, %v", res, err)
	}
	res, err = flows.Verify(ctx, VerifyRequest{Email: "asha@example.com", Code: "123456"})
	if err != nil || res.Body["verified"] != true {
		t.Fatalf("Verify = %+v, %v", res, err)
	}
	if s, _ := store.Session(ctx); s != nil {
		t.Errorf("session = %+v, want none", s)
	}

	if _, err := flows.Register(ctx, RegisterRequest{Name: "Asha", Email: "nope", Password: "x"}); !httpclient.IsConstruction(err) {
		t.Errorf("invalid email err = %v", err)
	}
}

func TestRegister_WithTokenSignsIn(t *testing.T) {
	flows, store := newFlows(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"accessToken":"reg-token","user":{"id":"u-1"}}`)
	})
	ctx := context.Background()

	if _, err := flows.Register(ctx, RegisterRequest{Name: "A", Email: "a@example.com", Password: "pw"}); err != nil {
		t.Fatal(err)
	}
	if token, _ := store.Token(ctx); token != "reg-token" {
		t.Errorf("token = %q", token)
	}
}

func TestRefresh(t *testing.T) {
	flows, store := newFlows(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"user":{"id":1,"name":"Asha"}}`)
	})
	ctx := context.Background()

	if _, err := flows.Refresh(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Refresh without session err = %v", err)
	}

	if err := store.SetSession(ctx, "abc", session.Profile{"id": 1}); err != nil {
		t.Fatal(err)
	}
	user, err := flows.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if user["name"] != "Asha" {
		t.Errorf("user = %v", user)
	}
	if cached, _ := store.User(ctx); cached["name"] != "Asha" {
		t.Errorf("cached user = %v", cached)
	}
	if token, _ := store.Token(ctx); token != "abc" {
		t.Errorf("token = %q", token)
	}
}

func TestRefresh_UnauthorizedClearsSession(t *testing.T) {
	flows, store := newFlows(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	ctx := context.Background()
	if err := store.SetSession(ctx, "stale", nil); err != nil {
		t.Fatal(err)
	}

	_, err := flows.Refresh(ctx)
	if !httpclient.IsUnauthorized(err) {
		t.Fatalf("err = %v", err)
	}
	if flows.IsAuthenticated(ctx) {
		t.Error("session should be cleared by the pipeline")
	}
}

type failingStore struct{}

func (failingStore) Session(context.Context) (*session.Session, error) { return nil, nil }
func (failingStore) SetSession(context.Context, string, session.Profile) error {
	return errors.New("disk full")
}
func (failingStore) ClearSession(context.Context) error { return nil }
