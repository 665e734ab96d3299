package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Pranshu115/tatva/endpoints"
	"github.com/Pranshu115/tatva/httpclient"
	"github.com/Pranshu115/tatva/logger"
	"github.com/Pranshu115/tatva/session"
	"github.com/Pranshu115/tatva/validation"
)

// ErrNoToken is returned when an operation needs a session token and
// none is stored.
var ErrNoToken = errors.New("auth: not logged in")

// SessionStore is the part of the session store the flows write to.
type SessionStore interface {
	Session(ctx context.Context) (*session.Session, error)
	SetSession(ctx context.Context, token string, user session.Profile) error
	ClearSession(ctx context.Context) error
}

// Flows runs the authentication calls against the backend.
type Flows struct {
	client *httpclient.Client
	store  SessionStore
	log    *logger.Logger
}

// Option configures Flows.
type Option func(*Flows)

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(f *Flows) {
		if log != nil {
			f.log = log
		}
	}
}

// New creates auth flows over client, writing sessions to store.
func New(client *httpclient.Client, store SessionStore, opts ...Option) *Flows {
	f := &Flows{client: client, store: store, log: logger.Nop()}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.WithComponent("auth")
	return f
}

// Login authenticates with creds. When the response carries a token the
// token and user are stored together. The full response is returned
// either way.
func (f *Flows) Login(ctx context.Context, creds Credentials) (Result, error) {
	res, err := f.call(ctx, endpoints.Login, creds)
	if err != nil {
		return Result{}, err
	}
	if err := f.establish(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}

// Register creates an account. Backends that sign the user in on
// registration return a token, which is stored as Login does.
func (f *Flows) Register(ctx context.Context, req RegisterRequest) (Result, error) {
	res, err := f.call(ctx, endpoints.Register, req)
	if err != nil {
		return Result{}, err
	}
	if err := f.establish(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}

// Verify confirms an email address. It does not touch the session.
func (f *Flows) Verify(ctx context.Context, req VerifyRequest) (Result, error) {
	return f.call(ctx, endpoints.Verify, req)
}

// Logout clears the session. It makes no backend call and succeeds when
// no session exists.
func (f *Flows) Logout(ctx context.Context) error {
	if err := f.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("auth: logout: %w", err)
	}
	f.log.WithContext(ctx).Info("logged out")
	return nil
}

// CurrentUser returns the cached user profile, nil when logged out.
func (f *Flows) CurrentUser(ctx context.Context) (session.Profile, error) {
	s, err := f.store.Session(ctx)
	if err != nil || s == nil {
		return nil, err
	}
	return s.User, nil
}

// IsAuthenticated reports whether a session token is stored.
func (f *Flows) IsAuthenticated(ctx context.Context) bool {
	s, err := f.store.Session(ctx)
	return err == nil && s != nil && s.Token != ""
}

// Refresh fetches the signed-in user's profile and replaces the cached
// one, keeping the token.
func (f *Flows) Refresh(ctx context.Context) (session.Profile, error) {
	s, err := f.store.Session(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil || s.Token == "" {
		return nil, ErrNoToken
	}

	resp, err := httpclient.Get[session.Profile](ctx, f.client, endpoints.Me)
	if err != nil {
		return nil, err
	}
	user := resp.Data
	if nested, ok := user["user"].(map[string]any); ok {
		user = session.Profile(nested)
	}
	if err := f.store.SetSession(ctx, s.Token, user); err != nil {
		return nil, fmt.Errorf("auth: store profile: %w", err)
	}
	return user, nil
}

func (f *Flows) call(ctx context.Context, path string, body any) (Result, error) {
	if err := validation.Validate(body); err != nil {
		return Result{}, httpclient.NewConstructionError(err)
	}
	resp, err := httpclient.Post[json.RawMessage](ctx, f.client, path, body)
	if err != nil {
		return Result{}, err
	}
	res, err := decodeResult(resp.Data)
	if err != nil {
		return Result{}, fmt.Errorf("auth: decode response: %w", err)
	}
	return res, nil
}

func (f *Flows) establish(ctx context.Context, res Result) error {
	if !res.HasToken() {
		return nil
	}
	if err := f.store.SetSession(ctx, res.Token, res.User); err != nil {
		return fmt.Errorf("auth: store session: %w", err)
	}
	f.log.WithContext(ctx).Info("session established",
		logger.Fields(logger.FieldUserID, res.User.ID()))
	return nil
}
