package app

import (
	"net/http"

	"github.com/Pranshu115/tatva/httpclient"
	"github.com/Pranshu115/tatva/logger"
	"github.com/Pranshu115/tatva/session"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger    *logger.Logger
	navigator httpclient.Navigator
	transport http.RoundTripper
	store     *session.Store
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger instead of building one from the config.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithNavigator sets what happens when the session expires. By default
// the login URL is logged.
func WithNavigator(n httpclient.Navigator) Option {
	return func(o *appOptions) { o.navigator = n }
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *appOptions) { o.transport = rt }
}

// WithSessionStore uses store instead of opening the configured backend.
// The App does not close a store passed this way.
func WithSessionStore(store *session.Store) Option {
	return func(o *appOptions) { o.store = store }
}
