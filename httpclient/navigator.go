package httpclient

import "context"

// Navigator performs the full redirect to the login surface after the
// session has been invalidated.
type Navigator interface {
	NavigateToLogin(ctx context.Context)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context)

// NavigateToLogin calls f(ctx).
func (f NavigatorFunc) NavigateToLogin(ctx context.Context) { f(ctx) }

// NopNavigator ignores navigation requests.
type NopNavigator struct{}

// NavigateToLogin does nothing.
func (NopNavigator) NavigateToLogin(context.Context) {}

// RedirectNavigator hands a fixed login URL to Redirect.
type RedirectNavigator struct {
	LoginURL string
	Redirect func(ctx context.Context, url string)
}

// NavigateToLogin calls Redirect with LoginURL.
func (n RedirectNavigator) NavigateToLogin(ctx context.Context) {
	if n.Redirect != nil {
		n.Redirect(ctx, n.LoginURL)
	}
}
