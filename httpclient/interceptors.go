package httpclient

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Pranshu115/tatva/logger"
)

// RequestInterceptor runs before a request is sent. Returning an error
// aborts the call with a construction failure.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor runs after every call, with either the response or
// the failure that ended it. A non-nil return replaces err; returning nil
// keeps the outcome unchanged, so an interceptor can never turn a failure
// into a success.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response, err error) error

// TokenSource yields the current session token, "" when logged out.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// SessionClearer destroys the current session.
type SessionClearer interface {
	ClearSession(ctx context.Context) error
}

// SessionStore is the part of the session store the pipeline uses.
type SessionStore interface {
	TokenSource
	SessionClearer
}

// RequestID sets X-Request-ID to a fresh UUID unless the caller set one.
func RequestID() RequestInterceptor {
	return func(_ context.Context, req *Request) error {
		if req.Header(HeaderRequestID) == "" {
			req.SetHeader(HeaderRequestID, uuid.NewString())
		}
		return nil
	}
}

// SessionAuth attaches "Bearer <token>" when a session exists. It never
// fails: a missing session, or one that cannot be read, sends the request
// without credentials.
func SessionAuth(tokens TokenSource, log *logger.Logger) RequestInterceptor {
	if log == nil {
		log = logger.Nop()
	}
	return func(ctx context.Context, req *Request) error {
		token, err := tokens.Token(ctx)
		if err != nil {
			log.WithContext(ctx).Warn("session lookup failed, sending request without credentials",
				logger.ErrorFields("session_auth", err))
			return nil
		}
		if token != "" {
			req.SetHeader(HeaderAuthorization, "Bearer "+token)
		}
		return nil
	}
}

// DiagnosticLogging logs every failed call with its kind, status and
// server message.
func DiagnosticLogging(log *logger.Logger) ResponseInterceptor {
	if log == nil {
		log = logger.Nop()
	}
	return func(ctx context.Context, req *Request, resp *Response, err error) error {
		fields := logger.Fields(
			logger.FieldMethod, req.Method,
			logger.FieldPath, req.Path,
			logger.FieldRequestID, req.Header(HeaderRequestID),
		)
		if err == nil {
			if resp != nil {
				fields[logger.FieldStatusCode] = resp.StatusCode
			}
			log.Debug("request succeeded", fields)
			return nil
		}

		kind := KindOf(err)
		fields[logger.FieldErrorKind] = kind.String()
		var e *Error
		if errors.As(err, &e) {
			if e.StatusCode > 0 {
				fields[logger.FieldStatusCode] = e.StatusCode
			}
			if e.ServerMessage != "" {
				fields[logger.FieldServerMsg] = e.ServerMessage
			}
		}

		switch kind {
		case KindUnauthorized:
			log.Info("request unauthorized", fields)
		case KindForbidden:
			log.Warn("access forbidden", fields)
		case KindNotFound:
			log.Warn("resource not found", fields)
		case KindServer:
			log.Error("server error", fields)
		case KindNoResponse:
			log.Warn("no response from server", logger.ErrorFields("request", err), fields)
		default:
			log.Warn("request failed", logger.ErrorFields("request", err), fields)
		}
		return nil
	}
}

// SessionExpiry clears the session and navigates to the login surface on
// every 401. The failure still reaches the caller.
func SessionExpiry(store SessionClearer, nav Navigator, log *logger.Logger) ResponseInterceptor {
	if log == nil {
		log = logger.Nop()
	}
	if nav == nil {
		nav = NopNavigator{}
	}
	return func(ctx context.Context, _ *Request, _ *Response, err error) error {
		if !IsUnauthorized(err) {
			return nil
		}
		if clearErr := store.ClearSession(ctx); clearErr != nil {
			log.Error("failed to clear session after 401", logger.ErrorFields("session_expiry", clearErr))
		}
		nav.NavigateToLogin(ctx)
		return nil
	}
}
