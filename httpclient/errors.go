package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Kind classifies the outcome of a failed call. Every failure carries
// exactly one Kind.
type Kind int

const (
	// KindUnauthorized is a 401: the session is invalid or expired.
	KindUnauthorized Kind = iota + 1
	// KindForbidden is a 403.
	KindForbidden
	// KindNotFound is a 404.
	KindNotFound
	// KindServer is any 5xx.
	KindServer
	// KindStatus is any other non-2xx status.
	KindStatus
	// KindNoResponse means no response arrived: network failure or timeout.
	KindNoResponse
	// KindConstruction means the request failed before it was sent.
	KindConstruction
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server_error"
	case KindStatus:
		return "other_status"
	case KindNoResponse:
		return "no_response"
	case KindConstruction:
		return "construction"
	default:
		return "unknown"
	}
}

// NoResponseMessage is the message of every no-response failure.
const NoResponseMessage = "No response from server. Please check your network connection."

// Error is a classified HTTP client failure.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// StatusCode is the HTTP status code (0 when no response arrived).
	StatusCode int
	// Message describes the error. For status failures it is the server
	// message when present, otherwise the status text.
	Message string
	// ServerMessage is the "message" (or "error") field of the response body, if any.
	ServerMessage string
	// Body is the raw response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewNoResponseError wraps a transport failure.
func NewNoResponseError(err error) *Error {
	return &Error{
		Kind:    KindNoResponse,
		Message: NoResponseMessage,
		Err:     err,
	}
}

// NewConstructionError wraps a failure raised before dispatch.
func NewConstructionError(err error) *Error {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindConstruction {
		return e
	}
	return &Error{
		Kind:    KindConstruction,
		Message: err.Error(),
		Err:     err,
	}
}

// ClassifyStatusCode converts an HTTP status into a typed error.
// Returns nil for 2xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	var kind Kind
	switch {
	case statusCode == http.StatusUnauthorized:
		kind = KindUnauthorized
	case statusCode == http.StatusForbidden:
		kind = KindForbidden
	case statusCode == http.StatusNotFound:
		kind = KindNotFound
	case statusCode >= 500:
		kind = KindServer
	default:
		kind = KindStatus
	}

	serverMsg := extractServerMessage(body)
	msg := serverMsg
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", statusCode)
	}

	return &Error{
		Kind:          kind,
		StatusCode:    statusCode,
		Message:       msg,
		ServerMessage: serverMsg,
		Body:          body,
	}
}

// extractServerMessage reads {"message": "..."}, {"error": "..."} or
// {"error": {"message": "..."}} from a JSON error body.
func extractServerMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if m := strings.TrimSpace(payload.Message); m != "" {
		return m
	}
	if len(payload.Error) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload.Error, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload.Error, &nested); err == nil {
		return strings.TrimSpace(nested.Message)
	}
	return ""
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ServerMessage returns the server-provided message carried by err, if any.
func ServerMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.ServerMessage
	}
	return ""
}

// IsUnauthorized checks if an error is a 401.
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }

// IsForbidden checks if an error is a 403.
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }

// IsNotFound checks if an error is a 404.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsServerError checks if an error is a 5xx.
func IsServerError(err error) bool { return KindOf(err) == KindServer }

// IsNoResponse checks if no response arrived (network failure or timeout).
func IsNoResponse(err error) bool { return KindOf(err) == KindNoResponse }

// IsTimeout checks if a no-response failure was caused by a deadline.
func IsTimeout(err error) bool {
	if !IsNoResponse(err) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// IsConstruction checks if the request failed before dispatch.
func IsConstruction(err error) bool { return KindOf(err) == KindConstruction }
