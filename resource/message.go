package resource

import (
	"errors"
	"strings"

	"github.com/Pranshu115/tatva/httpclient"
)

// FallbackMessage is the state error used when a failure carries no text.
const FallbackMessage = "Something went wrong"

// Message derives the human-readable error for a failed call: the
// server-provided message, then the transport message, then FallbackMessage.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if msg := httpclient.ServerMessage(err); msg != "" {
		return msg
	}
	var e *httpclient.Error
	if errors.As(err, &e) && strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackMessage
}
