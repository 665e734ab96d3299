package validation

import (
	"errors"
	"strings"
)

// FieldError is one failed rule. Field is the dotted wire name of the
// field (api.base_url, items[0].quantity).
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + " " + e.Message
}

// Error is returned by Validate when at least one field is invalid.
type Error struct {
	Fields []FieldError `json:"fields"`
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed validation.
func (e *Error) Has(field string) bool {
	_, ok := e.Message(field)
	return ok
}

// Message returns the message of the first rule field failed.
func (e *Error) Message(field string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message, true
		}
	}
	return "", false
}

// Fields returns the field errors carried by err, nil when err is not a
// validation failure.
func Fields(err error) []FieldError {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
