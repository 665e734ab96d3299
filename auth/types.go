package auth

import (
	"encoding/json"

	"github.com/Pranshu115/tatva/session"
)

// Credentials are the login form values.
type Credentials struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Company  string `json:"company,omitempty"`
}

// VerifyRequest confirms an email address with the code sent to it.
type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,notblank"`
}

// Result is the response of an auth call. Body holds the full decoded
// response; Token and User are the fields the session is built from.
type Result struct {
	Token string
	User  session.Profile
	Body  map[string]any
}

// HasToken reports whether the response carried a session token.
func (r Result) HasToken() bool { return r.Token != "" }

var tokenKeys = []string{"token", "accessToken", "access_token"}

func decodeResult(raw json.RawMessage) (Result, error) {
	var res Result
	if len(raw) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(raw, &res.Body); err != nil {
		return Result{}, err
	}
	for _, k := range tokenKeys {
		if tok, ok := res.Body[k].(string); ok && tok != "" {
			res.Token = tok
			break
		}
	}
	if user, ok := res.Body["user"].(map[string]any); ok {
		res.User = session.Profile(user)
	}
	return res, nil
}
