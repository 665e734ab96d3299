package services

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID identifies a backend entity. Backends send ids either as JSON
// strings or as numbers; both decode to the same ID.
type ID string

// String returns the id.
func (id ID) String() string { return string(id) }

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("services: id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}
