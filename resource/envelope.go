package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope is a page of items as returned by a list endpoint. It decodes
// either a bare JSON array or an object of the form
//
//	{"data": [...], "totalPages": 3, "totalItems": 25}
//
// where "total" is accepted in place of "totalItems". Absent totals stay nil.
type Envelope[T any] struct {
	Items      []T
	TotalPages *int
	TotalItems *int
}

// ErrEnvelopeShape is returned when a response is neither an array nor an
// object with a "data" array.
var ErrEnvelopeShape = errors.New("resource: response is neither an array nor an object with a data array")

// Pages returns TotalPages, or 0 when absent.
func (e Envelope[T]) Pages() int {
	if e.TotalPages == nil {
		return 0
	}
	return *e.TotalPages
}

// Total returns TotalItems, or 0 when absent.
func (e Envelope[T]) Total() int {
	if e.TotalItems == nil {
		return 0
	}
	return *e.TotalItems
}

// NewEnvelope builds an envelope with both totals set.
func NewEnvelope[T any](items []T, totalPages, totalItems int) Envelope[T] {
	return Envelope[T]{Items: items, TotalPages: &totalPages, TotalItems: &totalItems}
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Envelope[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*e = Envelope[T]{}
		return nil
	}

	switch b[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return fmt.Errorf("resource: decode items: %w", err)
		}
		*e = Envelope[T]{Items: items}
		return nil
	case '{':
	default:
		return ErrEnvelopeShape
	}

	var raw struct {
		Data       json.RawMessage `json:"data"`
		TotalPages *int            `json:"totalPages"`
		TotalItems *int            `json:"totalItems"`
		Total      *int            `json:"total"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("resource: decode envelope: %w", err)
	}
	if raw.Data == nil {
		return ErrEnvelopeShape
	}

	var items []T
	data := bytes.TrimSpace(raw.Data)
	if !bytes.Equal(data, []byte("null")) {
		if len(data) == 0 || data[0] != '[' {
			return ErrEnvelopeShape
		}
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("resource: decode items: %w", err)
		}
	}

	totalItems := raw.TotalItems
	if totalItems == nil {
		totalItems = raw.Total
	}
	if raw.TotalPages != nil && *raw.TotalPages < 0 {
		return fmt.Errorf("resource: negative totalPages %d", *raw.TotalPages)
	}
	if totalItems != nil && *totalItems < 0 {
		return fmt.Errorf("resource: negative totalItems %d", *totalItems)
	}

	*e = Envelope[T]{Items: items, TotalPages: raw.TotalPages, TotalItems: totalItems}
	return nil
}

// MarshalJSON implements json.Marshaler using the object form.
func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	items := e.Items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(struct {
		Data       []T  `json:"data"`
		TotalPages *int `json:"totalPages,omitempty"`
		TotalItems *int `json:"totalItems,omitempty"`
	}{items, e.TotalPages, e.TotalItems})
}
