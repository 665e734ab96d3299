package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Store keeps one JSON document of type V per key. Its method set
// matches session.Backend, so Store[session.Session] is a session
// backend shared by every process pointing at the same server.
type Store[V any] struct {
	client *Client
}

// NewStore creates a Store on client. The Store owns the client and
// closes it in Close.
func NewStore[V any](client *Client) *Store[V] {
	return &Store[V]{client: client}
}

// Load returns the document under key, or (nil, nil) when it is absent
// or has expired.
func (s *Store[V]) Load(ctx context.Context, key string) (*V, error) {
	raw, err := s.client.rdb.Get(ctx, s.client.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: load %q: %w", key, err)
	}

	v := new(V)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, fmt.Errorf("redis: decode %q: %w", key, err)
	}
	return v, nil
}

// Save replaces the document under key. A positive ttl lets redis expire
// it; zero keeps it until deleted.
func (s *Store[V]) Save(ctx context.Context, key string, val *V, ttl time.Duration) error {
	if ttl < 0 {
		return fmt.Errorf("redis: save %q: negative ttl %s", key, ttl)
	}
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("redis: encode %q: %w", key, err)
	}
	if err := s.client.rdb.Set(ctx, s.client.key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis: save %q: %w", key, err)
	}
	return nil
}

// Delete removes key. A missing key is not an error.
func (s *Store[V]) Delete(ctx context.Context, key string) error {
	if err := s.client.rdb.Del(ctx, s.client.key(key)).Err(); err != nil {
		return fmt.Errorf("redis: delete %q: %w", key, err)
	}
	return nil
}

// Close closes the client.
func (s *Store[V]) Close() error {
	return s.client.Close()
}
