package session

import (
	"context"
	"time"
)

// Backend persists the session document under a key.
//
// Load returns (nil, nil) when the key does not exist. A ttl of 0 means no
// expiration. Deleting a missing key is not an error.
type Backend interface {
	Load(ctx context.Context, key string) (*Session, error)
	Save(ctx context.Context, key string, val *Session, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
