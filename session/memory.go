package session

import (
	"context"
	"sync"
	"time"
)

// MemoryBackend keeps the session in process memory. It enforces TTL on Load.
type MemoryBackend struct {
	mu    sync.RWMutex
	items map[string]memEntry
	now   func() time.Time
}

type memEntry struct {
	val       *Session
	expiresAt time.Time // zero means no expiration
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		items: make(map[string]memEntry),
		now:   time.Now,
	}
}

// Load returns a copy of the stored session, or (nil, nil) if missing or expired.
func (m *MemoryBackend) Load(_ context.Context, key string) (*Session, error) {
	m.mu.RLock()
	entry, ok := m.items[key]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return nil, nil
	}
	return entry.val.clone(), nil
}

// Save stores a copy of val.
func (m *MemoryBackend) Save(_ context.Context, key string, val *Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memEntry{val: val.clone()}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.items[key] = entry
	return nil
}

// Delete removes the session stored under key.
func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

var _ Backend = (*MemoryBackend)(nil)
