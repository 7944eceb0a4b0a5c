// Package memory provides an in-process session store
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/flavorforge/recipeai/internal/ports/outbound"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// SessionStore keeps session values in a map. Nothing survives the process.
type SessionStore struct {
	data  map[string]entry
	mutex sync.RWMutex
	now   func() time.Time
}

// NewSessionStore creates a new in-memory session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

var _ outbound.SessionStore = (*SessionStore)(nil)

// Get retrieves a value; expired entries are removed on read
func (s *SessionStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	item, exists := s.data[key]
	if !exists {
		return nil, outbound.ErrKeyNotFound
	}
	if item.expired(s.now()) {
		delete(s.data, key)
		return nil, outbound.ErrKeyNotFound
	}

	out := make([]byte, len(item.value))
	copy(out, item.value)
	return out, nil
}

// Set stores a value; a zero ttl never expires
func (s *SessionStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = entry{value: stored, expiresAt: expiresAt}
	return nil
}

// Delete removes keys; missing keys are ignored
func (s *SessionStore) Delete(ctx context.Context, keys ...string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}
