// Package file persists session values in a JSON file so a login survives
// between invocations of the shell
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/flavorforge/recipeai/internal/ports/outbound"
	"go.uber.org/zap"
)

type record struct {
	Value     []byte     `json:"value"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// SessionStore stores every key in one JSON document at path.
// The file is written with mode 0600 since it holds a bearer token.
type SessionStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
	now    func() time.Time
}

// NewSessionStore creates a file-backed session store
func NewSessionStore(path string, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{path: path, logger: logger, now: time.Now}
}

var _ outbound.SessionStore = (*SessionStore)(nil)

// Path returns the backing file location
func (s *SessionStore) Path() string {
	return s.path
}

// Get retrieves a value
func (s *SessionStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	rec, ok := records[key]
	if !ok || (rec.ExpiresAt != nil && s.now().After(*rec.ExpiresAt)) {
		return nil, outbound.ErrKeyNotFound
	}
	return rec.Value, nil
}

// Set stores a value; a zero ttl never expires
func (s *SessionStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	rec := record{Value: value}
	if ttl > 0 {
		exp := s.now().Add(ttl)
		rec.ExpiresAt = &exp
	}
	records[key] = rec
	return s.save(records)
}

// Delete removes keys and deletes the file once it is empty
func (s *SessionStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	for _, key := range keys {
		delete(records, key)
	}
	if len(records) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		return nil
	}
	return s.save(records)
}

func (s *SessionStore) load() (map[string]record, error) {
	records := make(map[string]record)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return records, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if err := json.Unmarshal(data, &records); err != nil {
		// A corrupt file is treated as an empty session
		s.logger.Warn("Ignoring unreadable session file", zap.String("path", s.path), zap.Error(err))
		return make(map[string]record), nil
	}
	return records, nil
}

func (s *SessionStore) save(records map[string]record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}
