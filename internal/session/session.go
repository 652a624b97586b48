// Package session holds the current API key and keeps it in sync with
// persistent storage, so a restarted UI can resume without re-entering it.
package session

import (
	"fmt"
	"sync"

	"tally/internal/storage"
)

// StorageKey is where the API key lives in the key-value store.
const StorageKey = "apiKey"

// Session is the process-wide API key state. The in-memory value and the
// persisted value move together on every mutation.
type Session struct {
	mu    sync.Mutex
	key   string
	store storage.KeyValue
}

func New(store storage.KeyValue) *Session {
	return &Session{store: store}
}

// Key returns the current API key, "" when logged out.
func (s *Session) Key() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// SetKey stores the key in memory and in persistent storage.
func (s *Session) SetKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
	if err := s.store.Set(StorageKey, key); err != nil {
		return fmt.Errorf("persist api key: %w", err)
	}
	return nil
}

// LoadFromStorage repopulates the in-memory key from persistent storage.
// An absent or empty stored value never overwrites a key already in memory.
func (s *Session) LoadFromStorage() error {
	v, ok, err := s.store.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("load api key: %w", err)
	}
	if !ok || v == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = v
	return nil
}

// ClearKey empties the in-memory key and removes the persisted value.
func (s *Session) ClearKey() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = ""
	if err := s.store.Delete(StorageKey); err != nil {
		return fmt.Errorf("remove api key: %w", err)
	}
	return nil
}
