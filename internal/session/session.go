// Package session keeps per-run session state. The only persisted value is
// a single configuration URL per session — the harness's equivalent of the
// viewer's session storage — with no format guarantee beyond "valid URL",
// which callers check themselves when they care.
package session

import "sync"

// Store holds one configuration URL per session ID. Safe for concurrent
// use; independent scenario runs share one store.
type Store struct {
	mu   sync.RWMutex
	urls map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{urls: make(map[string]string)}
}

// Put records the configuration URL for a session, replacing any previous
// value.
func (s *Store) Put(sessionID, configURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls[sessionID] = configURL
}

// Get returns the configuration URL recorded for a session.
func (s *Store) Get(sessionID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	url, ok := s.urls[sessionID]
	return url, ok
}

// Delete removes a session's entry. Deleting an absent session is a no-op.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.urls, sessionID)
}
