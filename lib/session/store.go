// Package session holds the server side of the login sessions: a keyed store
// of session tickets with sliding expiry, plus the persisted cookie-signing
// key. A cookie alone is never enough; the ticket it references must still
// exist here, which is what makes logout immediate and replay-proof.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]time.Time),
	}
}

// Create registers a new authenticated session and returns its ID.
func (s *Store) Create() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	id := hex.EncodeToString(buf)

	s.mu.Lock()
	s.sessions[id] = time.Now().Add(s.ttl)
	s.mu.Unlock()
	return id, nil
}

// Touch reports whether the session is still live and, if so, renews its
// expiry (sliding window). Expired entries are removed on access.
func (s *Store) Touch(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.sessions[id]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(s.sessions, id)
		return false
	}
	s.sessions[id] = time.Now().Add(s.ttl)
	return true
}

// Destroy invalidates the session immediately. Destroying an unknown ID is a
// no-op.
func (s *Store) Destroy(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartSweeper periodically drops expired entries so abandoned sessions do
// not accumulate between accesses. Returns when ctx is done.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Store) sweep() {
	now := time.Now()
	s.mu.Lock()
	for id, expiry := range s.sessions {
		if now.After(expiry) {
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()
}
