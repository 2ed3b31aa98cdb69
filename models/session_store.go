package models

import (
	"fmt"
	"sync"
	"time"

	"github.com/rohanthewiz/serr"
)

const (
	// TokenTTLDays is how long a stored login token stays valid (7 days)
	TokenTTLDays = 7

	// SessionSlot names the persisted slot holding the token
	SessionSlot = "jwt_token"
)

// SessionStore persists the opaque auth token on the client side.
// Implementations never inspect the token.
type SessionStore interface {
	// Get returns the stored token. ok is false when nothing is stored,
	// the token is empty, or it has expired.
	Get() (token string, ok bool)
	// Set stores token, replacing any previous one, expiring ttlDays from now.
	Set(token string, ttlDays int) error
	// Clear removes the token immediately.
	Clear() error
}

// Clock returns the current time. Stores take one so tests can move time.
type Clock func() time.Time

// TokenExpiry computes the expiry for a token written at now.
// ttlDays below one is rejected.
func TokenExpiry(now time.Time, ttlDays int) (time.Time, error) {
	if ttlDays < 1 {
		return time.Time{}, serr.New(fmt.Sprintf("session ttl must be at least one day, got %d", ttlDays))
	}
	return now.Add(time.Duration(ttlDays) * 24 * time.Hour), nil
}

// sessionRecord is the persisted form of a token in file and memory stores
type sessionRecord struct {
	Token     string    `msgpack:"token"`
	ExpiresAt time.Time `msgpack:"expires_at"`
}

func (r sessionRecord) live(now time.Time) bool {
	return r.Token != "" && now.Before(r.ExpiresAt)
}

// MemorySessionStore keeps the token in process memory.
// Used by tests and by the "memory" session backend.
type MemorySessionStore struct {
	mu     sync.Mutex
	clock  Clock
	record sessionRecord
}

// NewMemorySessionStore creates an empty store on the wall clock.
func NewMemorySessionStore() *MemorySessionStore {
	return NewMemorySessionStoreWithClock(time.Now)
}

// NewMemorySessionStoreWithClock creates an empty store using clock.
func NewMemorySessionStoreWithClock(clock Clock) *MemorySessionStore {
	return &MemorySessionStore{clock: clock}
}

func (s *MemorySessionStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.record.live(s.clock()) {
		s.record = sessionRecord{}
		return "", false
	}
	return s.record.Token, true
}

func (s *MemorySessionStore) Set(token string, ttlDays int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, err := TokenExpiry(s.clock(), ttlDays)
	if err != nil {
		return err
	}
	s.record = sessionRecord{Token: token, ExpiresAt: expires}
	return nil
}

func (s *MemorySessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record = sessionRecord{}
	return nil
}

// ExpiresAt reports when the stored token expires; zero if none is stored.
func (s *MemorySessionStore) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.ExpiresAt
}
