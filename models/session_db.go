package models

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// DDLCreateSessionTable holds one row per named slot. The client only ever
// uses SessionSlot, but keying by slot keeps the table reusable.
const DDLCreateSessionTable = `
CREATE TABLE IF NOT EXISTS session_tokens (
    slot        VARCHAR PRIMARY KEY,
    token       VARCHAR NOT NULL,
    expires_at  TIMESTAMP NOT NULL,
    updated_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// DBSessionStore keeps the token in an embedded DuckDB database.
type DBSessionStore struct {
	mu    sync.Mutex
	db    *sql.DB
	slot  string
	clock Clock
}

// OpenDBSessionStore opens (or creates) the DuckDB database at path and
// migrates the session table. An empty path opens an in-memory database.
func OpenDBSessionStore(path string) (*DBSessionStore, error) {
	db, err := openDuckDB(path, sessionMigrations)
	if err != nil {
		return nil, serr.Wrap(err, "failed to open session database")
	}
	return &DBSessionStore{db: db, slot: SessionSlot, clock: time.Now}, nil
}

// WithClock replaces the store's clock; for tests.
func (s *DBSessionStore) WithClock(clock Clock) *DBSessionStore {
	s.clock = clock
	return s
}

// Close releases the database handle.
func (s *DBSessionStore) Close() error {
	if err := s.db.Close(); err != nil {
		return serr.Wrap(err, "failed to close session database")
	}
	return nil
}

func (s *DBSessionStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		token     string
		expiresAt time.Time
	)
	err := s.db.QueryRow(`SELECT token, expires_at FROM session_tokens WHERE slot = ?`, s.slot).
		Scan(&token, &expiresAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.LogErr(serr.Wrap(err, "failed to query session token"), "slot", s.slot)
		}
		return "", false
	}

	rec := sessionRecord{Token: token, ExpiresAt: expiresAt}
	if !rec.live(s.clock().UTC()) {
		if err := s.delete(); err != nil {
			logger.LogErr(err, "failed to delete expired session token", "slot", s.slot)
		}
		return "", false
	}
	return token, true
}

func (s *DBSessionStore) Set(token string, ttlDays int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, err := TokenExpiry(s.clock(), ttlDays)
	if err != nil {
		return err
	}

	// TIMESTAMP has no zone; everything is written and compared in UTC
	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO session_tokens (slot, token, expires_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		s.slot, token, expires.UTC(), s.clock().UTC())
	if err != nil {
		return serr.Wrap(err, "failed to store session token")
	}
	return nil
}

func (s *DBSessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delete()
}

func (s *DBSessionStore) delete() error {
	if _, err := s.db.Exec(`DELETE FROM session_tokens WHERE slot = ?`, s.slot); err != nil {
		return serr.Wrap(err, "failed to delete session token")
	}
	return nil
}
