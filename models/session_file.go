package models

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// FileSessionStore keeps the token in a single msgpack-encoded file.
// This is the terminal client's equivalent of the browser cookie.
//
// Writes go to a temp file in the same directory and are renamed into
// place, so a crash mid-write never leaves a truncated record behind.
type FileSessionStore struct {
	mu    sync.Mutex
	path  string
	clock Clock
}

// NewFileSessionStore returns a store backed by path. The file and its
// directory are created on the first Set.
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path, clock: time.Now}
}

// WithClock replaces the store's clock; for tests.
func (s *FileSessionStore) WithClock(clock Clock) *FileSessionStore {
	s.clock = clock
	return s
}

// Path returns the backing file path.
func (s *FileSessionStore) Path() string {
	return s.path
}

func (s *FileSessionStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read()
	if err != nil {
		logger.LogErr(err, "failed to read session file", "path", s.path)
		return "", false
	}

	if !rec.live(s.clock()) {
		if rec.Token != "" {
			// Expired - drop it so the next read is cheap
			if err := s.remove(); err != nil {
				logger.LogErr(err, "failed to remove expired session file", "path", s.path)
			}
		}
		return "", false
	}
	return rec.Token, true
}

func (s *FileSessionStore) Set(token string, ttlDays int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, err := TokenExpiry(s.clock(), ttlDays)
	if err != nil {
		return err
	}

	data, err := msgpack.Marshal(sessionRecord{Token: token, ExpiresAt: expires.UTC()})
	if err != nil {
		return serr.Wrap(err, "failed to msgpack encode session")
	}

	return s.write(data)
}

func (s *FileSessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove()
}

// read loads the record; a missing file is an empty record
func (s *FileSessionStore) read() (sessionRecord, error) {
	var rec sessionRecord

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rec, nil
		}
		return rec, serr.Wrap(err, "failed to read session file")
	}

	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return sessionRecord{}, serr.Wrap(err, "failed to msgpack decode session")
	}
	return rec, nil
}

func (s *FileSessionStore) write(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return serr.Wrap(err, "failed to create session directory")
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return serr.Wrap(err, "failed to create temp session file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return serr.Wrap(err, "failed to write session file")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return serr.Wrap(err, "failed to set session file mode")
	}
	if err := tmp.Close(); err != nil {
		return serr.Wrap(err, "failed to close session file")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return serr.Wrap(err, "failed to move session file into place")
	}
	return nil
}

func (s *FileSessionStore) remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return serr.Wrap(err, "failed to remove session file")
	}
	return nil
}
