package views

import (
	"context"

	"klikk/models"
)

// scriptedAuth answers Login with a fixed token or error and counts calls.
type scriptedAuth struct {
	token string
	err   error
	calls []models.Credentials
}

func (a *scriptedAuth) Login(_ context.Context, creds models.Credentials) (string, error) {
	a.calls = append(a.calls, creds)
	return a.token, a.err
}

// scriptedRegistrar answers Register with a fixed message or error.
type scriptedRegistrar struct {
	message string
	err     error
	calls   []models.RegistrationData
}

func (r *scriptedRegistrar) Register(_ context.Context, data models.RegistrationData) (string, error) {
	r.calls = append(r.calls, data)
	return r.message, r.err
}

// failingStore is a SessionStore whose writes always fail.
type failingStore struct {
	*models.MemorySessionStore
}

func newFailingStore() *failingStore {
	return &failingStore{MemorySessionStore: models.NewMemorySessionStore()}
}

func (s *failingStore) Set(string, int) error {
	return &models.TransportError{Op: "write session", Err: context.DeadlineExceeded}
}
