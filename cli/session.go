package cli

import (
	"klikk/config"
	"klikk/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// openSessionStore opens the terminal client's token store for the
// configured backend. The returned close func is never nil.
func openSessionStore(c *config.Config) (models.SessionStore, func() error, error) {
	noop := func() error { return nil }

	switch c.SessionBackend {
	case config.BackendMemory:
		return models.NewMemorySessionStore(), noop, nil

	case config.BackendDuckDB:
		store, err := models.OpenDBSessionStore(c.SessionPath)
		if err != nil {
			return nil, noop, err
		}
		logger.Debug("Using DuckDB session store", "path", c.SessionPath)
		return store, store.Close, nil

	case config.BackendFile:
		store := models.NewFileSessionStore(c.SessionPath)
		logger.Debug("Using file session store", "path", store.Path())
		return store, noop, nil
	}

	return nil, noop, serr.New("unknown session backend: " + c.SessionBackend)
}
