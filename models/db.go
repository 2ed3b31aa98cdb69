package models

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// openDuckDB opens the DuckDB database at path and applies the given
// migrations. An empty path opens a private in-memory database.
func openDuckDB(path string, steps []migration) (*sql.DB, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, serr.Wrap(err, "failed to create database directory")
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, serr.Wrap(err, "failed to open database")
	}
	// A single connection keeps an in-memory database visible to every query
	db.SetMaxOpenConns(1)

	if err := runMigrations(db, steps); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("Database ready", "path", dbLabel(path))
	return db, nil
}

func dbLabel(path string) string {
	if path == "" {
		return ":memory:"
	}
	return path
}
