package models

import (
	"database/sql"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// migration is one idempotent DDL step
type migration struct {
	name string
	sql  string
}

// runMigrations applies steps in order. Every step uses IF NOT EXISTS so
// re-opening an existing database is a no-op.
func runMigrations(db *sql.DB, steps []migration) error {
	for _, step := range steps {
		if _, err := db.Exec(step.sql); err != nil {
			return serr.Wrap(err, "migration failed: "+step.name)
		}
		logger.Debug("Migration applied", "step", step.name)
	}
	return nil
}

var sessionMigrations = []migration{
	{name: "create session_tokens", sql: DDLCreateSessionTable},
}

var userMigrations = []migration{
	{name: "create users", sql: DDLCreateUsersTable},
	{name: "index users email", sql: `CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`},
}
