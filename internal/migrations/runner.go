// Package migrations applies the embedded PostgreSQL schema with goose.
package migrations

import (
	"database/sql"
	"sync"

	"github.com/pressly/goose/v3"
)

const dir = "postgres"

// goose keeps dialect and filesystem in package globals.
var setupOnce sync.Once

func setup() {
	setupOnce.Do(func() {
		goose.SetBaseFS(Postgres)
		if err := goose.SetDialect("postgres"); err != nil {
			panic(err)
		}
	})
}

// Up migrates the schema to the latest version.
func Up(db *sql.DB) error {
	setup()
	return goose.Up(db, dir)
}

// Down rolls back a single migration.
func Down(db *sql.DB) error {
	setup()
	return goose.Down(db, dir)
}

// Reset rolls back every migration. Tests use it to start from scratch.
func Reset(db *sql.DB) error {
	setup()
	return goose.Reset(db, dir)
}

// Version reports the current schema version.
func Version(db *sql.DB) (int64, error) {
	setup()
	return goose.GetDBVersion(db)
}
