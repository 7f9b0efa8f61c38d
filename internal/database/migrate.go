package database

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrate brings the schema up to date using the embedded migrations
// for the active dialect.
func (s *Store) Migrate() error {
	gooseDialect := "postgres"
	if s.Dialect == DialectSQLite {
		gooseDialect = "sqlite3"
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(s.DB, "migrations/"+string(s.Dialect)); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
