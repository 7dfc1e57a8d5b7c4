// Package migrations embeds the SQL schema migrations and applies them with
// golang-migrate at startup.
package migrations

import (
	"embed"
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// Up applies all pending migrations against the database at dsn. A database
// that is already up to date is not an error.
func Up(dsn string) error {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, toMigrateDSN(dsn))
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// toMigrateDSN rewrites a postgres:// DSN to the scheme registered by the
// golang-migrate pgx/v5 driver.
func toMigrateDSN(dsn string) string {
	if after, ok := strings.CutPrefix(dsn, "postgresql://"); ok {
		return "pgx5://" + after
	}
	if after, ok := strings.CutPrefix(dsn, "postgres://"); ok {
		return "pgx5://" + after
	}

	return dsn
}
