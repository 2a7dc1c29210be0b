package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigrationResult reports the schema state after a migration run.
type MigrationResult struct {
	Version uint
	Dirty   bool
	// Changed is false when there was nothing to apply.
	Changed bool
}

// Migrate applies the embedded migrations to the database at dsn. steps > 0
// moves that many versions up, steps < 0 that many down, and steps == 0
// applies every pending up migration.
//
// Precondition: dsn must be a postgres:// connection string.
// Postcondition: Returns the resulting schema version, or an error.
func Migrate(dsn string, steps int) (MigrationResult, error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return MigrationResult{}, fmt.Errorf("opening embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if steps == 0 {
		err = m.Up()
	} else {
		err = m.Steps(steps)
	}
	changed := true
	if errors.Is(err, migrate.ErrNoChange) {
		changed, err = false, nil
	}
	if err != nil {
		return MigrationResult{}, fmt.Errorf("migrating: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return MigrationResult{}, fmt.Errorf("reading schema version: %w", err)
	}
	return MigrationResult{Version: version, Dirty: dirty, Changed: changed}, nil
}

// MigrateDown reverts every applied migration.
func MigrateDown(dsn string) (MigrationResult, error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return MigrationResult{}, fmt.Errorf("opening embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	err = m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		return MigrationResult{}, nil
	}
	if err != nil {
		return MigrationResult{}, fmt.Errorf("migrating down: %w", err)
	}
	return MigrationResult{Changed: true}, nil
}
