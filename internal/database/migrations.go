package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationFiles embed.FS

const migrationsTable = "game_schema_migrations"

// newMigrate builds a migrate instance for the dialect of db
func newMigrate(db *sqlx.DB) (*migrate.Migrate, error) {
	var (
		driver migratedb.Driver
		dir    string
		err    error
	)

	switch db.DriverName() {
	case DriverMySQL:
		dir = "migrations/mysql"
		driver, err = mysql.WithInstance(db.DB, &mysql.Config{MigrationsTable: migrationsTable})
	case DriverPostgres:
		dir = "migrations/postgres"
		driver, err = pgxmigrate.WithInstance(db.DB, &pgxmigrate.Config{MigrationsTable: migrationsTable})
	case DriverSQLite:
		dir = "migrations/sqlite"
		driver, err = sqlite.WithInstance(db.DB, &sqlite.Config{MigrationsTable: migrationsTable})
	default:
		return nil, fmt.Errorf("no migrations for driver %q", db.DriverName())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationFiles, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, db.DriverName(), driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// Migrate applies all pending up migrations
func Migrate(db *sqlx.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Rollback reverts every applied migration
func Rollback(db *sqlx.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}
