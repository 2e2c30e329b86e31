// Package migrations embeds the goose SQL migrations for each supported driver.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// For returns the migration files and goose dialect for a database driver.
func For(driver string) (fs.FS, goose.Dialect, error) {
	switch driver {
	case "postgres":
		sub, err := fs.Sub(files, "postgres")
		return sub, goose.DialectPostgres, err
	case "sqlite":
		sub, err := fs.Sub(files, "sqlite")
		return sub, goose.DialectSQLite3, err
	default:
		return nil, "", fmt.Errorf("migrations: unsupported driver %q", driver)
	}
}

// Up applies all pending migrations for driver and returns the applied results.
func Up(ctx context.Context, db *sql.DB, driver string) ([]*goose.MigrationResult, error) {
	provider, err := newProvider(db, driver)
	if err != nil {
		return nil, err
	}
	res, err := provider.Up(ctx)
	if err != nil {
		return res, fmt.Errorf("migrations: up: %w", err)
	}
	return res, nil
}

// Down rolls back the most recent migration for driver.
func Down(ctx context.Context, db *sql.DB, driver string) (*goose.MigrationResult, error) {
	provider, err := newProvider(db, driver)
	if err != nil {
		return nil, err
	}
	res, err := provider.Down(ctx)
	if err != nil {
		return res, fmt.Errorf("migrations: down: %w", err)
	}
	return res, nil
}

// Status reports the state of every known migration for driver.
func Status(ctx context.Context, db *sql.DB, driver string) ([]*goose.MigrationStatus, error) {
	provider, err := newProvider(db, driver)
	if err != nil {
		return nil, err
	}
	return provider.Status(ctx)
}

func newProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	fsys, dialect, err := For(driver)
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("migrations: new provider: %w", err)
	}
	return provider, nil
}
