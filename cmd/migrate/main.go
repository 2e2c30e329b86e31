// Command migrate applies or rolls back the retention store schema.
//
// Usage:
//
//	migrate up|down|status
//
// Reads DATABASE_DRIVER and DATABASE_DSN from the environment (or .env).
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/rsimmons/yukawa/internal/adapter/postgres"
	"github.com/rsimmons/yukawa/internal/adapter/sqlite"
	"github.com/rsimmons/yukawa/internal/config"
	"github.com/rsimmons/yukawa/migrations"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: migrate up|down|status")
		os.Exit(2)
	}
	cmd := os.Args[1]

	var cfg config.DatabaseConfig
	if err := config.LoadSection(&cfg); err != nil {
		log.Fatalf("read database config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, closeDB, err := open(ctx, cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer closeDB()

	if err := run(ctx, db, cfg.Driver, cmd); err != nil {
		closeDB()
		log.Fatalf("migrate %s: %v", cmd, err)
	}
}

func open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, func(), error) {
	switch cfg.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		db := stdlib.OpenDBFromPool(pool)
		return db, func() { _ = db.Close(); pool.Close() }, nil
	case "sqlite":
		db, err := sqlite.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return db.DB, func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func run(ctx context.Context, db *sql.DB, driver, cmd string) error {
	switch cmd {
	case "up":
		results, err := migrations.Up(ctx, db, driver)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Printf("applied %s (%s)\n", r.Source.Path, r.Duration)
		}
		if len(results) == 0 {
			fmt.Println("schema is up to date")
		}
	case "down":
		r, err := migrations.Down(ctx, db, driver)
		if err != nil {
			return err
		}
		fmt.Printf("rolled back %s\n", r.Source.Path)
	case "status":
		statuses, err := migrations.Status(ctx, db, driver)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			applied := "pending"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("%-40s %s\n", s.Source.Path, applied)
		}
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
