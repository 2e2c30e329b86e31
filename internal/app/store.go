package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rsimmons/yukawa/internal/adapter/postgres"
	"github.com/rsimmons/yukawa/internal/adapter/postgres/retention"
	"github.com/rsimmons/yukawa/internal/adapter/sqlite"
	"github.com/rsimmons/yukawa/internal/config"
	"github.com/rsimmons/yukawa/internal/domain"
	"github.com/rsimmons/yukawa/internal/transport/rest"
	"github.com/rsimmons/yukawa/migrations"
)

type retentionStore interface {
	Get(ctx context.Context, userID uuid.UUID, lang string) (domain.RetentionTable, error)
	GetForUpdate(ctx context.Context, userID uuid.UUID, lang string) (domain.RetentionTable, error)
	Save(ctx context.Context, userID uuid.UUID, lang string, table domain.RetentionTable) error
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// store bundles one retention backend with its transaction manager.
type store struct {
	retention retentionStore
	tx        txRunner
	ping      rest.PingFunc
	close     func()
}

// openStore connects the configured driver. The SQLite store migrates itself
// on open; PostgreSQL is migrated out of band with cmd/migrate.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*store, error) {
	switch cfg.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to postgres",
			slog.Int("max_conns", int(cfg.MaxConns)),
		)
		return &store{
			retention: retention.New(pool),
			tx:        postgres.NewTxManager(pool),
			ping:      pool.Ping,
			close:     pool.Close,
		}, nil

	case "sqlite":
		db, err := sqlite.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		applied, err := migrations.Up(ctx, db.DB, cfg.Driver)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		logger.Info("opened sqlite", slog.Int("migrations_applied", len(applied)))
		return &store{
			retention: sqlite.NewRetentionRepo(db),
			tx:        sqlite.NewTxManager(db),
			ping:      db.PingContext,
			close:     func() { _ = db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
