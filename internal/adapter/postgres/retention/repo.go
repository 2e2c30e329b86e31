// Package retention stores per-user, per-language retention tables in PostgreSQL.
package retention

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/rsimmons/yukawa/internal/adapter/postgres"
	"github.com/rsimmons/yukawa/internal/domain"
)

const table = "user_srs"

// Repo provides retention table persistence backed by PostgreSQL.
// Each (user, lang) pair is one row holding the JSON document.
type Repo struct {
	db postgres.Querier
}

// New creates a new retention repository. db is used when the context
// carries no transaction.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Get returns the user's table for lang, or an empty table when none is stored.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID, lang string) (domain.RetentionTable, error) {
	return r.get(ctx, userID, lang, false)
}

// GetForUpdate is Get that locks the row until the surrounding transaction ends.
// The row is created empty first so a learner's first write has something to
// lock; concurrent first writers queue on it instead of overwriting each other.
func (r *Repo) GetForUpdate(ctx context.Context, userID uuid.UUID, lang string) (domain.RetentionTable, error) {
	if !postgres.InTx(ctx) {
		return nil, fmt.Errorf("retention %s: get for update outside transaction: %w", lang, domain.ErrPrecondition)
	}
	if err := r.ensureRow(ctx, userID, lang); err != nil {
		return nil, err
	}
	return r.get(ctx, userID, lang, true)
}

// ensureRow inserts an empty document unless the row exists. The column
// default holds the empty table.
func (r *Repo) ensureRow(ctx context.Context, userID uuid.UUID, lang string) error {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("user_id", "lang").
		Values(userID, lang).
		Suffix("ON CONFLICT (user_id, lang) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build retention ensure: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "retention", lang)
	}
	return nil
}

func (r *Repo) get(ctx context.Context, userID uuid.UUID, lang string, lock bool) (domain.RetentionTable, error) {
	query := postgres.Builder().
		Select("data").
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"lang": lang})
	if lock {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build retention query: %w", err)
	}

	var data []byte
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.RetentionTable{}, nil
	}
	if err != nil {
		return nil, postgres.MapError(err, "retention", lang)
	}

	t, err := domain.UnmarshalRetention(data)
	if err != nil {
		return nil, fmt.Errorf("retention %s: decode: %w", lang, err)
	}
	return t, nil
}

// Save replaces the user's table for lang, creating the row if needed.
func (r *Repo) Save(ctx context.Context, userID uuid.UUID, lang string, t domain.RetentionTable) error {
	data, err := domain.MarshalRetention(t)
	if err != nil {
		return fmt.Errorf("retention %s: encode: %w", lang, err)
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("user_id", "lang", "data").
		Values(userID, lang, string(data)).
		Suffix("ON CONFLICT (user_id, lang) DO UPDATE SET data = EXCLUDED.data, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build retention upsert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "retention", lang)
	}
	return nil
}
