package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/rsimmons/yukawa/internal/domain"
)

// RetentionRepo stores retention tables as JSON text, one row per (user, lang).
type RetentionRepo struct {
	db Querier
}

// NewRetentionRepo creates a new retention repository.
func NewRetentionRepo(db Querier) *RetentionRepo {
	return &RetentionRepo{db: db}
}

// Get returns the user's table for lang, or an empty table when none is stored.
func (r *RetentionRepo) Get(ctx context.Context, userID uuid.UUID, lang string) (domain.RetentionTable, error) {
	sqlStr, args, err := builder().
		Select("data").
		From("user_srs").
		Where(squirrel.Eq{"user_id": userID.String()}).
		Where(squirrel.Eq{"lang": lang}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build retention query: %w", err)
	}

	var data string
	err = QuerierFromCtx(ctx, r.db).GetContext(ctx, &data, sqlStr, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RetentionTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retention %s: %w", lang, err)
	}

	t, err := domain.UnmarshalRetention([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("retention %s: decode: %w", lang, err)
	}
	return t, nil
}

// GetForUpdate reads the table inside the caller's transaction. SQLite has no
// row locks; open the database with _txlock=immediate so the transaction
// takes the write lock when it begins.
func (r *RetentionRepo) GetForUpdate(ctx context.Context, userID uuid.UUID, lang string) (domain.RetentionTable, error) {
	if !InTx(ctx) {
		return nil, fmt.Errorf("retention %s: get for update outside transaction: %w", lang, domain.ErrPrecondition)
	}
	return r.Get(ctx, userID, lang)
}

// Save replaces the user's table for lang, creating the row if needed.
func (r *RetentionRepo) Save(ctx context.Context, userID uuid.UUID, lang string, t domain.RetentionTable) error {
	data, err := domain.MarshalRetention(t)
	if err != nil {
		return fmt.Errorf("retention %s: encode: %w", lang, err)
	}

	sqlStr, args, err := builder().
		Insert("user_srs").
		Columns("user_id", "lang", "data").
		Values(userID.String(), lang, string(data)).
		Suffix("ON CONFLICT (user_id, lang) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return fmt.Errorf("build retention upsert: %w", err)
	}

	if _, err := QuerierFromCtx(ctx, r.db).ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("retention %s: %w", lang, err)
	}
	return nil
}
