package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsimmons/yukawa/internal/config"
	"github.com/rsimmons/yukawa/internal/domain"
	"github.com/rsimmons/yukawa/migrations"
)

func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx := context.Background()
	db, err := Open(ctx, config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = migrations.Up(ctx, db.DB, "sqlite")
	require.NoError(t, err)
	return db
}

func TestRetentionRepo_SaveAndGet(t *testing.T) {
	t.Parallel()

	repo := NewRetentionRepo(setupDB(t))
	ctx := context.Background()
	userID := uuid.New()

	got, err := repo.Get(ctx, userID, "es")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	table := domain.RetentionTable{
		"ser":  {LastAsked: 100, Interval: domain.Seconds(60)},
		"gato": {LastAsked: 100, Interval: domain.PendingFirstReview()},
		"vaca": {LastAsked: 100, Interval: domain.NotTracked()},
	}
	require.NoError(t, repo.Save(ctx, userID, "es", table))

	table["ser"] = domain.RetentionRecord{LastAsked: 200, Interval: domain.Seconds(120)}
	require.NoError(t, repo.Save(ctx, userID, "es", table))

	got, err = repo.Get(ctx, userID, "es")
	require.NoError(t, err)
	assert.Equal(t, table, got)

	other, err := repo.Get(ctx, userID, "ja")
	require.NoError(t, err)
	assert.Empty(t, other)

	stranger, err := repo.Get(ctx, uuid.New(), "es")
	require.NoError(t, err)
	assert.Empty(t, stranger)
}

func TestRetentionRepo_GetForUpdateRequiresTx(t *testing.T) {
	t.Parallel()

	repo := NewRetentionRepo(setupDB(t))
	_, err := repo.GetForUpdate(context.Background(), uuid.New(), "es")
	assert.ErrorIs(t, err, domain.ErrPrecondition)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	t.Parallel()

	db := setupDB(t)
	repo := NewRetentionRepo(db)
	tm := NewTxManager(db)
	ctx := context.Background()
	userID := uuid.New()

	sentinel := errors.New("grading failed")
	err := tm.RunInTx(ctx, func(ctx context.Context) error {
		if err := repo.Save(ctx, userID, "es", domain.RetentionTable{"ser": {LastAsked: 1}}); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	got, err := repo.Get(ctx, userID, "es")
	require.NoError(t, err)
	assert.Empty(t, got, "write should be rolled back")
}

func TestTxManager_RollbackOnPanic(t *testing.T) {
	t.Parallel()

	db := setupDB(t)
	repo := NewRetentionRepo(db)
	tm := NewTxManager(db)
	userID := uuid.New()

	assert.PanicsWithValue(t, "boom", func() {
		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			_ = repo.Save(ctx, userID, "es", domain.RetentionTable{"ser": {LastAsked: 1}})
			panic("boom")
		})
	})

	got, err := repo.Get(context.Background(), userID, "es")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTxManager_SerializesReadModifyWrite(t *testing.T) {
	t.Parallel()

	db := setupDB(t)
	repo := NewRetentionRepo(db)
	tm := NewTxManager(db)
	ctx := context.Background()
	userID := uuid.New()

	const writers = 6
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = tm.RunInTx(ctx, func(ctx context.Context) error {
				table, err := repo.GetForUpdate(ctx, userID, "es")
				if err != nil {
					return err
				}
				table[string(rune('a'+i))] = domain.RetentionRecord{LastAsked: int64(i)}
				return repo.Save(ctx, userID, "es", table)
			})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	got, err := repo.Get(ctx, userID, "es")
	require.NoError(t, err)
	assert.Len(t, got, writers)
}
