package postgres_test

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/rsimmons/yukawa/internal/adapter/postgres"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		mock.Close()
	})
	return mock
}

func TestRunInTx_Commit(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE user_srs`).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	tm := postgres.NewTxManager(mock)
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if !postgres.InTx(ctx) {
			t.Error("expected transaction in context")
		}
		_, err := postgres.QuerierFromCtx(ctx, mock).Exec(ctx, `UPDATE user_srs SET data = '{}'`)
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("business logic error")
	err := postgres.NewTxManager(mock).RunInTx(context.Background(), func(ctx context.Context) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	defer func() {
		if r := recover(); r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
	}()

	_ = postgres.NewTxManager(mock).RunInTx(context.Background(), func(ctx context.Context) error {
		panic("test panic")
	})
}

func TestRunInTx_BeginError(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	beginErr := errors.New("too many connections")
	mock.ExpectBegin().WillReturnError(beginErr)

	called := false
	err := postgres.NewTxManager(mock).RunInTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, beginErr) {
		t.Fatalf("expected begin error, got: %v", err)
	}
	if called {
		t.Error("callback should not run when begin fails")
	}
}

func TestRunInTx_CommitError(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	commitErr := errors.New("serialization failure")
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(commitErr)

	err := postgres.NewTxManager(mock).RunInTx(context.Background(), func(ctx context.Context) error {
		return nil
	})
	if !errors.Is(err, commitErr) {
		t.Fatalf("expected commit error, got: %v", err)
	}
}

func TestRunInTx_NestedReusesOuter(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	tm := postgres.NewTxManager(mock)
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return tm.RunInTx(ctx, func(ctx context.Context) error { return nil })
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}
}

func TestQuerierFromCtx_Fallback(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	if q := postgres.QuerierFromCtx(context.Background(), mock); q != mock {
		t.Error("expected fallback querier without a transaction")
	}
}
