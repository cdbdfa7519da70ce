package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/ticketline/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*db.SQLiteUnitOfWork, func(day string) bool) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	hasHoliday := func(day string) bool {
		var n int
		require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM holidays WHERE day = ?`, day).Scan(&n))
		return n == 1
	}
	return db.NewSQLiteUnitOfWork(database), hasHoliday
}

func insertHoliday(ctx context.Context, tx db.DBTX, day string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO holidays (day) VALUES (?)`, day)
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow, hasHoliday := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertHoliday(ctx, tx, "2025-01-01")
	})
	require.NoError(t, err)
	assert.True(t, hasHoliday("2025-01-01"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow, hasHoliday := openUoW(t)
	errDeliberate := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertHoliday(ctx, tx, "2025-01-06"); err != nil {
			return err
		}
		return errDeliberate
	})
	require.ErrorIs(t, err, errDeliberate)
	assert.False(t, hasHoliday("2025-01-06"), "insert should be rolled back")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, hasHoliday := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertHoliday(ctx, tx, "2025-04-17")
			panic("boom")
		})
	})
	assert.False(t, hasHoliday("2025-04-17"), "insert should be rolled back after panic")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path, err := db.DefaultPath()
	require.NoError(t, err)
	assert.Contains(t, path, ".ticketline")
}
