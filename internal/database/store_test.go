package database

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestRebind(t *testing.T) {
	sqlite := &Store{Dialect: DialectSQLite}
	postgres := &Store{Dialect: DialectPostgres}

	query := `SELECT id FROM users WHERE username = ? AND status = ?`

	assert.Equal(t, query, sqlite.Rebind(query), "sqlite keeps ? placeholders")
	assert.Equal(t,
		`SELECT id FROM users WHERE username = $1 AND status = $2`,
		postgres.Rebind(query))

	assert.Equal(t, `SELECT 1`, postgres.Rebind(`SELECT 1`))
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	store := openTestStore(t)
	assert.Equal(t, DialectSQLite, store.Dialect)

	require.NoError(t, store.Migrate())

	// Migrations must be idempotent.
	require.NoError(t, store.Migrate())

	for _, table := range []string{"users", "beneficiaries", "inventory_items", "stock_movements", "distributions"} {
		var name string
		err := store.DB.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		assert.NoError(t, err, "table %s should exist after migration", table)
	}
}

func TestStore_HealthCheck(t *testing.T) {
	store := openTestStore(t)
	assert.NoError(t, store.HealthCheck(context.Background()))
}

func TestStore_WithTx(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Migrate())
	ctx := context.Background()

	insert := `INSERT INTO beneficiaries (code, full_name, created_at, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`

	t.Run("commit on success", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, insert, "BEN-000001", "Maria Clara")
			return err
		})
		require.NoError(t, err)

		var count int
		require.NoError(t, store.DB.QueryRow(`SELECT COUNT(*) FROM beneficiaries`).Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("rollback on error", func(t *testing.T) {
		wantErr := errors.New("boom")
		err := store.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, insert, "BEN-000002", "Juan Luna"); err != nil {
				return err
			}
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)

		var count int
		require.NoError(t, store.DB.QueryRow(`SELECT COUNT(*) FROM beneficiaries`).Scan(&count))
		assert.Equal(t, 1, count, "failed transaction must leave no rows behind")
	})

	t.Run("rollback on panic", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = store.WithTx(ctx, func(tx *sql.Tx) error {
				if _, err := tx.ExecContext(ctx, insert, "BEN-000003", "Pedro Penduko"); err != nil {
					return err
				}
				panic("boom")
			})
		})

		var count int
		require.NoError(t, store.DB.QueryRow(`SELECT COUNT(*) FROM beneficiaries`).Scan(&count))
		assert.Equal(t, 1, count)
	})
}
