package repositories

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aidsync/aidsync/internal/database"
	"github.com/aidsync/aidsync/internal/models"
)

// newTestStore opens a throwaway SQLite database with the real schema.
// The fallback engine doubles as the test engine, so repository SQL is
// exercised against an actual database.
func newTestStore(t *testing.T) *database.Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	require.NoError(t, store.Migrate())
	return store
}

func seedAccount(t *testing.T, store *database.Store, username string) *models.Account {
	t.Helper()

	acct, err := NewAccountRepository(store).Create(context.Background(), &models.Account{
		Username:     username,
		PasswordHash: "$2a$12$notarealhash",
		FullName:     "Test Account",
		Role:         models.RoleDistributionStaff,
	})
	require.NoError(t, err)
	return acct
}

func seedBeneficiary(t *testing.T, store *database.Store, code, name, barangay string) *models.Beneficiary {
	t.Helper()

	b, err := NewBeneficiaryRepository(store).Create(context.Background(), &models.Beneficiary{
		Code:     code,
		FullName: name,
		Barangay: barangay,
	})
	require.NoError(t, err)
	return b
}

func seedItem(t *testing.T, store *database.Store, code, name string, stock float64) *models.InventoryItem {
	t.Helper()

	item, err := NewInventoryRepository(store).Create(context.Background(), &models.InventoryItem{
		Code:         code,
		Name:         name,
		CurrentStock: stock,
		MinimumStock: 10,
	})
	require.NoError(t, err)
	return item
}
