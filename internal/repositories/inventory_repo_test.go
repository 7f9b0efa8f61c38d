package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidsync/aidsync/internal/models"
)

func TestInventoryRepository_CreateAndGet(t *testing.T) {
	store := newTestStore(t)
	repo := NewInventoryRepository(store)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.InventoryItem{
		Code:          "ITEM-00001",
		Name:          "Rice 5kg",
		Category:      "FOOD",
		UnitOfMeasure: "sack",
		CurrentStock:  100,
		MinimumStock:  20,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.ItemActive, created.Status)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rice 5kg", got.Name)
	assert.Equal(t, float64(100), got.CurrentStock)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestInventoryRepository_ListFilters(t *testing.T) {
	store := newTestStore(t)
	repo := NewInventoryRepository(store)
	ctx := context.Background()

	seedItem(t, store, "ITEM-00001", "Rice 5kg", 100)
	seedItem(t, store, "ITEM-00002", "Bottled Water", 50)

	items, err := repo.List(ctx, models.InventoryFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = repo.List(ctx, models.InventoryFilter{Search: "Rice"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ITEM-00001", items[0].Code)

	items, err = repo.List(ctx, models.InventoryFilter{Search: "ITEM-00002"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Bottled Water", items[0].Name)
}

func TestInventoryRepository_RecordMovement(t *testing.T) {
	store := newTestStore(t)
	repo := NewInventoryRepository(store)
	ctx := context.Background()

	staff := seedAccount(t, store, "staff_ana")
	item := seedItem(t, store, "ITEM-00001", "Rice 5kg", 100)

	t.Run("stock in adds", func(t *testing.T) {
		err := repo.RecordMovement(ctx, item.ID, models.StockIn, 25, "delivery", staff.ID)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(125), got.CurrentStock)
	})

	t.Run("stock out deducts", func(t *testing.T) {
		err := repo.RecordMovement(ctx, item.ID, models.StockOut, 25, "relief operation", staff.ID)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(100), got.CurrentStock)
	})

	t.Run("overdraw is rejected and stock unchanged", func(t *testing.T) {
		err := repo.RecordMovement(ctx, item.ID, models.StockOut, 500, "too much", staff.ID)
		assert.ErrorIs(t, err, models.ErrInsufficientStock)

		got, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(100), got.CurrentStock)
	})

	t.Run("missing item", func(t *testing.T) {
		err := repo.RecordMovement(ctx, 9999, models.StockOut, 1, "ghost", staff.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestInventoryRepository_NextCodeSequence(t *testing.T) {
	store := newTestStore(t)
	repo := NewInventoryRepository(store)
	ctx := context.Background()

	next, err := repo.NextCodeSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	seedItem(t, store, "ITEM-00007", "Rice 5kg", 100)

	next, err = repo.NextCodeSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), next)
}
