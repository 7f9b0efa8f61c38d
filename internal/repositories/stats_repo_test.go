package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidsync/aidsync/internal/models"
)

func TestStatsRepository_DashboardStats(t *testing.T) {
	store := newTestStore(t)
	repo := NewStatsRepository(store)
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		stats, err := repo.DashboardStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalBeneficiaries)
		assert.Equal(t, 0, stats.DistributionsToday)
		assert.Equal(t, 0, stats.LowStockItems)
	})

	staff := seedAccount(t, store, "staff_ana")
	active := seedBeneficiary(t, store, "BEN-000001", "Maria Clara", "San Roque")
	inactive := seedBeneficiary(t, store, "BEN-000002", "Juan Luna", "San Roque")
	require.NoError(t, NewBeneficiaryRepository(store).Deactivate(ctx, inactive.ID))

	healthy := seedItem(t, store, "ITEM-00001", "Rice 5kg", 100)
	seedItem(t, store, "ITEM-00002", "Bottled Water", 5) // at or below minimum of 10

	_, err := NewDistributionRepository(store).Create(ctx, &models.Distribution{
		ReferenceNo:   uuid.New().String(),
		BeneficiaryID: active.ID,
		ItemID:        healthy.ID,
		Quantity:      1,
		DistributedBy: staff.ID,
	})
	require.NoError(t, err)

	t.Run("populated database", func(t *testing.T) {
		stats, err := repo.DashboardStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalBeneficiaries, "inactive beneficiaries are excluded")
		assert.Equal(t, 1, stats.DistributionsToday)
		assert.Equal(t, 1, stats.LowStockItems)
	})
}
