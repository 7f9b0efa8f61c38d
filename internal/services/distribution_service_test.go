package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidsync/aidsync/internal/models"
)

func activeBeneficiaryRepo() *MockBeneficiaryRepository {
	return &MockBeneficiaryRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Beneficiary, error) {
			if id == 1 {
				return &models.Beneficiary{ID: 1, FullName: "Maria Clara", Status: models.BeneficiaryActive}, nil
			}
			return nil, models.ErrNotFound
		},
	}
}

func TestDistributionService_Record(t *testing.T) {
	t.Run("success generates a reference number", func(t *testing.T) {
		var created *models.Distribution
		repo := &MockDistributionRepository{
			CreateFunc: func(ctx context.Context, d *models.Distribution) (*models.Distribution, error) {
				created = d
				d.ID = 10
				return d, nil
			},
		}
		svc := NewDistributionService(repo, activeBeneficiaryRepo(), testLogger())

		got, err := svc.Record(context.Background(), 1, 5, 3, 2, "  typhoon relief  ")
		require.NoError(t, err)
		assert.Equal(t, int64(10), got.ID)
		assert.Equal(t, "typhoon relief", created.Remarks)

		_, err = uuid.Parse(created.ReferenceNo)
		assert.NoError(t, err, "reference number must be a UUID")
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		svc := NewDistributionService(&MockDistributionRepository{}, activeBeneficiaryRepo(), testLogger())

		_, err := svc.Record(context.Background(), 1, 5, 0, 2, "")
		assert.ErrorIs(t, err, models.ErrBadRequest)
	})

	t.Run("unknown beneficiary", func(t *testing.T) {
		svc := NewDistributionService(&MockDistributionRepository{}, activeBeneficiaryRepo(), testLogger())

		_, err := svc.Record(context.Background(), 99, 5, 3, 2, "")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("inactive beneficiary", func(t *testing.T) {
		beneficiaries := &MockBeneficiaryRepository{
			GetByIDFunc: func(ctx context.Context, id int64) (*models.Beneficiary, error) {
				return &models.Beneficiary{ID: id, Status: models.BeneficiaryInactive}, nil
			},
		}
		svc := NewDistributionService(&MockDistributionRepository{}, beneficiaries, testLogger())

		_, err := svc.Record(context.Background(), 1, 5, 3, 2, "")
		assert.ErrorIs(t, err, models.ErrBadRequest)
	})

	t.Run("insufficient stock surfaces unchanged", func(t *testing.T) {
		repo := &MockDistributionRepository{
			CreateFunc: func(ctx context.Context, d *models.Distribution) (*models.Distribution, error) {
				return nil, models.ErrInsufficientStock
			},
		}
		svc := NewDistributionService(repo, activeBeneficiaryRepo(), testLogger())

		_, err := svc.Record(context.Background(), 1, 5, 3, 2, "")
		assert.ErrorIs(t, err, models.ErrInsufficientStock)
	})
}

func TestDashboardService_Stats(t *testing.T) {
	repo := &MockStatsRepository{
		DashboardStatsFunc: func(ctx context.Context) (*models.DashboardStats, error) {
			return &models.DashboardStats{TotalBeneficiaries: 12, DistributionsToday: 3, LowStockItems: 2}, nil
		},
	}
	svc := NewDashboardService(repo, testLogger())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalBeneficiaries)
	assert.Equal(t, 3, stats.DistributionsToday)
	assert.Equal(t, 2, stats.LowStockItems)

	failing := &MockStatsRepository{
		DashboardStatsFunc: func(ctx context.Context) (*models.DashboardStats, error) {
			return nil, assert.AnError
		},
	}
	svc = NewDashboardService(failing, testLogger())

	_, err = svc.Stats(context.Background())
	assert.ErrorIs(t, err, models.ErrUnavailable)
}
