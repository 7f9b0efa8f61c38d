package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidsync/aidsync/internal/models"
)

func TestBeneficiaryRepository_CreateAndGet(t *testing.T) {
	store := newTestStore(t)
	repo := NewBeneficiaryRepository(store)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Beneficiary{
		Code:            "BEN-000001",
		FullName:        "Maria Clara",
		Barangay:        "San Roque",
		IsHouseholdHead: true,
		FamilySize:      5,
		IsPWD:           true,
		PriorityLevel:   1,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.BeneficiaryActive, created.Status)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Clara", got.FullName)
	assert.True(t, got.IsPWD)
	assert.True(t, got.IsHouseholdHead)
	assert.Equal(t, 5, got.FamilySize)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestBeneficiaryRepository_DuplicateCode(t *testing.T) {
	store := newTestStore(t)
	repo := NewBeneficiaryRepository(store)
	ctx := context.Background()

	seedBeneficiary(t, store, "BEN-000001", "Maria Clara", "San Roque")

	_, err := repo.Create(ctx, &models.Beneficiary{Code: "BEN-000001", FullName: "Duplicate"})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestBeneficiaryRepository_ListFilters(t *testing.T) {
	store := newTestStore(t)
	repo := NewBeneficiaryRepository(store)
	ctx := context.Background()

	seedBeneficiary(t, store, "BEN-000001", "Maria Clara", "San Roque")
	seedBeneficiary(t, store, "BEN-000002", "Juan Luna", "San Roque")
	seedBeneficiary(t, store, "BEN-000003", "Pedro Penduko", "Bagong Silang")

	all, err := repo.List(ctx, models.BeneficiaryFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byName, err := repo.List(ctx, models.BeneficiaryFilter{Search: "Maria"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "BEN-000001", byName[0].Code)

	byCode, err := repo.List(ctx, models.BeneficiaryFilter{Search: "BEN-000002"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, "Juan Luna", byCode[0].FullName)

	byBarangay, err := repo.List(ctx, models.BeneficiaryFilter{Barangay: "San Roque"}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, byBarangay, 2)

	none, err := repo.List(ctx, models.BeneficiaryFilter{Barangay: "Nowhere"}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBeneficiaryRepository_Update(t *testing.T) {
	store := newTestStore(t)
	repo := NewBeneficiaryRepository(store)
	ctx := context.Background()

	b := seedBeneficiary(t, store, "BEN-000001", "Maria Clara", "San Roque")

	b.FullName = "Maria Clara Santos"
	b.FamilySize = 6
	b.IsSeniorCitizen = true

	updated, err := repo.Update(ctx, b.ID, b)
	require.NoError(t, err)
	assert.Equal(t, "Maria Clara Santos", updated.FullName)
	assert.Equal(t, 6, updated.FamilySize)
	assert.True(t, updated.IsSeniorCitizen)
	assert.Equal(t, "BEN-000001", updated.Code, "code is immutable")

	_, err = repo.Update(ctx, 9999, b)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestBeneficiaryRepository_Deactivate(t *testing.T) {
	store := newTestStore(t)
	repo := NewBeneficiaryRepository(store)
	ctx := context.Background()

	b := seedBeneficiary(t, store, "BEN-000001", "Maria Clara", "San Roque")

	require.NoError(t, repo.Deactivate(ctx, b.ID))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BeneficiaryInactive, got.Status, "deactivation is a soft delete")

	assert.ErrorIs(t, repo.Deactivate(ctx, 9999), models.ErrNotFound)
}

func TestBeneficiaryRepository_NextCodeSequence(t *testing.T) {
	store := newTestStore(t)
	repo := NewBeneficiaryRepository(store)
	ctx := context.Background()

	next, err := repo.NextCodeSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	seedBeneficiary(t, store, "BEN-000041", "Maria Clara", "San Roque")

	next, err = repo.NextCodeSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), next)
}
