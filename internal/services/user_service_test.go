package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aidsync/aidsync/internal/models"
)

func TestCreateAccount(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := newFakeAccountStore()
		svc := NewUserService(store, testLogger(), testAudit())

		acct, err := svc.CreateAccount(context.Background(),
			"staff_ana", "Password1", "ana@lgu.gov.ph", "Ana Santos", models.RoleDistributionStaff)

		require.NoError(t, err)
		assert.Empty(t, acct.PasswordHash, "hash must be scrubbed from the returned account")
		assert.Equal(t, models.StatusActive, acct.Status)

		stored := store.byID(acct.ID)
		require.NotNil(t, stored)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Password1")))
	})

	t.Run("validation failures", func(t *testing.T) {
		svc := NewUserService(newFakeAccountStore(), testLogger(), testAudit())
		ctx := context.Background()

		_, err := svc.CreateAccount(ctx, "ab", "Password1", "", "Ana", models.RoleViewer)
		assert.ErrorIs(t, err, models.ErrBadRequest, "username too short")

		_, err = svc.CreateAccount(ctx, "staff_ana", "Password1", "", "  ", models.RoleViewer)
		assert.ErrorIs(t, err, models.ErrBadRequest, "missing full name")

		_, err = svc.CreateAccount(ctx, "staff_ana", "Password1", "not-an-email", "Ana", models.RoleViewer)
		assert.ErrorIs(t, err, models.ErrBadRequest, "malformed email")

		_, err = svc.CreateAccount(ctx, "staff_ana", "Password1", "", "Ana", models.Role("WIZARD"))
		assert.ErrorIs(t, err, models.ErrBadRequest, "unknown role")

		_, err = svc.CreateAccount(ctx, "staff_ana", "password", "", "Ana", models.RoleViewer)
		assert.Error(t, err, "weak password")
		assert.NotErrorIs(t, err, models.ErrBadRequest)
	})

	t.Run("duplicate username", func(t *testing.T) {
		store := newFakeAccountStore(&models.Account{
			ID: 1, Username: "staff_ana", Status: models.StatusActive, Role: models.RoleViewer,
		})
		svc := NewUserService(store, testLogger(), testAudit())

		_, err := svc.CreateAccount(context.Background(),
			"staff_ana", "Password1", "", "Ana Santos", models.RoleViewer)
		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("duplicate email", func(t *testing.T) {
		store := newFakeAccountStore(&models.Account{
			ID: 1, Username: "captain_reyes", Email: "shared@lgu.gov.ph",
			Status: models.StatusActive, Role: models.RoleBarangayCaptain,
		})
		svc := NewUserService(store, testLogger(), testAudit())

		_, err := svc.CreateAccount(context.Background(),
			"staff_ana", "Password1", "shared@lgu.gov.ph", "Ana Santos", models.RoleViewer)
		assert.ErrorIs(t, err, models.ErrConflict)
	})
}

func TestListAccounts(t *testing.T) {
	store := newFakeAccountStore(
		&models.Account{ID: 1, Username: "one", PasswordHash: "$2a$12$x", Role: models.RoleViewer},
		&models.Account{ID: 2, Username: "two", PasswordHash: "$2a$12$y", Role: models.RoleViewer},
	)
	svc := NewUserService(store, testLogger(), testAudit())

	accounts, err := svc.ListAccounts(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	for _, a := range accounts {
		assert.Empty(t, a.PasswordHash)
	}
}

func TestUpdateAccount(t *testing.T) {
	store := newFakeAccountStore(&models.Account{
		ID: 1, Username: "staff_ana", FullName: "Ana", Role: models.RoleViewer,
		Status: models.StatusActive,
	})
	svc := NewUserService(store, testLogger(), testAudit())
	ctx := context.Background()

	updated, err := svc.UpdateAccount(ctx, 1, "Ana Santos", "", models.RoleLGUAdmin, models.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, "Ana Santos", updated.FullName)
	assert.Equal(t, models.RoleLGUAdmin, updated.Role)
	assert.Equal(t, models.StatusInactive, updated.Status)

	_, err = svc.UpdateAccount(ctx, 1, "Ana", "", models.Role("WIZARD"), models.StatusActive)
	assert.ErrorIs(t, err, models.ErrBadRequest)

	_, err = svc.UpdateAccount(ctx, 1, "Ana", "", models.RoleViewer, models.AccountStatus("FROZEN"))
	assert.ErrorIs(t, err, models.ErrBadRequest)

	_, err = svc.UpdateAccount(ctx, 99, "Ana", "", models.RoleViewer, models.StatusActive)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUnlockAccount(t *testing.T) {
	store := newFakeAccountStore(&models.Account{
		ID: 1, Username: "staff_ana", Role: models.RoleViewer,
		Status: models.StatusLocked, FailedLoginAttempts: 3,
	})
	svc := NewUserService(store, testLogger(), testAudit())
	ctx := context.Background()

	require.NoError(t, svc.UnlockAccount(ctx, 1))
	assert.Equal(t, 0, store.byID(1).FailedLoginAttempts)
	assert.Equal(t, models.StatusActive, store.byID(1).Status)

	assert.ErrorIs(t, svc.UnlockAccount(ctx, 99), models.ErrNotFound)
}
